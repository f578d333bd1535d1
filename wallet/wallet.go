package wallet

import (
	"bytes"
	"crypto/rsa"

	"github.com/pkg/errors"

	"github.com/Luismorlan/scrooge_in_go/model"
	"github.com/Luismorlan/scrooge_in_go/utils"
)

// User signs transactions to hand to a transaction handler. The wallet never
// talks to the handler's internal state, it only ever sees ledger snapshots.
type Wallet struct {
	Keys *rsa.PrivateKey
	// All UTXOs known to belong to this wallet, refreshed from snapshots.
	UTXOs map[model.UTXO]model.Output
}

func NewWallet(keyBits int) (*Wallet, error) {
	sk, _ := utils.GenerateKeyPair(keyBits)
	if sk == nil {
		return nil, errors.New("failed to generate wallet key pair")
	}
	return &Wallet{
		Keys:  sk,
		UTXOs: make(map[model.UTXO]model.Output),
	}, nil
}

// PublicKeyBytes is the identity outputs of this wallet carry.
func (w *Wallet) PublicKeyBytes() []byte {
	return utils.PublicKeyToBytes(&w.Keys.PublicKey)
}

// Refresh rebuilds the set of owned UTXOs from a ledger snapshot.
func (w *Wallet) Refresh(l *model.Ledger) {
	pk := w.PublicKeyBytes()
	w.UTXOs = make(map[model.UTXO]model.Output)
	for utxo, output := range l.L {
		if bytes.Equal(output.PublicKey, pk) {
			w.UTXOs[utxo] = output
		}
	}
}

// GetBalance sums up all UTXOs this wallet currently knows about.
func (w *Wallet) GetBalance() float64 {
	total := 0.0
	for _, output := range w.UTXOs {
		total += output.Value
	}
	return total
}

// TransferMoney builds a signed transaction paying value to receiverPK and
// leaving fee on the table for the handler to collect. The change comes back
// to this wallet as a new output.
func (w *Wallet) TransferMoney(receiverPK []byte, value float64, fee float64) (*model.Transaction, error) {
	output := model.Output{
		PublicKey: receiverPK,
		Value:     value,
	}
	return CreatePendingTransaction(w, []model.Output{output}, fee)
}

// CreatePendingTransaction builds a transaction that spends every UTXO the
// wallet owns, pays out the given outputs plus the change back to the wallet,
// and signs every input. The transaction is not finalized; committing it
// does that. The wallet itself is read-only here.
func CreatePendingTransaction(w *Wallet, outputs []model.Output, fee float64) (*model.Transaction, error) {
	var inputs []model.Input
	// Total money from all UTXOs.
	var totalValue = 0.0
	for utxo := range w.UTXOs {
		inputs = append(inputs, model.Input{
			PrevTxHash: utxo.PrevTxHash,
			Index:      utxo.Index,
		})
		totalValue += w.UTXOs[utxo].Value
	}

	// Total amount of money that will be transferred to others.
	var totalTransferValue = 0.0
	for i := 0; i < len(outputs); i++ {
		totalTransferValue += outputs[i].Value
	}
	change := totalValue - totalTransferValue - fee
	if change < 0 {
		return nil, errors.Errorf("insufficient balance: have %f, need %f", totalValue, totalTransferValue+fee)
	}

	// Output with the amount of money left after transfer and fee.
	selfOutput := model.Output{
		Value:     change,
		PublicKey: w.PublicKeyBytes(),
	}
	outputs = append(outputs, selfOutput)
	pendingTransaction := model.Transaction{
		Inputs:  inputs,
		Outputs: outputs,
	}

	// Sign every input with the wallet's own private key.
	for i := 0; i < len(inputs); i++ {
		toSignMsg, err := utils.GetInputDataToSignByIndex(&pendingTransaction, i)
		if err != nil {
			return nil, err
		}
		pendingTransaction.Inputs[i].Signature, err = utils.Sign(toSignMsg, w.Keys)
		if err != nil {
			return nil, err
		}
	}
	return &pendingTransaction, nil
}
