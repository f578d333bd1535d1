package handler

import (
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Luismorlan/scrooge_in_go/model"
	"github.com/Luismorlan/scrooge_in_go/utils"
)

// 1024 bit keys are plenty for tests and much faster to generate.
const TEST_KEY_BITS = 1024

func keys(ks ...*rsa.PrivateKey) []*rsa.PrivateKey {
	return ks
}

func testKeyPair(t *testing.T) (*rsa.PrivateKey, []byte) {
	t.Helper()
	sk, pk := utils.GenerateKeyPair(TEST_KEY_BITS)
	require.NotNil(t, sk)
	return sk, utils.PublicKeyToBytes(pk)
}

// mintGenesis plants the given outputs into the ledger through one finalized
// genesis transaction and returns the UTXO for each output, in order. The
// genesis transaction doesn't go through validation, just like the initial
// snapshot a handler is constructed from.
func mintGenesis(t *testing.T, l *model.Ledger, outputs []model.Output) []model.UTXO {
	t.Helper()
	genesis := &model.Transaction{Outputs: outputs}
	require.NoError(t, utils.FinalizeTransaction(genesis))

	utxos := make([]model.UTXO, 0, len(outputs))
	for i := 0; i < len(outputs); i++ {
		u := model.UTXO{PrevTxHash: genesis.Hash, Index: int64(i)}
		l.L[u] = outputs[i]
		utxos = append(utxos, u)
	}
	return utxos
}

// makeSignedTx builds a transaction spending the given UTXOs into the given
// outputs, signing input i with keys[i]. The transaction is left unfinalized,
// committing it does that.
func makeSignedTx(t *testing.T, utxos []model.UTXO, keys []*rsa.PrivateKey, outputs []model.Output) *model.Transaction {
	t.Helper()
	require.Equal(t, len(utxos), len(keys))

	tx := &model.Transaction{Outputs: outputs}
	for _, u := range utxos {
		tx.Inputs = append(tx.Inputs, model.Input{PrevTxHash: u.PrevTxHash, Index: u.Index})
	}
	for i := range tx.Inputs {
		msg, err := utils.GetInputDataToSignByIndex(tx, i)
		require.NoError(t, err)
		sig, err := utils.Sign(msg, keys[i])
		require.NoError(t, err)
		tx.Inputs[i].Signature = sig
	}
	return tx
}
