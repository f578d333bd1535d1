package main

import (
	"math/rand"

	"github.com/Luismorlan/scrooge_in_go/handler"
	"github.com/Luismorlan/scrooge_in_go/model"
	"github.com/Luismorlan/scrooge_in_go/wallet"
)

// proposeBatch has every wallet with a balance propose one random transfer to
// some other wallet, leaving a small random fee on the table. Wallets that
// cannot afford a transfer sit the epoch out.
func proposeBatch(h *handler.TxHandler, wallets []*wallet.Wallet, rng *rand.Rand) ([]*model.Transaction, error) {
	snapshot, err := h.GetLedgerSnapshot()
	if err != nil {
		return nil, err
	}

	batch := make([]*model.Transaction, 0, len(wallets))
	if len(wallets) < 2 {
		return batch, nil
	}
	for i, w := range wallets {
		w.Refresh(snapshot)
		balance := w.GetBalance()
		if balance <= 1.0 {
			continue
		}

		// Pick any wallet but ourselves as the receiver.
		j := rng.Intn(len(wallets) - 1)
		if j >= i {
			j++
		}

		fee := rng.Float64()
		value := rng.Float64() * (balance - fee)
		tx, err := w.TransferMoney(wallets[j].PublicKeyBytes(), value, fee)
		if err != nil {
			return nil, err
		}
		batch = append(batch, tx)
	}
	return batch, nil
}
