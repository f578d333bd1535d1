package handler

import (
	"github.com/pkg/errors"

	"github.com/Luismorlan/scrooge_in_go/model"
	"github.com/Luismorlan/scrooge_in_go/utils"
)

// AcceptTransaction commits a single transaction to the ledger:
// 1. Finalize the transaction so its outputs become addressable.
// 2. Claim every input.
// 3. Store every output.
// The transaction must have passed ValidateTransaction against this very
// ledger state first; there is no rollback path.
func AcceptTransaction(t *model.Transaction, l *model.Ledger) error {
	if err := utils.FinalizeTransaction(t); err != nil {
		return errors.Wrap(err, "failed to finalize transaction")
	}

	// Claim every input.
	for i := 0; i < len(t.Inputs); i++ {
		utxo := utils.CreateUtxoFromInput(&t.Inputs[i])
		delete(l.L, utxo)
	}

	// Store every output.
	for i := 0; i < len(t.Outputs); i++ {
		utxo := model.UTXO{
			PrevTxHash: t.Hash,
			Index:      int64(i),
		}
		l.L[utxo] = t.Outputs[i]
	}

	return nil
}
