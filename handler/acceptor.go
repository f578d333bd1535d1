package handler

import (
	"log"
	"sort"

	"github.com/Luismorlan/scrooge_in_go/model"
	"github.com/Luismorlan/scrooge_in_go/utils"
)

// An Acceptor picks the mutually consistent subset of a batch that gets
// committed, and commits it. The two implementations share the validator and
// the mutator and only differ in how they order and select candidates.
type Acceptor interface {
	AcceptBatch(txs []*model.Transaction, l *model.Ledger) ([]*model.Transaction, error)
}

// NaiveAcceptor scans the batch in the exact order given and commits each
// transaction that validates against the current, progressively mutated
// ledger. First valid in order wins; a transaction may spend an output
// created earlier in the same batch, but only if its predecessor came first.
type NaiveAcceptor struct{}

func (NaiveAcceptor) AcceptBatch(txs []*model.Transaction, l *model.Ledger) ([]*model.Transaction, error) {
	accepted := make([]*model.Transaction, 0, len(txs))
	for _, tx := range txs {
		reason, err := ValidateTransaction(tx, l)
		if err != nil {
			return nil, err
		}
		if reason != ACCEPTED {
			continue
		}
		if err := AcceptTransaction(tx, l); err != nil {
			return nil, err
		}
		accepted = append(accepted, tx)
	}
	return accepted, nil
}

// MaxFeeAcceptor approximates the maximum total fee over the batch. Exact
// maximization is a knapsack over shared UTXOs, so we use an approximation
// algorithm instead, assuming that the transactions are sparse (in a sense
// that two transactions rarely claim the same UTXO):
//  1. Validate every candidate against the ledger as it was before the batch.
//  2. Sort the valid ones by fee in descending order.
//  3. Walk the sorted list and commit every transaction whose UTXOs have not
//     been claimed by an earlier pick; skip the rest permanently.
//
// Transactions with equal fee keep their relative batch order (stable sort).
// Note this never accepts a chain of transactions within one batch: peers are
// validated against the snapshot, where the chained outputs don't exist yet.
type MaxFeeAcceptor struct{}

type scoredTx struct {
	tx  *model.Transaction
	fee float64
}

func (MaxFeeAcceptor) AcceptBatch(txs []*model.Transaction, l *model.Ledger) ([]*model.Transaction, error) {
	// Validation and fee computation both run against the pre-batch snapshot,
	// never against the ledger being committed to.
	snapshot, err := copyLedger(l)
	if err != nil {
		return nil, err
	}

	candidates := make([]scoredTx, 0, len(txs))
	for _, tx := range txs {
		reason, err := ValidateTransaction(tx, snapshot)
		if err != nil {
			return nil, err
		}
		if reason != ACCEPTED {
			continue
		}
		fee, err := utils.TransactionFee(tx, snapshot)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, scoredTx{tx: tx, fee: fee})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].fee > candidates[j].fee
	})

	accepted := make([]*model.Transaction, 0, len(candidates))
	claimed := make(map[model.UTXO]bool)
	for _, c := range candidates {
		if claimsTaken(claimed, c.tx) {
			log.Println("Skipping transaction that claims an already taken UTXO, fee:", c.fee)
			continue
		}
		if err := AcceptTransaction(c.tx, l); err != nil {
			return nil, err
		}
		claim(claimed, c.tx)
		accepted = append(accepted, c.tx)
	}
	return accepted, nil
}

// claimsTaken tells whether any input of the transaction spends a UTXO that
// an earlier accepted transaction of the same batch already claimed.
func claimsTaken(claimed map[model.UTXO]bool, t *model.Transaction) bool {
	for i := 0; i < len(t.Inputs); i++ {
		if claimed[utils.CreateUtxoFromInput(&t.Inputs[i])] {
			return true
		}
	}
	return false
}

func claim(claimed map[model.UTXO]bool, t *model.Transaction) {
	for i := 0; i < len(t.Inputs); i++ {
		claimed[utils.CreateUtxoFromInput(&t.Inputs[i])] = true
	}
}
