package handler

import (
	"log"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/Luismorlan/scrooge_in_go/model"
)

// TxHandler owns a private copy of the UTXO pool and accepts batches of
// proposed transactions against it. One handler handles one epoch at a time;
// it is not safe for concurrent use and does not need to be, every operation
// is a plain synchronous call.
type TxHandler struct {
	// The UTXO pool this handler maintains. Deep-copied at construction, only
	// ever mutated by committing accepted transactions, never exposed directly.
	ledger *model.Ledger
	// The acceptance policy for a batch.
	acceptor Acceptor
	// How many batches this handler has processed so far.
	epoch int64
	// A unique identifier of this handler, this doesn't impact acceptance, only
	// used for easier debugging when multiple handlers run side by side.
	uuid string
}

// copyLedger makes a deep copy of a ledger. A plain copier.Copy would alias
// the underlying map, so the copy must be deep or the handler and the caller
// would see each other's mutations.
func copyLedger(src *model.Ledger) (*model.Ledger, error) {
	l := model.NewLedger()
	if err := copier.CopyWithOption(l, src, copier.Option{DeepCopy: true}); err != nil {
		return nil, errors.Wrap(err, "failed to copy ledger")
	}
	return l, nil
}

// NewTxHandler creates a handler whose starting UTXO pool is a deep copy of
// the given ledger. The caller keeps its own ledger; nothing is aliased.
func NewTxHandler(initial *model.Ledger, acceptor Acceptor) (*TxHandler, error) {
	myuuid := uuid.NewV4()
	l, err := copyLedger(initial)
	if err != nil {
		return nil, err
	}
	return &TxHandler{
		ledger:   l,
		acceptor: acceptor,
		uuid:     myuuid.String(),
	}, nil
}

// AcceptorForPolicy maps a policy name from the app config to an acceptance
// strategy.
func AcceptorForPolicy(policy string) (Acceptor, error) {
	switch policy {
	case "naive":
		return NaiveAcceptor{}, nil
	case "maxfee":
		return MaxFeeAcceptor{}, nil
	}
	return nil, errors.Errorf("unknown acceptance policy %q", policy)
}

// IsValid is a read-only check of a single transaction against the current
// UTXO pool. The error is only non-nil when a crypto/serialization primitive
// could not make a determination; an ordinary invalid transaction is just
// (false, nil).
func (h *TxHandler) IsValid(tx *model.Transaction) (bool, error) {
	reason, err := ValidateTransaction(tx, h.ledger)
	if err != nil {
		return false, err
	}
	return reason == ACCEPTED, nil
}

// HandleBatch runs one epoch: it feeds the proposed transactions to the
// configured acceptor, commits the winners to the internal UTXO pool, and
// returns the accepted subset in the order the acceptor committed them. The
// returned slice is freshly allocated and never aliases the input.
func (h *TxHandler) HandleBatch(txs []*model.Transaction) ([]*model.Transaction, error) {
	accepted, err := h.acceptor.AcceptBatch(txs, h.ledger)
	if err != nil {
		return nil, err
	}
	h.epoch++
	log.Printf("handler %s epoch %d: accepted %d of %d transactions", h.uuid, h.epoch, len(accepted), len(txs))
	return accepted, nil
}

// GetLedgerSnapshot returns a deep copy of the current UTXO pool, e.g. for a
// wallet to scan for its own outputs. Mutating the copy has no effect on the
// handler.
func (h *TxHandler) GetLedgerSnapshot() (*model.Ledger, error) {
	return copyLedger(h.ledger)
}

// Epoch returns how many batches this handler has processed.
func (h *TxHandler) Epoch() int64 {
	return h.epoch
}
