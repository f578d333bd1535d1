package model

// Unspent transaction output. An UTXO present in the ledger denotes an output
// that has not been consumed by any committed transaction yet.
type UTXO struct {
	// Hex string of the transaction that created the output.
	PrevTxHash string
	// The index of the output in that transaction. Together with PrevTxHash, it identifies the unique output.
	Index int64
}

// Ledger is simply a pool of UTXO mapped to the output each one references.
type Ledger struct {
	L map[UTXO]Output
}

func NewLedger() *Ledger {
	return &Ledger{
		L: make(map[UTXO]Output),
	}
}
