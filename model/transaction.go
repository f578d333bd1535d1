package model

type Input struct {
	// Hash of the transaction that outputs the coin being spent.
	PrevTxHash string
	// The index of the output in that transaction. Together with PrevTxHash, it identifies the unique output.
	Index int64
	// Signature using the previous owner's SK, over this input's data to sign.
	Signature []byte
}

type Output struct {
	// How much value to transfer.
	Value float64
	// Public key of the receiver, in the form of bytes.
	PublicKey []byte
}

type Transaction struct {
	// Hash of this transaction in the hex string format. We use this to uniquely
	// identify the transaction. Empty until the transaction is finalized, so its
	// outputs can only be referenced as UTXO after finalization.
	Hash string
	// All inputs of this transaction.
	Inputs []Input
	// All outputs of this transaction.
	Outputs []Output
}

// A transaction is finalized once its identity hash has been computed.
func (t *Transaction) IsFinalized() bool {
	return t.Hash != ""
}
