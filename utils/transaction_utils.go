package utils

import (
	"github.com/pkg/errors"

	"github.com/Luismorlan/scrooge_in_go/model"
)

// GetInputBytes converts input to byte slice. With or without the signature.
func GetInputBytes(input *model.Input, withSig bool) ([]byte, error) {
	var data []byte
	prevHash, err := HexToBytes(input.PrevTxHash)
	if err != nil {
		return nil, errors.Wrap(err, "input references a malformed transaction hash")
	}
	data = append(data, prevHash...)
	data = append(data, Int64ToBytes(input.Index)...)
	if withSig {
		data = append(data, input.Signature...)
	}
	return data, nil
}

func GetOutputBytes(output *model.Output) []byte {
	var data []byte
	data = append(data, Float64ToBytes(output.Value)...)
	data = append(data, output.PublicKey...)
	return data
}

// Concat all inputs (including signature) and outputs raw data in byte slices.
func GetTransactionBytes(t *model.Transaction) ([]byte, error) {
	var data []byte
	for i := 0; i < len(t.Inputs); i++ {
		input := &t.Inputs[i]
		inputData, err := GetInputBytes(input, true /*withSig=*/)
		if err != nil {
			return nil, err
		}
		data = append(data, inputData...)
	}

	for i := 0; i < len(t.Outputs); i++ {
		output := &t.Outputs[i]
		outputData := GetOutputBytes(output)
		data = append(data, outputData...)
	}
	return data, nil
}

// GetInputDataToSignByIndex returns the canonical bytes the owner of the
// referenced output must sign for the input at the given index: that input
// without its own signature, followed by every output of the transaction.
func GetInputDataToSignByIndex(t *model.Transaction, index int) ([]byte, error) {
	var data []byte

	if len(t.Inputs)-1 < index {
		return nil, errors.New("index is out of the range")
	}
	input := &t.Inputs[index]
	// Don't include signature since we haven't signed it yet.
	inputData, err := GetInputBytes(input, false /*withSig=*/)
	if err != nil {
		return nil, err
	}
	data = append(data, inputData...)

	for i := 0; i < len(t.Outputs); i++ {
		output := &t.Outputs[i]
		outputData := GetOutputBytes(output)
		data = append(data, outputData...)
	}
	return data, nil
}

// FinalizeTransaction freezes the transaction content and computes its
// identity hash. Finalizing an already finalized transaction is a no-op, so
// the identity stays stable however many times this gets called. Outputs can
// only be referenced as UTXO after this point.
func FinalizeTransaction(t *model.Transaction) error {
	if t.IsFinalized() {
		return nil
	}
	data, err := GetTransactionBytes(t)
	if err != nil {
		return errors.Wrap(err, "failed to serialize transaction for hashing")
	}
	t.Hash = BytesToHex(SHA256(data))
	return nil
}

// TransactionFee is the surplus of the transaction's resolved input value over
// its total output value, floored at zero. Inputs are resolved against the
// provided ledger, so the transaction must have been validated against it.
func TransactionFee(t *model.Transaction, l *model.Ledger) (float64, error) {
	var totalInput = 0.0
	var totalOutput = 0.0
	for i := 0; i < len(t.Inputs); i++ {
		utxo := CreateUtxoFromInput(&t.Inputs[i])
		output, ok := l.L[utxo]
		if !ok {
			return 0, errors.Errorf("input %d of transaction is not backed by the ledger", i)
		}
		totalInput += output.Value
	}
	for i := 0; i < len(t.Outputs); i++ {
		totalOutput += t.Outputs[i].Value
	}
	if totalInput < totalOutput {
		return 0, nil
	}
	return totalInput - totalOutput, nil
}
