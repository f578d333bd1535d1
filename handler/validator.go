package handler

import (
	"log"

	"github.com/Luismorlan/scrooge_in_go/model"
	"github.com/Luismorlan/scrooge_in_go/utils"
)

// Why a transaction got rejected. The public contract is boolean, the reason
// only exists for diagnostics and tests.
type RejectReason int

const (
	ACCEPTED RejectReason = iota
	// The input spends an output that is not in the UTXO pool.
	MISSING_UTXO
	// The input carries no signature at all.
	MISSING_SIGNATURE
	// The signature doesn't verify against the owner of the spent output.
	BAD_SIGNATURE
	// The same UTXO is spent by more than one input of the transaction.
	DOUBLE_SPEND
	// Some output carries a negative value.
	NEGATIVE_OUTPUT
	// Total output value exceeds total input value.
	INSUFFICIENT_INPUT
)

func (r RejectReason) String() string {
	switch r {
	case ACCEPTED:
		return "accepted"
	case MISSING_UTXO:
		return "missing utxo"
	case MISSING_SIGNATURE:
		return "missing signature"
	case BAD_SIGNATURE:
		return "bad signature"
	case DOUBLE_SPEND:
		return "double spend"
	case NEGATIVE_OUTPUT:
		return "negative output"
	case INSUFFICIENT_INPUT:
		return "insufficient input"
	}
	return "unknown"
}

// A transaction is valid against the given ledger if:
// 1. All inputs are UTXO.
// 2. Signatures on every input are present and valid.
// 3. No UTXO is claimed twice by the transaction.
// 4. Outputs are non-negative numbers.
// 5. Total outputs are smaller or equal to total inputs.
// The ledger is read-only here; nothing gets mutated. A non-nil error means a
// primitive (key codec, serialization) could not make a determination, which
// is a fault of the environment rather than a rejection of the transaction.
func ValidateTransaction(t *model.Transaction, l *model.Ledger) (RejectReason, error) {
	var totalInput = 0.0
	var totalOutput = 0.0

	// Store all seen UTXOs to catch a double spend within the transaction.
	seenUtxo := make(map[model.UTXO]bool)

	for i := 0; i < len(t.Inputs); i++ {
		// Verify the input is using UTXO.
		input := &t.Inputs[i]
		inputUtxo := utils.CreateUtxoFromInput(input)
		output, ok := l.L[inputUtxo]
		if !ok {
			log.Println("Transaction input has already been spent or never existed:", *input)
			return MISSING_UTXO, nil
		}
		totalInput += output.Value

		// Verify signature.
		if input.Signature == nil {
			log.Println("The input carries no signature:", *input)
			return MISSING_SIGNATURE, nil
		}
		inputData, err := utils.GetInputDataToSignByIndex(t, i)
		if err != nil {
			return ACCEPTED, err
		}
		pk, err := utils.BytesToPublicKey(output.PublicKey)
		if err != nil {
			return ACCEPTED, err
		}
		if isValid := utils.Verify(inputData, pk, input.Signature); !isValid {
			log.Println("The input's signature doesn't match Tx data:", *input)
			return BAD_SIGNATURE, nil
		}

		// No double spending.
		if seenUtxo[inputUtxo] {
			log.Println("The input is a double spending:", *input)
			return DOUBLE_SPEND, nil
		}
		seenUtxo[inputUtxo] = true
	}

	for i := 0; i < len(t.Outputs); i++ {
		// Output should be a non-negative number.
		output := t.Outputs[i]
		if output.Value < 0 {
			log.Println("Invalid output value:", output.Value)
			return NEGATIVE_OUTPUT, nil
		}
		totalOutput += output.Value
	}

	if totalInput < totalOutput {
		log.Printf("Transaction creates value out of thin air: input %f < output %f", totalInput, totalOutput)
		return INSUFFICIENT_INPUT, nil
	}

	return ACCEPTED, nil
}
