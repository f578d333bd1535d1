package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luismorlan/scrooge_in_go/model"
)

func TestValidateTransactionSuccess(t *testing.T) {
	sk, pk := testKeyPair(t)
	_, receiverPk := testKeyPair(t)
	l := model.NewLedger()
	utxos := mintGenesis(t, l, []model.Output{{Value: 100, PublicKey: pk}})

	tx := makeSignedTx(t, utxos, keys(sk), []model.Output{{Value: 90, PublicKey: receiverPk}})

	reason, err := ValidateTransaction(tx, l)
	require.NoError(t, err)
	assert.Equal(t, ACCEPTED, reason)
}

func TestValidateTransactionMissingUTXO(t *testing.T) {
	sk, pk := testKeyPair(t)
	l := model.NewLedger()
	mintGenesis(t, l, []model.Output{{Value: 100, PublicKey: pk}})

	// Spend an outpoint the ledger has never heard of.
	bogus := model.UTXO{PrevTxHash: "deadbeef", Index: 0}
	tx := makeSignedTx(t, []model.UTXO{bogus}, keys(sk), []model.Output{{Value: 1, PublicKey: pk}})

	reason, err := ValidateTransaction(tx, l)
	require.NoError(t, err)
	assert.Equal(t, MISSING_UTXO, reason)
}

func TestValidateTransactionMissingSignature(t *testing.T) {
	sk, pk := testKeyPair(t)
	l := model.NewLedger()
	utxos := mintGenesis(t, l, []model.Output{{Value: 100, PublicKey: pk}})

	tx := makeSignedTx(t, utxos, keys(sk), []model.Output{{Value: 90, PublicKey: pk}})
	tx.Inputs[0].Signature = nil

	reason, err := ValidateTransaction(tx, l)
	require.NoError(t, err)
	assert.Equal(t, MISSING_SIGNATURE, reason)
}

func TestValidateTransactionBadSignature(t *testing.T) {
	_, pk := testKeyPair(t)
	otherSk, _ := testKeyPair(t)
	l := model.NewLedger()
	utxos := mintGenesis(t, l, []model.Output{{Value: 100, PublicKey: pk}})

	// Signed by somebody who doesn't own the output.
	tx := makeSignedTx(t, utxos, keys(otherSk), []model.Output{{Value: 90, PublicKey: pk}})

	reason, err := ValidateTransaction(tx, l)
	require.NoError(t, err)
	assert.Equal(t, BAD_SIGNATURE, reason)
}

func TestValidateTransactionDoubleSpendWithinTx(t *testing.T) {
	sk, pk := testKeyPair(t)
	l := model.NewLedger()
	utxos := mintGenesis(t, l, []model.Output{{Value: 100, PublicKey: pk}})

	// The same UTXO claimed by two inputs of one transaction.
	tx := makeSignedTx(t, []model.UTXO{utxos[0], utxos[0]}, keys(sk, sk), []model.Output{{Value: 90, PublicKey: pk}})

	reason, err := ValidateTransaction(tx, l)
	require.NoError(t, err)
	assert.Equal(t, DOUBLE_SPEND, reason)
}

func TestValidateTransactionNegativeOutput(t *testing.T) {
	sk, pk := testKeyPair(t)
	l := model.NewLedger()
	utxos := mintGenesis(t, l, []model.Output{{Value: 100, PublicKey: pk}})

	tx := makeSignedTx(t, utxos, keys(sk), []model.Output{
		{Value: 200, PublicKey: pk},
		{Value: -100, PublicKey: pk},
	})

	reason, err := ValidateTransaction(tx, l)
	require.NoError(t, err)
	assert.Equal(t, NEGATIVE_OUTPUT, reason)
}

func TestValidateTransactionInsufficientInput(t *testing.T) {
	sk, pk := testKeyPair(t)
	l := model.NewLedger()
	utxos := mintGenesis(t, l, []model.Output{{Value: 100, PublicKey: pk}})

	tx := makeSignedTx(t, utxos, keys(sk), []model.Output{{Value: 100.5, PublicKey: pk}})

	reason, err := ValidateTransaction(tx, l)
	require.NoError(t, err)
	assert.Equal(t, INSUFFICIENT_INPUT, reason)
}

// A transaction with no inputs at all is fine as long as it creates no value:
// there is nothing to sign and 0 >= 0 holds.
func TestValidateTransactionZeroInputZeroValueOutputs(t *testing.T) {
	_, pk := testKeyPair(t)
	l := model.NewLedger()

	tx := &model.Transaction{Outputs: []model.Output{{Value: 0, PublicKey: pk}, {Value: 0, PublicKey: pk}}}

	reason, err := ValidateTransaction(tx, l)
	require.NoError(t, err)
	assert.Equal(t, ACCEPTED, reason)
}

// Garbage key material in the ledger is not a rejection, it means the key
// codec cannot decide at all. That must surface as an error.
func TestValidateTransactionFaultsOnGarbageKeyMaterial(t *testing.T) {
	sk, _ := testKeyPair(t)
	l := model.NewLedger()
	utxos := mintGenesis(t, l, []model.Output{{Value: 100, PublicKey: []byte("not a real key")}})

	tx := makeSignedTx(t, utxos, keys(sk), []model.Output{{Value: 90, PublicKey: []byte("whoever")}})

	_, err := ValidateTransaction(tx, l)
	assert.Error(t, err)
}

// ValidateTransaction must leave the ledger untouched whatever the verdict.
func TestValidateTransactionIsReadOnly(t *testing.T) {
	sk, pk := testKeyPair(t)
	l := model.NewLedger()
	utxos := mintGenesis(t, l, []model.Output{{Value: 100, PublicKey: pk}})

	tx := makeSignedTx(t, utxos, keys(sk), []model.Output{{Value: 90, PublicKey: pk}})

	_, err := ValidateTransaction(tx, l)
	require.NoError(t, err)

	assert.Len(t, l.L, 1)
	assert.Equal(t, model.Output{Value: 100, PublicKey: pk}, l.L[utxos[0]])
}
