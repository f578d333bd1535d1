package visualize

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os/exec"
	"sort"

	"github.com/bradleyjkemp/memviz"

	"github.com/Luismorlan/scrooge_in_go/model"
)

// We re-define the visualize model here because the real model carries long
// hashes and raw public key bytes that render terribly in a graph.
type utxo struct {
	prevTxHash string
	index      int64
}

type output struct {
	value     float64
	publicKey string
}

type entry struct {
	utxo   utxo
	output output
}

type pool struct {
	entries []entry
}

type transaction struct {
	hash    string
	inputs  []utxo
	outputs []output
}

type epoch struct {
	pool     pool
	accepted []transaction
}

// The string of public key and hash is just too long to render, instead we take only first 3 and last 3
// characters and replace the middle part with '...'. E.g. "abcdefghi" will be rendered as "abc...ghi"
func shortenString(s string) string {
	if len(s) < 9 {
		return s
	}
	return fmt.Sprintf("%s...%s", s[0:3], s[len(s)-3:])
}

func shortenPK(s string) string {
	if len(s) < 9 {
		return s
	}
	mid := len(s) / 2
	i := mid - 1
	j := mid + 2
	return fmt.Sprintf("...%s...", s[i:j])
}

func ledgerToPool(l *model.Ledger) pool {
	p := pool{}
	for u, out := range l.L {
		p.entries = append(p.entries, entry{
			utxo:   utxo{prevTxHash: shortenString(u.PrevTxHash), index: u.Index},
			output: output{value: out.Value, publicKey: shortenPK(string(out.PublicKey))},
		})
	}
	// Map iteration order is random, sort for a stable rendering.
	sort.Slice(p.entries, func(i, j int) bool {
		if p.entries[i].utxo.prevTxHash != p.entries[j].utxo.prevTxHash {
			return p.entries[i].utxo.prevTxHash < p.entries[j].utxo.prevTxHash
		}
		return p.entries[i].utxo.index < p.entries[j].utxo.index
	})
	return p
}

func txToTx(tx *model.Transaction) transaction {
	t := transaction{
		hash: shortenString(tx.Hash),
	}

	for i := 0; i < len(tx.Inputs); i++ {
		in := tx.Inputs[i]
		t.inputs = append(t.inputs, utxo{prevTxHash: shortenString(in.PrevTxHash), index: in.Index})
	}

	for i := 0; i < len(tx.Outputs); i++ {
		out := tx.Outputs[i]
		t.outputs = append(t.outputs, output{publicKey: shortenPK(string(out.PublicKey)), value: out.Value})
	}
	return t
}

func constructData(l *model.Ledger, accepted []*model.Transaction) epoch {
	e := epoch{pool: ledgerToPool(l)}
	for i := 0; i < len(accepted); i++ {
		e.accepted = append(e.accepted, txToTx(accepted[i]))
	}
	return e
}

// Entry to this package, where:
// l: the UTXO pool after the epoch.
// accepted: the transactions committed during the epoch.
// id: unique id of the handler.
func Render(l *model.Ledger, accepted []*model.Transaction, id string) {
	buf := &bytes.Buffer{}

	data := constructData(l, accepted)

	memviz.Map(buf, &data)

	// Write the parsed data to disk.
	fileName := "/tmp/epochdata-" + id
	outputName := "/tmp/rendered-epoch-" + id + ".png"
	err := ioutil.WriteFile(fileName, buf.Bytes(), 0644)
	if err != nil {
		panic(err)
	}

	// Render to png with the dot binary, if it is installed.
	cmd := exec.Command("dot", "-Tpng", fileName, "-o", outputName)
	if err := cmd.Run(); err != nil {
		fmt.Println("failed to render, is graphviz installed?", err)
	}
}
