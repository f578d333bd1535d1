package main

import (
	"flag"
	"log"
	"math/rand"

	"github.com/Luismorlan/scrooge_in_go/config"
	"github.com/Luismorlan/scrooge_in_go/handler"
	"github.com/Luismorlan/scrooge_in_go/model"
	"github.com/Luismorlan/scrooge_in_go/utils"
	"github.com/Luismorlan/scrooge_in_go/visualize"
	"github.com/Luismorlan/scrooge_in_go/wallet"
)

var (
	configPath *string
	numWallets *int
	numEpochs  *int
	seed       *int64
	render     *bool
)

func init() {
	configPath = flag.String("config_path", "", "path to app config, defaults apply when empty")
	numWallets = flag.Int("wallets", 4, "how many wallets participate in the simulation")
	numEpochs = flag.Int("epochs", 5, "how many batches to run")
	seed = flag.Int64("seed", 42, "seed for the random transfers")
	render = flag.Bool("render", false, "dump a graphviz rendering of the final epoch")
}

// Mint a genesis pool giving every wallet one coin of the given value. The
// genesis transaction never goes through validation, its outputs are planted
// into the initial ledger directly.
func mintGenesis(wallets []*wallet.Wallet, value float64) (*model.Ledger, error) {
	genesis := &model.Transaction{}
	for _, w := range wallets {
		genesis.Outputs = append(genesis.Outputs, model.Output{
			Value:     value,
			PublicKey: w.PublicKeyBytes(),
		})
	}
	if err := utils.FinalizeTransaction(genesis); err != nil {
		return nil, err
	}
	l := model.NewLedger()
	for i := 0; i < len(genesis.Outputs); i++ {
		l.L[model.UTXO{PrevTxHash: genesis.Hash, Index: int64(i)}] = genesis.Outputs[i]
	}
	return l, nil
}

func main() {
	flag.Parse()

	cfg := config.DefaultAppConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.ParseAppConfig(*configPath)
		if err != nil {
			log.Fatal("failed to parse app config: ", err)
		}
	}

	rng := rand.New(rand.NewSource(*seed))

	wallets := make([]*wallet.Wallet, 0, *numWallets)
	for i := 0; i < *numWallets; i++ {
		w, err := wallet.NewWallet(cfg.KEY_BITS)
		if err != nil {
			log.Fatal("failed to create wallet: ", err)
		}
		wallets = append(wallets, w)
	}

	initial, err := mintGenesis(wallets, 100.0)
	if err != nil {
		log.Fatal("failed to mint genesis pool: ", err)
	}

	acceptor, err := handler.AcceptorForPolicy(cfg.POLICY)
	if err != nil {
		log.Fatal(err)
	}
	h, err := handler.NewTxHandler(initial, acceptor)
	if err != nil {
		log.Fatal("failed to create handler: ", err)
	}

	for e := 0; e < *numEpochs; e++ {
		batch, err := proposeBatch(h, wallets, rng)
		if err != nil {
			log.Fatal("failed to build batch: ", err)
		}
		accepted, err := h.HandleBatch(batch)
		if err != nil {
			log.Fatal("failed to handle batch: ", err)
		}
		log.Printf("epoch %d: proposed %d, accepted %d", e+1, len(batch), len(accepted))

		if *render && e == *numEpochs-1 {
			final, err := h.GetLedgerSnapshot()
			if err != nil {
				log.Fatal("failed to snapshot ledger: ", err)
			}
			visualize.Render(final, accepted, "simulation")
		}
	}
}
