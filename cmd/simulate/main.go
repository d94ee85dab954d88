// Command simulate runs offline drafts over a catalog and reports how often
// each option is offered, to check catalog balance before shipping it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/osse101/UpgradeDraft_Go/internal/catalog"
	"github.com/osse101/UpgradeDraft_Go/internal/config"
	"github.com/osse101/UpgradeDraft_Go/internal/domain"
	"github.com/osse101/UpgradeDraft_Go/internal/draft"
	"github.com/osse101/UpgradeDraft_Go/internal/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}
}

type wallet struct{ balance int64 }

func (w *wallet) Balance() int64 { return w.balance }

type optionStats struct {
	slotZero int
	offered  int
	bought   int
}

type report struct {
	drafts      int
	offers      int
	emptyDrafts int
	fallbacks   int
	perOption   map[string]*optionStats
	order       []string
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.SetOutput(out)
	catalogPath := fs.String("catalog", config.DefaultCatalogPath, "upgrade catalog file")
	players := fs.Int("players", 1000, "number of simulated players")
	levels := fs.Int("levels", 20, "level-ups per player")
	seed := fs.Uint64("seed", 1, "random seed")
	balance := fs.Int64("balance", 0, "starting balance per player")
	logLevel := fs.String("log-level", logger.LogLevelWarn, "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = *logLevel
	logCfg.ServiceName = "simulate"
	logger.InitLoggerWithWriter(logCfg, os.Stderr)
	if *players < 1 || *levels < 1 {
		return fmt.Errorf("players and levels must be positive")
	}

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		return err
	}

	logger.Info("Simulating drafts", "catalog", *catalogPath, "version", cat.Version(), "players", *players, "levels", *levels, "seed", *seed)
	rep := simulate(cat, draft.NewSeededSource(*seed), *players, *levels, *balance)
	rep.print(out)
	return nil
}

// simulate plays every level-up the way a greedy player would: take the
// slot-0 offer when affordable, otherwise the first affordable one.
func simulate(cat *catalog.Catalog, rng draft.RandomSource, players, levels int, startBalance int64) *report {
	rep := &report{perOption: make(map[string]*optionStats)}
	for _, opt := range cat.Options() {
		rep.perOption[opt.Key] = &optionStats{}
		rep.order = append(rep.order, opt.Key)
	}

	for p := 0; p < players; p++ {
		w := &wallet{balance: startBalance}
		var policy draft.Policy = draft.NewBinaryPolicy(w)
		if table := cat.RarityWeights(); len(table) > 0 {
			policy = draft.NewWeightedPolicy(policy, draft.RarityWeights(table, 1))
		}
		sampler := draft.NewSampler(policy, rng, draft.WithFallbackHook(func(domain.UpgradeOption, float64) {
			rep.fallbacks++
		}))
		ledger := draft.NewMemoryLedger()

		for l := 0; l < levels; l++ {
			w.balance += cat.Wage()
			offers := sampler.Draw(cat.Options(), ledger, cat.Slots())

			rep.drafts++
			rep.offers += len(offers)
			if len(offers) == 0 {
				rep.emptyDrafts++
				continue
			}
			rep.perOption[offers[0].Key].slotZero++

			var chosen *domain.UpgradeOption
			for i := range offers {
				rep.perOption[offers[i].Key].offered++
				if chosen == nil && offers[i].Cost <= w.balance {
					chosen = &offers[i]
				}
			}
			if chosen != nil {
				w.balance -= chosen.Cost
				ledger.Increment(chosen.Key)
				rep.perOption[chosen.Key].bought++
			}
		}
	}
	return rep
}

func (r *report) print(out io.Writer) {
	fmt.Fprintf(out, "drafts: %d  avg offers: %.2f  empty: %d  fallbacks: %d\n\n",
		r.drafts, float64(r.offers)/float64(r.drafts), r.emptyDrafts, r.fallbacks)

	keys := append([]string(nil), r.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return r.perOption[keys[i]].slotZero > r.perOption[keys[j]].slotZero
	})

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OPTION\tSLOT0\tSLOT0 %\tOFFERED\tBOUGHT")
	for _, k := range keys {
		s := r.perOption[k]
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%d\t%d\n", k, s.slotZero, 100*float64(s.slotZero)/float64(r.drafts), s.offered, s.bought)
	}
	tw.Flush()
}
