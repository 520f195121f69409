// Command blackjackml plays, simulates, trains and serves blackjack
// sessions.
//
// Usage:
//
//	blackjackml play     [-cash N] [-seed N]
//	blackjackml simulate [-policy basic|random] [-hands N] [-workers N] ...
//	blackjackml train    [-hands N] [-explore N] [-checkpoint N] ...
//	blackjackml serve
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/sandfort/BlackJackML/internal/api"
	"github.com/sandfort/BlackJackML/internal/blackjack"
	"github.com/sandfort/BlackJackML/internal/config"
	"github.com/sandfort/BlackJackML/internal/console"
	"github.com/sandfort/BlackJackML/internal/sim"
	"github.com/sandfort/BlackJackML/internal/store"
)

func main() {
	// Missing .env is fine; environment variables win either way.
	_ = godotenv.Load()

	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(os.Args[2:])
	case "simulate":
		err = runSimulate(os.Args[2:])
	case "train":
		err = runTrain(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("blackjackml %s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: blackjackml <command> [flags]

commands:
  play      interactive blackjack at the terminal
  simulate  run a fixed/random policy session and print a summary
  train     train the adaptive policy and print checkpoints
  serve     expose the engine over HTTP`)
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	cash := fs.Float64("cash", 1000, "starting bankroll")
	seed := fs.Int64("seed", 0, "rng seed (0 uses the clock)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seedOrClock(*seed)))
	prompter := console.NewPrompter(os.Stdin, os.Stdout)
	table := &blackjack.Table{
		Player:   blackjack.NewPlayer(decimal.NewFromFloat(*cash)),
		Dealer:   &blackjack.Dealer{},
		Source:   blackjack.NewDeck(rng),
		Policy:   &console.HumanPolicy{Prompter: prompter},
		Observer: &console.TableObserver{Out: os.Stdout},
	}

	for table.Player.Cash.Sign() > 0 {
		bet, err := prompter.PromptBet(table.Player.Cash)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := table.PlayRound(bet); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
	}
	fmt.Printf("You leave the table with %s.\n", table.Player.Cash.StringFixed(2))
	return nil
}

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	sf := sessionFlags(fs)
	policy := fs.String("policy", "basic", "policy: basic or random")
	workers := fs.Int("workers", 1, "parallel workers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req := sf.request()
	req.Policy = sim.PolicyKind(*policy)
	req.Workers = *workers

	result, err := sim.NewRunner().Run(context.Background(), req)
	if err != nil {
		return err
	}
	fmt.Println(result.Summary)
	return nil
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	sf := sessionFlags(fs)
	explore := fs.Int("explore", -1, "hands to explore before exploiting (-1 means half the session)")
	checkpoint := fs.Int("checkpoint", 1000, "hands between checkpoints")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req := sf.request()
	req.Policy = sim.PolicyAdaptive
	req.ExploreHands = *explore
	if req.ExploreHands < 0 {
		req.ExploreHands = req.Hands / 2
	}
	req.CheckpointEvery = *checkpoint

	trainer := sim.NewTrainer(func(cp sim.Checkpoint) {
		fmt.Printf("hands %8d  win rate %.4f  cash %s\n",
			cp.HandsPlayed, cp.WinRate, cp.Cash.StringFixed(2))
	})
	result, err := trainer.Train(context.Background(), req)
	if err != nil {
		return err
	}
	fmt.Println(result.Summary)
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := log.New(os.Stdout, "[SERVE] ", log.LstdFlags)

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(context.Background()); err != nil {
		return fmt.Errorf("migrating store: %w", err)
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewServer(db).Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s (%s store)", cfg.ListenAddr, cfg.DBDriver)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func openStore(cfg config.Config) (store.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		return store.NewPostgresDB(context.Background(), cfg.DBDSN)
	default:
		return store.NewSQLiteDB(cfg.DBPath)
	}
}

// sessionFlagValues holds the flags shared by simulate and train;
// request materializes them after Parse.
type sessionFlagValues struct {
	hands   *int
	seed    *int64
	timeout *int
	cash    *float64
	bet     *float64
	source  *string
}

func sessionFlags(fs *flag.FlagSet) sessionFlagValues {
	return sessionFlagValues{
		hands:   fs.Int("hands", 10000, "hands to play"),
		seed:    fs.Int64("seed", 0, "rng seed (0 uses the clock)"),
		timeout: fs.Int("timeout", 0, "session timeout in ms (0 disables)"),
		cash:    fs.Float64("cash", 1000, "starting bankroll"),
		bet:     fs.Float64("bet", 10, "bet per hand"),
		source:  fs.String("source", "shoe", "card source: shoe or deck"),
	}
}

func (f sessionFlagValues) request() sim.SessionRequest {
	return sim.SessionRequest{
		Hands:        *f.hands,
		Seed:         seedOrClock(*f.seed),
		TimeoutMs:    *f.timeout,
		StartingCash: decimal.NewFromFloat(*f.cash),
		BetSize:      decimal.NewFromFloat(*f.bet),
		Source:       sim.SourceKind(*f.source),
	}
}

func seedOrClock(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
