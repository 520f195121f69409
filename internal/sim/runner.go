package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sandfort/BlackJackML/internal/blackjack"
)

// Runner simulates batches of blackjack hands. Stateless policies
// (basic, random) shard the batch across workers, one player/dealer
// pair and rng per worker; the adaptive policy routes to the sequential
// Trainer since its table is mutated between hands.
type Runner struct{}

// NewRunner creates a runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the session described by req.
func (r *Runner) Run(ctx context.Context, req SessionRequest) (*SessionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	if req.Policy == PolicyAdaptive {
		trainer := NewTrainer(nil)
		return trainer.Train(ctx, req)
	}

	workers := req.Workers
	perWorker := req.Hands / workers
	remainder := req.Hands % workers

	results := make(chan Summary, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		hands := perWorker
		if w < remainder {
			hands++
		}
		if hands == 0 {
			continue
		}
		wg.Add(1)
		go func(worker, hands int) {
			defer wg.Done()
			results <- runWorker(ctx, req, worker, hands)
		}(w, hands)
	}
	wg.Wait()
	close(results)

	var summary Summary
	for s := range results {
		summary.merge(s)
	}
	summary.finalize()

	return &SessionResult{
		Summary:       summary,
		EngineVersion: EngineVersion,
		Echo:          req,
	}, nil
}

// runWorker plays `hands` rounds on a private table and returns the
// local summary.
func runWorker(ctx context.Context, req SessionRequest, worker, hands int) Summary {
	rng := rand.New(rand.NewSource(req.Seed + int64(worker)))
	table, naturals := newTable(req, rng)

	var summary Summary
	for i := 0; i < hands; i++ {
		select {
		case <-ctx.Done():
			summary.TimedOut = true
			return summary
		default:
		}

		naturals.count = 0
		before := refill(table.Player, req)
		if err := table.PlayRound(req.BetSize); err != nil {
			// Rounds only fail on policy errors, which the stateless
			// policies never produce.
			continue
		}
		summary.recordRound(table.Player.Cash.Sub(before), naturals.count)
	}
	return summary
}

// naturalCounter observes settlement to tally natural blackjacks. Reset
// count before each round.
type naturalCounter struct {
	count int
}

func (c *naturalCounter) PlayerDrew(blackjack.Hand, blackjack.Card) {}
func (c *naturalCounter) DealerRevealed(blackjack.Hand)             {}
func (c *naturalCounter) HandSettled(hand, dealer blackjack.Hand, bet, payout decimal.Decimal) {
	if hand.Categorize() == blackjack.CategoryBlackjack {
		c.count++
	}
}

// newTable builds a table with the requested policy and card source.
func newTable(req SessionRequest, rng *rand.Rand) (*blackjack.Table, *naturalCounter) {
	var policy blackjack.Policy
	switch req.Policy {
	case PolicyRandom:
		policy = blackjack.NewRandomPolicy(rng)
	default:
		policy = blackjack.BasicPolicy{}
	}
	naturals := &naturalCounter{}
	return &blackjack.Table{
		Player:   blackjack.NewPlayer(req.StartingCash),
		Dealer:   &blackjack.Dealer{},
		Source:   newSource(req.Source, rng),
		Policy:   policy,
		Observer: naturals,
	}, naturals
}

func newSource(kind SourceKind, rng *rand.Rand) blackjack.CardSource {
	if kind == SourceDeck {
		return blackjack.NewDeck(rng)
	}
	return blackjack.NewShoe(rng)
}

// refill tops the bankroll back up when it cannot cover the next round
// (bet plus a potential double or split), so sessions measure policy
// quality rather than ruin. It returns the balance the round is
// measured against.
func refill(p *blackjack.Player, req SessionRequest) decimal.Decimal {
	floor := req.BetSize.Add(req.BetSize)
	if p.Cash.LessThan(floor) {
		p.Cash = req.StartingCash
	}
	return p.Cash
}

// String implements fmt.Stringer for log lines.
func (s Summary) String() string {
	return fmt.Sprintf("hands=%d wins=%d pushes=%d losses=%d blackjacks=%d net=%s winrate=%.4f",
		s.HandsPlayed, s.Wins, s.Pushes, s.Losses, s.Blackjacks, s.NetProfit, s.WinRate)
}
