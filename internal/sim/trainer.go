package sim

import (
	"context"
	"math/rand"

	"github.com/sandfort/BlackJackML/internal/blackjack"
)

// Trainer runs the adaptive policy through a training session: an
// explore phase of uniformly random legal play followed by an exploit
// phase sampling the learned tables. Training is strictly sequential;
// the trajectory recorded during a round and the table update that
// follows it must not interleave with other rounds.
type Trainer struct {
	// Progress, when set, receives every checkpoint as it is cut.
	Progress func(Checkpoint)
}

// NewTrainer creates a trainer with an optional progress callback.
func NewTrainer(progress func(Checkpoint)) *Trainer {
	return &Trainer{Progress: progress}
}

// Train runs the adaptive session described by req and returns the
// result with its checkpoint trail.
func (t *Trainer) Train(ctx context.Context, req SessionRequest) (*SessionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(req.Seed))
	policy := blackjack.NewAdaptivePolicy(rng)
	policy.SetMode(blackjack.ModeExplore)

	naturals := &naturalCounter{}
	table := &blackjack.Table{
		Player:   blackjack.NewPlayer(req.StartingCash),
		Dealer:   &blackjack.Dealer{},
		Source:   newSource(req.Source, rng),
		Policy:   policy,
		Observer: naturals,
	}

	var summary Summary
	var checkpoints []Checkpoint

	for i := 0; i < req.Hands; i++ {
		if ctx.Err() != nil {
			summary.TimedOut = true
			break
		}

		if i == req.ExploreHands {
			policy.SetMode(blackjack.ModeExploit)
		}

		naturals.count = 0
		before := refill(table.Player, req)
		if err := table.PlayRound(req.BetSize); err != nil {
			return nil, err
		}
		delta := table.Player.Cash.Sub(before)

		// A push or better counts as success for credit assignment.
		policy.Finish(delta.Sign() >= 0)
		summary.recordRound(delta, naturals.count)

		if (i+1)%req.CheckpointEvery == 0 {
			cp := Checkpoint{
				HandsPlayed: i + 1,
				WinRate:     float64(summary.Wins) / float64(summary.HandsPlayed),
				Cash:        table.Player.Cash,
			}
			checkpoints = append(checkpoints, cp)
			if t.Progress != nil {
				t.Progress(cp)
			}
		}
	}
	summary.finalize()

	return &SessionResult{
		Summary:       summary,
		Checkpoints:   checkpoints,
		EngineVersion: EngineVersion,
		Echo:          req,
	}, nil
}
