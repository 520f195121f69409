package sim

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EngineVersion tags persisted runs and API responses.
const EngineVersion = "blackjackml-1.0.0"

// PolicyKind names a decision policy the runner can drive.
type PolicyKind string

const (
	PolicyBasic    PolicyKind = "basic"
	PolicyRandom   PolicyKind = "random"
	PolicyAdaptive PolicyKind = "adaptive"
)

// SourceKind selects the card source semantics.
type SourceKind string

const (
	// SourceDeck deals a finite 52-card deck without replacement,
	// reshuffling when exhausted.
	SourceDeck SourceKind = "deck"
	// SourceShoe deals with replacement; every draw is independent.
	SourceShoe SourceKind = "shoe"
)

// SessionRequest describes a batch of hands to simulate.
type SessionRequest struct {
	Policy       PolicyKind      `json:"policy"`
	Hands        int             `json:"hands"`
	StartingCash decimal.Decimal `json:"starting_cash"`
	BetSize      decimal.Decimal `json:"bet_size"`
	Source       SourceKind      `json:"source"`
	Seed         int64           `json:"seed"`
	Workers      int             `json:"workers,omitempty"`
	TimeoutMs    int             `json:"timeout_ms,omitempty"`

	// Adaptive training only.
	ExploreHands    int `json:"explore_hands,omitempty"`
	CheckpointEvery int `json:"checkpoint_every,omitempty"`
}

// Validate checks the request and fills defaults in place.
func (r *SessionRequest) Validate() error {
	switch r.Policy {
	case PolicyBasic, PolicyRandom, PolicyAdaptive:
	default:
		return fmt.Errorf("unknown policy %q", r.Policy)
	}
	switch r.Source {
	case "":
		r.Source = SourceShoe
	case SourceDeck, SourceShoe:
	default:
		return fmt.Errorf("unknown card source %q", r.Source)
	}
	if r.Hands <= 0 {
		return fmt.Errorf("hands must be positive, got %d", r.Hands)
	}
	if r.BetSize.Sign() <= 0 {
		r.BetSize = decimal.NewFromInt(10)
	}
	if r.StartingCash.Sign() <= 0 {
		r.StartingCash = decimal.NewFromInt(1000)
	}
	if r.StartingCash.LessThan(r.BetSize) {
		return fmt.Errorf("starting cash %s cannot cover a single bet of %s", r.StartingCash, r.BetSize)
	}
	if r.Workers <= 0 {
		r.Workers = 1
	}
	if r.Policy == PolicyAdaptive {
		// Table updates are sequenced within one trajectory; training
		// never runs concurrently.
		r.Workers = 1
		if r.ExploreHands < 0 || r.ExploreHands > r.Hands {
			return fmt.Errorf("explore hands %d out of range [0,%d]", r.ExploreHands, r.Hands)
		}
		if r.CheckpointEvery <= 0 {
			r.CheckpointEvery = 1000
		}
	}
	return nil
}

// Summary aggregates the outcomes of a session.
type Summary struct {
	HandsPlayed uint64          `json:"hands_played"`
	Wins        uint64          `json:"wins"`
	Pushes      uint64          `json:"pushes"`
	Losses      uint64          `json:"losses"`
	Blackjacks  uint64          `json:"blackjacks"`
	NetProfit   decimal.Decimal `json:"net_profit"`
	WinRate     float64         `json:"win_rate"`
	TimedOut    bool            `json:"timed_out,omitempty"`
}

// recordRound classifies a round by its cash delta. Naturals are
// counted at settlement (a split round can hold one natural inside any
// overall delta, so the delta alone cannot identify them).
func (s *Summary) recordRound(delta decimal.Decimal, naturals int) {
	s.HandsPlayed++
	switch {
	case delta.Sign() > 0:
		s.Wins++
	case delta.Sign() < 0:
		s.Losses++
	default:
		s.Pushes++
	}
	s.Blackjacks += uint64(naturals)
	s.NetProfit = s.NetProfit.Add(delta)
}

func (s *Summary) merge(o Summary) {
	s.HandsPlayed += o.HandsPlayed
	s.Wins += o.Wins
	s.Pushes += o.Pushes
	s.Losses += o.Losses
	s.Blackjacks += o.Blackjacks
	s.NetProfit = s.NetProfit.Add(o.NetProfit)
	s.TimedOut = s.TimedOut || o.TimedOut
}

func (s *Summary) finalize() {
	if s.HandsPlayed > 0 {
		s.WinRate = float64(s.Wins) / float64(s.HandsPlayed)
	}
}

// Checkpoint is a training progress snapshot.
type Checkpoint struct {
	HandsPlayed int             `json:"hands_played"`
	WinRate     float64         `json:"win_rate"`
	Cash        decimal.Decimal `json:"cash"`
}

// SessionResult is the complete outcome of a session.
type SessionResult struct {
	Summary       Summary        `json:"summary"`
	Checkpoints   []Checkpoint   `json:"checkpoints,omitempty"`
	EngineVersion string         `json:"engine_version"`
	Echo          SessionRequest `json:"echo"`
}
