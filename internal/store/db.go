package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sandfort/BlackJackML/internal/sim"
)

// DB persists simulation runs and their training checkpoints. Learned
// strategy tables are deliberately not persisted; runs carry telemetry
// only.
type DB interface {
	Close() error
	Migrate(ctx context.Context) error
	SaveRun(ctx context.Context, run *Run) error
	UpdateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, query RunsQuery) (*RunsList, error)
	SaveCheckpoints(ctx context.Context, runID string, cps []sim.Checkpoint) error
	GetCheckpoints(ctx context.Context, runID string) ([]Checkpoint, error)
}

// RunStatus tracks a run through its lifecycle.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusFinished RunStatus = "finished"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one simulation or training session.
type Run struct {
	ID             string          `json:"id"`
	Policy         string          `json:"policy"`
	Source         string          `json:"source"`
	Hands          int             `json:"hands"`
	Seed           int64           `json:"seed"`
	BetSize        decimal.Decimal `json:"bet_size"`
	StartingCash   decimal.Decimal `json:"starting_cash"`
	ExploreHands   int             `json:"explore_hands"`
	Status         RunStatus       `json:"status"`
	HandsPlayed    uint64          `json:"hands_played"`
	Wins           uint64          `json:"wins"`
	Pushes         uint64          `json:"pushes"`
	Losses         uint64          `json:"losses"`
	Blackjacks     uint64          `json:"blackjacks"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	WinRate        float64         `json:"win_rate"`
	TimedOut       bool            `json:"timed_out"`
	ErrorMessage   string          `json:"error_message,omitempty"`
	EngineVersion  string          `json:"engine_version"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewRun builds a pending run row from a session request.
func NewRun(id string, req sim.SessionRequest) *Run {
	return &Run{
		ID:            id,
		Policy:        string(req.Policy),
		Source:        string(req.Source),
		Hands:         req.Hands,
		Seed:          req.Seed,
		BetSize:       req.BetSize,
		StartingCash:  req.StartingCash,
		ExploreHands:  req.ExploreHands,
		Status:        RunStatusRunning,
		NetProfit:     decimal.Zero,
		EngineVersion: sim.EngineVersion,
		CreatedAt:     time.Now().UTC(),
	}
}

// ApplySummary copies a finished session's summary onto the run.
func (r *Run) ApplySummary(s sim.Summary) {
	r.Status = RunStatusFinished
	r.HandsPlayed = s.HandsPlayed
	r.Wins = s.Wins
	r.Pushes = s.Pushes
	r.Losses = s.Losses
	r.Blackjacks = s.Blackjacks
	r.NetProfit = s.NetProfit
	r.WinRate = s.WinRate
	r.TimedOut = s.TimedOut
}

// Checkpoint is a persisted training snapshot.
type Checkpoint struct {
	ID          int64           `json:"id"`
	RunID       string          `json:"run_id"`
	HandsPlayed int             `json:"hands_played"`
	WinRate     float64         `json:"win_rate"`
	Cash        decimal.Decimal `json:"cash"`
}

// RunsQuery filters and pages the run list.
type RunsQuery struct {
	Policy  string `json:"policy,omitempty"`
	Page    int    `json:"page"`
	PerPage int    `json:"perPage"`
}

// RunsList is a paginated runs response.
type RunsList struct {
	Runs       []Run `json:"runs"`
	TotalCount int   `json:"totalCount"`
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	TotalPages int   `json:"totalPages"`
}

func normalizeQuery(q *RunsQuery) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PerPage <= 0 || q.PerPage > 200 {
		q.PerPage = 50
	}
}
