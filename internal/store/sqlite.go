package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/sandfort/BlackJackML/internal/sim"
)

// SQLiteDB implements the DB interface using the pure-Go SQLite driver.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) the database at path.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrency between the API and background runs.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate creates the schema.
func (s *SQLiteDB) Migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			policy TEXT NOT NULL,
			source TEXT NOT NULL,
			hands INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			bet_size TEXT NOT NULL,
			starting_cash TEXT NOT NULL,
			explore_hands INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			hands_played INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0,
			pushes INTEGER NOT NULL DEFAULT 0,
			losses INTEGER NOT NULL DEFAULT 0,
			blackjacks INTEGER NOT NULL DEFAULT 0,
			net_profit TEXT NOT NULL DEFAULT '0',
			win_rate REAL NOT NULL DEFAULT 0,
			timed_out INTEGER NOT NULL DEFAULT 0,
			error_message TEXT NOT NULL DEFAULT '',
			engine_version TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS checkpoints (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			hands_played INTEGER NOT NULL,
			win_rate REAL NOT NULL,
			cash TEXT NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_policy ON runs(policy)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_checkpoints_run ON checkpoints(run_id, hands_played)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveRun inserts a new run row.
func (s *SQLiteDB) SaveRun(ctx context.Context, run *Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, policy, source, hands, seed, bet_size, starting_cash,
			explore_hands, status, hands_played, wins, pushes, losses,
			blackjacks, net_profit, win_rate, timed_out, error_message,
			engine_version, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Policy, run.Source, run.Hands, run.Seed,
		run.BetSize.String(), run.StartingCash.String(),
		run.ExploreHands, string(run.Status), run.HandsPlayed,
		run.Wins, run.Pushes, run.Losses, run.Blackjacks,
		run.NetProfit.String(), run.WinRate, run.TimedOut,
		run.ErrorMessage, run.EngineVersion, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// UpdateRun rewrites the mutable columns of a run.
func (s *SQLiteDB) UpdateRun(ctx context.Context, run *Run) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE runs SET
			status = ?, hands_played = ?, wins = ?, pushes = ?,
			losses = ?, blackjacks = ?, net_profit = ?, win_rate = ?,
			timed_out = ?, error_message = ?
		WHERE id = ?`,
		string(run.Status), run.HandsPlayed, run.Wins, run.Pushes,
		run.Losses, run.Blackjacks, run.NetProfit.String(), run.WinRate,
		run.TimedOut, run.ErrorMessage, run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

const runColumns = `id, policy, source, hands, seed, bet_size, starting_cash,
	explore_hands, status, hands_played, wins, pushes, losses, blackjacks,
	net_profit, win_rate, timed_out, error_message, engine_version, created_at`

func scanRun(row interface{ Scan(...any) error }) (*Run, error) {
	var run Run
	var betSize, startingCash, netProfit, status string
	err := row.Scan(
		&run.ID, &run.Policy, &run.Source, &run.Hands, &run.Seed,
		&betSize, &startingCash, &run.ExploreHands, &status,
		&run.HandsPlayed, &run.Wins, &run.Pushes, &run.Losses,
		&run.Blackjacks, &netProfit, &run.WinRate, &run.TimedOut,
		&run.ErrorMessage, &run.EngineVersion, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Status = RunStatus(status)
	if run.BetSize, err = decimal.NewFromString(betSize); err != nil {
		return nil, fmt.Errorf("corrupt bet_size %q: %w", betSize, err)
	}
	if run.StartingCash, err = decimal.NewFromString(startingCash); err != nil {
		return nil, fmt.Errorf("corrupt starting_cash %q: %w", startingCash, err)
	}
	if run.NetProfit, err = decimal.NewFromString(netProfit); err != nil {
		return nil, fmt.Errorf("corrupt net_profit %q: %w", netProfit, err)
	}
	return &run, nil
}

// GetRun fetches one run by ID.
func (s *SQLiteDB) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns a page of runs, newest first.
func (s *SQLiteDB) ListRuns(ctx context.Context, query RunsQuery) (*RunsList, error) {
	normalizeQuery(&query)

	where := ""
	args := []any{}
	if query.Policy != "" {
		where = " WHERE policy = ?"
		args = append(args, query.Policy)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}

	args = append(args, query.PerPage, (query.Page-1)*query.PerPage)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs`+where+` ORDER BY created_at DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	list := &RunsList{
		Runs:       []Run{},
		TotalCount: total,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: (total + query.PerPage - 1) / query.PerPage,
	}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		list.Runs = append(list.Runs, *run)
	}
	return list, rows.Err()
}

// SaveCheckpoints appends training snapshots for a run.
func (s *SQLiteDB) SaveCheckpoints(ctx context.Context, runID string, cps []sim.Checkpoint) error {
	if len(cps) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO checkpoints (run_id, hands_played, win_rate, cash) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare checkpoint insert: %w", err)
	}
	defer stmt.Close()

	for _, cp := range cps {
		if _, err := stmt.ExecContext(ctx, runID, cp.HandsPlayed, cp.WinRate, cp.Cash.String()); err != nil {
			return fmt.Errorf("failed to save checkpoint: %w", err)
		}
	}
	return tx.Commit()
}

// GetCheckpoints returns a run's snapshots in training order.
func (s *SQLiteDB) GetCheckpoints(ctx context.Context, runID string) ([]Checkpoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, hands_played, win_rate, cash
		 FROM checkpoints WHERE run_id = ? ORDER BY hands_played`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkpoints: %w", err)
	}
	defer rows.Close()

	var cps []Checkpoint
	for rows.Next() {
		var cp Checkpoint
		var cash string
		if err := rows.Scan(&cp.ID, &cp.RunID, &cp.HandsPlayed, &cp.WinRate, &cash); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint: %w", err)
		}
		if cp.Cash, err = decimal.NewFromString(cash); err != nil {
			return nil, fmt.Errorf("corrupt cash %q: %w", cash, err)
		}
		cps = append(cps, cp)
	}
	return cps, rows.Err()
}
