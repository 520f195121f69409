package sim

import (
	"context"
	"testing"
)

func TestTrainerProducesCheckpoints(t *testing.T) {
	var streamed []Checkpoint
	trainer := NewTrainer(func(cp Checkpoint) {
		streamed = append(streamed, cp)
	})

	req := SessionRequest{
		Policy:          PolicyAdaptive,
		Hands:           5000,
		Seed:            42,
		ExploreHands:    2500,
		CheckpointEvery: 500,
	}
	result, err := trainer.Train(context.Background(), req)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	if got, want := len(result.Checkpoints), 10; got != want {
		t.Fatalf("checkpoints = %d, want %d", got, want)
	}
	if len(streamed) != len(result.Checkpoints) {
		t.Errorf("progress callback saw %d checkpoints, result has %d", len(streamed), len(result.Checkpoints))
	}
	for i, cp := range result.Checkpoints {
		if want := (i + 1) * 500; cp.HandsPlayed != want {
			t.Errorf("checkpoint %d at %d hands, want %d", i, cp.HandsPlayed, want)
		}
		if cp.WinRate < 0 || cp.WinRate > 1 {
			t.Errorf("checkpoint %d win rate %v out of range", i, cp.WinRate)
		}
	}

	s := result.Summary
	if s.HandsPlayed != 5000 {
		t.Errorf("hands played = %d, want 5000", s.HandsPlayed)
	}
	if s.Wins+s.Pushes+s.Losses != s.HandsPlayed {
		t.Errorf("outcome counts do not sum: %s", s)
	}
}

func TestTrainerDeterministicForSeed(t *testing.T) {
	req := SessionRequest{
		Policy:          PolicyAdaptive,
		Hands:           2000,
		Seed:            7,
		ExploreHands:    1000,
		CheckpointEvery: 1000,
	}
	a, err := NewTrainer(nil).Train(context.Background(), req)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	b, err := NewTrainer(nil).Train(context.Background(), req)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if a.Summary.Wins != b.Summary.Wins || !a.Summary.NetProfit.Equal(b.Summary.NetProfit) {
		t.Errorf("same seed diverged: %s vs %s", a.Summary, b.Summary)
	}
}

func TestTrainerForcesSequentialExecution(t *testing.T) {
	req := SessionRequest{
		Policy:  PolicyAdaptive,
		Hands:   10,
		Workers: 8,
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if req.Workers != 1 {
		t.Errorf("adaptive sessions must run on one worker, got %d", req.Workers)
	}
}

func TestRunnerRoutesAdaptiveToTrainer(t *testing.T) {
	runner := NewRunner()
	req := SessionRequest{
		Policy:          PolicyAdaptive,
		Hands:           1000,
		Seed:            3,
		ExploreHands:    500,
		CheckpointEvery: 250,
	}
	result, err := runner.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Checkpoints) == 0 {
		t.Error("adaptive run should carry checkpoints")
	}
}
