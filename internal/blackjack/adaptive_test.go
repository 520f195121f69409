package blackjack

import (
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func TestStrategyTableUniformInit(t *testing.T) {
	table := NewStrategyTable()
	for i := range table.Initial {
		for j := range table.Initial[i] {
			sum := 0.0
			for _, w := range table.Initial[i][j] {
				if w != 0.25 {
					t.Fatalf("initial cell [%d][%d] weight %v, want 0.25", i, j, w)
				}
				sum += w
			}
			if sum != 1.0 {
				t.Fatalf("initial cell [%d][%d] sum %v, want 1", i, j, sum)
			}
		}
	}
	for i := range table.Subsequent {
		for j := range table.Subsequent[i] {
			if table.Subsequent[i][j][0] != 0.5 || table.Subsequent[i][j][1] != 0.5 {
				t.Fatalf("subsequent cell [%d][%d] = %v, want [0.5 0.5]", i, j, table.Subsequent[i][j])
			}
		}
	}
}

func TestUpdateIncrementThenHalve(t *testing.T) {
	p := NewAdaptivePolicy(rand.New(rand.NewSource(1)))
	cell := &p.Table().Initial[11][5]

	p.Update(true, []Step{{ActionIndex: ActionIndexStand, HandBucket: 11, DealerBucket: 5}})

	// Chosen slot: (0.25+1)/2. Others: 0.25/2.
	if got, want := cell[ActionIndexStand], 0.625; got != want {
		t.Errorf("rewarded weight = %v, want %v", got, want)
	}
	for _, idx := range []int{ActionIndexHit, ActionIndexDouble, ActionIndexSplit} {
		if got, want := cell[idx], 0.125; got != want {
			t.Errorf("unrewarded weight[%d] = %v, want %v", idx, got, want)
		}
	}

	// Cell sum moves from s to (s+1)/2, never renormalized to 1.
	sum := cell[0] + cell[1] + cell[2] + cell[3]
	if want := (1.0 + 1.0) / 2; math.Abs(sum-want) > 1e-12 {
		t.Errorf("cell sum = %v, want %v", sum, want)
	}
}

func TestUpdateFailureLeavesTable(t *testing.T) {
	p := NewAdaptivePolicy(rand.New(rand.NewSource(1)))
	before := p.Table().Initial[11][5]
	p.Update(false, []Step{{ActionIndex: ActionIndexHit, HandBucket: 11, DealerBucket: 5}})
	if p.Table().Initial[11][5] != before {
		t.Error("failed hand must not change the table")
	}
}

func TestUpdateRoutesStepsByPosition(t *testing.T) {
	p := NewAdaptivePolicy(rand.New(rand.NewSource(1)))
	traj := []Step{
		{ActionIndex: ActionIndexHit, HandBucket: 11, DealerBucket: 5},
		{ActionIndex: ActionIndexHit, HandBucket: 3, DealerBucket: 5},
		{ActionIndex: ActionIndexStand, HandBucket: 1, DealerBucket: 5},
	}
	p.Update(true, traj)

	if got := p.Table().Initial[11][5][ActionIndexHit]; got != 0.625 {
		t.Errorf("first step must hit the initial table, weight = %v", got)
	}
	if got := p.Table().Subsequent[3][5][ActionIndexHit]; got != 0.75 {
		t.Errorf("second step must hit the subsequent table, weight = %v", got)
	}
	if got := p.Table().Subsequent[1][5][ActionIndexStand]; got != 0.75 {
		t.Errorf("third step must hit the subsequent table, weight = %v", got)
	}
}

func TestSampleCutPoints(t *testing.T) {
	// With weights summing below 1, the last action absorbs the
	// remainder of the unit interval.
	weights := []float64{0.1, 0.1}
	counts := [2]int{}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		counts[sampleCutPoints(weights, rng)]++
	}
	if counts[0] == 0 || counts[1] == 0 {
		t.Fatalf("both actions should be sampled, got %v", counts)
	}
	// Roughly 10% hit, 90% stand.
	if counts[1] < counts[0]*5 {
		t.Errorf("remainder should fall to the last action: %v", counts)
	}
}

func TestExploreStaysLegal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := NewAdaptivePolicy(rng)
	p.SetMode(ModeExplore)

	h := hand("10", "6")
	cash := decimal.Zero
	bet := decimal.NewFromInt(10)
	dec := Decision{
		Hand:     h,
		DealerUp: card("9"),
		Initial:  true,
		Legal:    LegalActions(h, true, cash, bet),
		Cash:     cash,
		Bet:      bet,
	}
	for i := 0; i < 200; i++ {
		a, err := p.Decide(dec)
		if err != nil {
			t.Fatalf("Decide: %v", err)
		}
		if a != ActionHit && a != ActionStand {
			t.Fatalf("explore returned illegal action %v with no cash and no pair", a)
		}
		p.Finish(false)
	}
}

func TestExploitDowngradesIllegalSample(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := NewAdaptivePolicy(rng)
	p.SetMode(ModeExploit)

	// Force the split slot to dominate a non-pair cell.
	bucket := InitialBucket(hand("10", "6"))
	cell := &p.Table().Initial[bucket][DealerBucket(card("9"))]
	*cell = [4]float64{0, 0, 0, 1}

	h := hand("10", "6")
	cash := decimal.NewFromInt(1000)
	bet := decimal.NewFromInt(10)
	dec := Decision{
		Hand:     h,
		DealerUp: card("9"),
		Initial:  true,
		Legal:    LegalActions(h, true, cash, bet),
		Cash:     cash,
		Bet:      bet,
	}
	a, err := p.Decide(dec)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if a != ActionHit {
		t.Errorf("illegal split sample should downgrade to hit, got %v", a)
	}
}

func TestFinishClearsTrajectory(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	p := NewAdaptivePolicy(rng)

	h := hand("10", "6")
	dec := Decision{
		Hand:     h,
		DealerUp: card("9"),
		Initial:  true,
		Legal:    LegalActions(h, true, decimal.NewFromInt(100), decimal.NewFromInt(10)),
		Cash:     decimal.NewFromInt(100),
		Bet:      decimal.NewFromInt(10),
	}
	if _, err := p.Decide(dec); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if len(p.Trajectory()) != 1 {
		t.Fatalf("trajectory length = %d, want 1", len(p.Trajectory()))
	}
	p.Finish(true)
	if len(p.Trajectory()) != 0 {
		t.Errorf("Finish must clear the trajectory, got %d steps", len(p.Trajectory()))
	}
}
