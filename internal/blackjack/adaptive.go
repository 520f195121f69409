package blackjack

import "math/rand"

// Mode selects how the adaptive policy picks actions.
type Mode int

const (
	// ModeExplore ignores the learned weights and plays a uniformly
	// random legal action.
	ModeExplore Mode = iota
	// ModeExploit samples from the learned weight tables.
	ModeExploit
)

// StrategyTable holds the adaptive policy's weights. The initial table
// covers the first decision of a hand (hit/stand/double/split); the
// subsequent table covers every later decision (hit/stand only).
//
// The weights start uniform but are never renormalized: the update rule
// increments the rewarded slot by 1 and then halves the whole cell, so
// a cell behaves as a bounded exponential-decay weighting rather than a
// probability distribution. Sampling treats the raw weights as
// unnormalized cumulative cut points.
type StrategyTable struct {
	Initial    [InitialBuckets][DealerBuckets][4]float64
	Subsequent [SubsequentBuckets][DealerBuckets][2]float64
}

// NewStrategyTable returns a table with uniform weights.
func NewStrategyTable() *StrategyTable {
	t := &StrategyTable{}
	for i := range t.Initial {
		for j := range t.Initial[i] {
			for k := range t.Initial[i][j] {
				t.Initial[i][j][k] = 0.25
			}
		}
	}
	for i := range t.Subsequent {
		for j := range t.Subsequent[i] {
			for k := range t.Subsequent[i][j] {
				t.Subsequent[i][j][k] = 0.5
			}
		}
	}
	return t
}

// Step records one decision for credit assignment after the hand.
type Step struct {
	ActionIndex  int
	HandBucket   int
	DealerBucket int
}

// AdaptivePolicy selects actions from a StrategyTable and updates the
// table from observed hand outcomes. Each policy instance owns its
// table exclusively; tables are mutated only between hands.
type AdaptivePolicy struct {
	table      *StrategyTable
	mode       Mode
	rng        *rand.Rand
	trajectory []Step
}

// NewAdaptivePolicy creates an adaptive policy with a fresh uniform
// table.
func NewAdaptivePolicy(rng *rand.Rand) *AdaptivePolicy {
	return &AdaptivePolicy{
		table: NewStrategyTable(),
		mode:  ModeExplore,
		rng:   rng,
	}
}

// SetMode switches between explore and exploit.
func (p *AdaptivePolicy) SetMode(m Mode) { p.mode = m }

// Mode returns the current selection mode.
func (p *AdaptivePolicy) Mode() Mode { return p.mode }

// Table exposes the learned weights for inspection.
func (p *AdaptivePolicy) Table() *StrategyTable { return p.table }

// Decide picks an action and records it on the current trajectory.
func (p *AdaptivePolicy) Decide(dec Decision) (Action, error) {
	dealerBucket := DealerBucket(dec.DealerUp)

	var action Action
	var handBucket int
	if dec.Initial && len(p.trajectory) == 0 {
		handBucket = InitialBucket(dec.Hand)
		action = p.decideInitial(dec, handBucket, dealerBucket)
	} else {
		handBucket = SubsequentBucket(dec.Hand)
		action = p.decideSubsequent(dec, handBucket, dealerBucket)
	}

	p.trajectory = append(p.trajectory, Step{
		ActionIndex:  action.Index(),
		HandBucket:   handBucket,
		DealerBucket: dealerBucket,
	})
	return action, nil
}

func (p *AdaptivePolicy) decideInitial(dec Decision, handBucket, dealerBucket int) Action {
	if p.mode == ModeExplore {
		return dec.Legal[p.rng.Intn(len(dec.Legal))]
	}
	cell := p.table.Initial[handBucket][dealerBucket]
	action := sampleCutPoints(cell[:], p.rng)
	// A sampled double or split may be illegal for this hand (not a
	// pair, or unaffordable); downgrade the same way the fixed policy
	// downgrades an unaffordable double.
	if !dec.LegalIncludes(action) {
		action = ActionHit
	}
	return action
}

func (p *AdaptivePolicy) decideSubsequent(dec Decision, handBucket, dealerBucket int) Action {
	if p.mode == ModeExplore {
		if p.rng.Intn(2) == 0 {
			return ActionHit
		}
		return ActionStand
	}
	cell := p.table.Subsequent[handBucket][dealerBucket]
	return sampleCutPoints(cell[:], p.rng)
}

// sampleCutPoints draws a uniform value in [0,1) and walks the weights
// in fixed index order as cumulative cut points. If the weights sum to
// less than 1 the last action absorbs the remainder.
func sampleCutPoints(weights []float64, rng *rand.Rand) Action {
	r := rng.Float64()
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r < cum {
			return Action(i)
		}
	}
	return Action(len(weights) - 1)
}

// Trajectory returns the decisions recorded since the last Finish call.
func (p *AdaptivePolicy) Trajectory() []Step {
	return p.trajectory
}

// Finish applies the outcome of the hand to the table and clears the
// trajectory. success means the player's cash after settlement is at
// least what it was before the deal (a push or better).
func (p *AdaptivePolicy) Finish(success bool) {
	p.Update(success, p.trajectory)
	p.trajectory = p.trajectory[:0]
}

// Update applies the learning rule to every step of a trajectory. On
// success the chosen action's weight is incremented by 1, then every
// weight in that cell is halved; the cell sum moves from s to (s+1)/2.
// Failed hands leave the table untouched. The first step always updates
// the initial table, all later steps the subsequent table.
func (p *AdaptivePolicy) Update(success bool, trajectory []Step) {
	if !success {
		return
	}
	for i, st := range trajectory {
		if i == 0 {
			cell := &p.table.Initial[st.HandBucket][st.DealerBucket]
			cell[st.ActionIndex]++
			for j := range cell {
				cell[j] /= 2
			}
			continue
		}
		cell := &p.table.Subsequent[st.HandBucket][st.DealerBucket]
		idx := st.ActionIndex
		if idx > ActionIndexStand {
			// Subsequent cells only track hit/stand.
			idx = ActionIndexHit
		}
		cell[idx]++
		for j := range cell {
			cell[j] /= 2
		}
	}
}
