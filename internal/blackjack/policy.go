package blackjack

import (
	"math/rand"

	"github.com/shopspring/decimal"
)

// Action is a player decision on the active hand.
type Action int

const (
	ActionHit Action = iota
	ActionStand
	ActionDouble
	ActionSplit
)

func (a Action) String() string {
	switch a {
	case ActionHit:
		return "hit"
	case ActionStand:
		return "stand"
	case ActionDouble:
		return "double"
	case ActionSplit:
		return "split"
	default:
		return "unknown"
	}
}

// Index returns the action's slot within a strategy table cell.
func (a Action) Index() int {
	return int(a)
}

// Decision is the state a policy may consult when choosing an action.
// Policies are synchronous: the hand does not advance until Decide
// returns.
type Decision struct {
	Hand     Hand
	DealerUp Card
	Initial  bool // first decision on this hand
	Legal    []Action
	Cash     decimal.Decimal
	Bet      decimal.Decimal
}

// LegalIncludes reports whether the action is in the legal set.
func LegalIncludes(legal []Action, a Action) bool {
	for _, l := range legal {
		if l == a {
			return true
		}
	}
	return false
}

// LegalIncludes reports whether the action is legal for this decision.
func (d Decision) LegalIncludes(a Action) bool {
	return LegalIncludes(d.Legal, a)
}

// Policy chooses one action per decision point. Implementations must
// return an action from the legal set; Stand is always legal so the set
// is never empty.
type Policy interface {
	Decide(dec Decision) (Action, error)
}

// LegalActions computes the legal action set for a decision point.
// DoubleDown and Split are offered only on the first decision of a hand,
// and only when the cash balance covers doubling the stake; Split
// additionally requires a pair.
func LegalActions(hand Hand, initial bool, cash, bet decimal.Decimal) []Action {
	legal := []Action{ActionHit, ActionStand}
	if !initial {
		return legal
	}
	affordable := cash.GreaterThanOrEqual(bet)
	if affordable {
		legal = append(legal, ActionDouble)
	}
	if affordable && hand.IsPair() {
		legal = append(legal, ActionSplit)
	}
	return legal
}

// RandomPolicy picks uniformly from the legal action set.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy creates a random policy backed by the given rng.
func NewRandomPolicy(rng *rand.Rand) *RandomPolicy {
	return &RandomPolicy{rng: rng}
}

func (p *RandomPolicy) Decide(dec Decision) (Action, error) {
	return dec.Legal[p.rng.Intn(len(dec.Legal))], nil
}
