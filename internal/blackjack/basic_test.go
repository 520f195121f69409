package blackjack

import (
	"testing"

	"github.com/shopspring/decimal"
)

func basicDecision(h Hand, dealerUp string) Decision {
	cash := decimal.NewFromInt(1000)
	bet := decimal.NewFromInt(10)
	return Decision{
		Hand:     h,
		DealerUp: card(dealerUp),
		Initial:  true,
		Legal:    LegalActions(h, true, cash, bet),
		Cash:     cash,
		Bet:      bet,
	}
}

func TestBasicPolicyTable(t *testing.T) {
	tests := []struct {
		name     string
		hand     Hand
		dealerUp string
		expected Action
	}{
		// Hard totals.
		{"hard 16 vs 2 stands", hand("10", "6"), "2", ActionStand},
		{"hard 16 vs 10 hits", hand("10", "6"), "10", ActionHit},
		{"hard 17 vs ace stands", hand("10", "7"), "A", ActionStand},
		{"hard 12 vs 4 stands", hand("10", "2"), "4", ActionStand},
		{"hard 12 vs 2 hits", hand("10", "2"), "2", ActionHit},
		{"hard 11 doubles", hand("6", "5"), "10", ActionDouble},
		{"hard 10 vs 9 doubles", hand("6", "4"), "9", ActionDouble},
		{"hard 10 vs 10 hits", hand("6", "4"), "10", ActionHit},
		{"hard 9 vs 4 doubles", hand("6", "3"), "4", ActionDouble},
		{"hard 9 vs 2 hits", hand("6", "3"), "2", ActionHit},
		{"hard 8 hits", hand("6", "2"), "5", ActionHit},
		// Soft totals.
		{"soft 18 vs 7 stands", hand("A", "7"), "7", ActionStand},
		{"soft 18 vs 9 hits", hand("A", "7"), "9", ActionHit},
		{"soft 19 stands", hand("A", "8"), "10", ActionStand},
		{"soft 17 vs 4 doubles", hand("A", "6"), "4", ActionDouble},
		{"soft 17 vs 2 hits", hand("A", "6"), "2", ActionHit},
		{"soft 13 vs 6 doubles", hand("A", "2"), "6", ActionDouble},
		{"soft 13 vs 4 hits", hand("A", "2"), "4", ActionHit},
		// Pairs.
		{"aces split", hand("A", "A"), "10", ActionSplit},
		{"eights split", hand("8", "8"), "10", ActionSplit},
		{"tens stand", hand("10", "10"), "6", ActionStand},
		{"nines split vs 6", hand("9", "9"), "6", ActionSplit},
		{"nines stand vs 7", hand("9", "9"), "7", ActionStand},
		{"sevens split vs 7", hand("7", "7"), "7", ActionSplit},
		{"sevens hit vs 8", hand("7", "7"), "8", ActionHit},
		{"fives never split", hand("5", "5"), "6", ActionDouble},
		{"fours hit", hand("4", "4"), "5", ActionHit},
		{"twos split vs 7", hand("2", "2"), "7", ActionSplit},
		{"twos hit vs 8", hand("2", "2"), "8", ActionHit},
	}

	var policy BasicPolicy
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Decide(basicDecision(tt.hand, tt.dealerUp))
			if err != nil {
				t.Fatalf("Decide: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Decide() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBasicPolicyDeterministic(t *testing.T) {
	var policy BasicPolicy
	dec := basicDecision(hand("10", "6"), "2")
	first, _ := policy.Decide(dec)
	for i := 0; i < 10; i++ {
		again, _ := policy.Decide(dec)
		if again != first {
			t.Fatalf("decision changed between calls: %v then %v", first, again)
		}
	}
}

func TestBasicPolicyDowngrades(t *testing.T) {
	// Doubling with an empty bankroll downgrades to hit.
	h := hand("6", "5")
	dec := Decision{
		Hand:     h,
		DealerUp: card("6"),
		Initial:  true,
		Legal:    LegalActions(h, true, decimal.Zero, decimal.NewFromInt(10)),
		Cash:     decimal.Zero,
		Bet:      decimal.NewFromInt(10),
	}
	var policy BasicPolicy
	got, err := policy.Decide(dec)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if got != ActionHit {
		t.Errorf("unaffordable double: got %v, want hit", got)
	}

	// Splitting eights without funds falls back to the hard-16 row.
	h = hand("8", "8")
	dec.Hand = h
	dec.DealerUp = card("10")
	dec.Legal = LegalActions(h, true, decimal.Zero, decimal.NewFromInt(10))
	got, err = policy.Decide(dec)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if got != ActionHit {
		t.Errorf("unaffordable split vs 10: got %v, want hit", got)
	}

	// Subsequent decisions never offer double even with cash.
	h = hand("6", "5")
	dec = Decision{
		Hand:     h,
		DealerUp: card("6"),
		Initial:  false,
		Legal:    LegalActions(h, false, decimal.NewFromInt(1000), decimal.NewFromInt(10)),
		Cash:     decimal.NewFromInt(1000),
		Bet:      decimal.NewFromInt(10),
	}
	got, err = policy.Decide(dec)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if got != ActionHit {
		t.Errorf("double outside initial decision: got %v, want hit", got)
	}
}
