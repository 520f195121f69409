package blackjack

import (
	"math/rand"
	"testing"
)

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestDeckDealsWithoutReplacement(t *testing.T) {
	deck := NewDeck(newTestRand(1))
	seen := make(map[Card]bool, 52)
	for i := 0; i < 52; i++ {
		c := deck.Draw()
		if seen[c] {
			t.Fatalf("card %v dealt twice", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Fatalf("dealt %d distinct cards, want 52", len(seen))
	}
	if deck.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", deck.Remaining())
	}

	// The 53rd draw reshuffles rather than failing.
	c := deck.Draw()
	if c.Rank == "" {
		t.Error("draw after exhaustion returned a zero card")
	}
	if deck.Remaining() != 51 {
		t.Errorf("remaining after reshuffle draw = %d, want 51", deck.Remaining())
	}
}

func TestDeckShuffleIsSeeded(t *testing.T) {
	a := NewDeck(newTestRand(42))
	b := NewDeck(newTestRand(42))
	for i := 0; i < 52; i++ {
		if ca, cb := a.Draw(), b.Draw(); ca != cb {
			t.Fatalf("same seed diverged at card %d: %v vs %v", i, ca, cb)
		}
	}
}

func TestShoeDrawsWithReplacement(t *testing.T) {
	shoe := NewShoe(newTestRand(3))
	seen := make(map[Card]int)
	for i := 0; i < 5000; i++ {
		seen[shoe.Draw()]++
	}
	// Every one of the 52 card kinds should appear in a large sample.
	if len(seen) != 52 {
		t.Errorf("saw %d distinct cards, want 52", len(seen))
	}
}

func TestScriptedSourceReplaysInOrder(t *testing.T) {
	s := NewScriptedSource(card("A"), card("K"))
	if c := s.Draw(); c.Rank != "A" {
		t.Errorf("first draw = %v, want A", c)
	}
	if c := s.Draw(); c.Rank != "K" {
		t.Errorf("second draw = %v, want K", c)
	}
	if s.Drawn() != 2 {
		t.Errorf("Drawn() = %d, want 2", s.Drawn())
	}
}
