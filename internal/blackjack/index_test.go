package blackjack

import "testing"

func TestDealerBucket(t *testing.T) {
	tests := []struct {
		rank     string
		expected int
	}{
		{"A", 0},
		{"10", 1},
		{"J", 1},
		{"Q", 1},
		{"K", 1},
		{"9", 2},
		{"8", 3},
		{"7", 4},
		{"6", 5},
		{"5", 6},
		{"4", 7},
		{"3", 8},
		{"2", 9},
	}

	for _, tt := range tests {
		if got := DealerBucket(card(tt.rank)); got != tt.expected {
			t.Errorf("DealerBucket(%s) = %d, want %d", tt.rank, got, tt.expected)
		}
	}
}

func TestInitialBucket(t *testing.T) {
	tests := []struct {
		name     string
		hand     Hand
		expected int
	}{
		{"pair of aces", hand("A", "A"), 0},
		{"pair of tens", hand("10", "10"), 1},
		{"pair of kings shares the ten row", hand("K", "K"), 1},
		{"pair of twos", hand("2", "2"), 9},
		{"hard 20", hand("K", "Q"), 10},
		{"hard 17", hand("10", "7"), 10},
		{"hard 16", hand("10", "6"), 11},
		{"hard 12", hand("10", "2"), 15},
		{"hard 11", hand("6", "5"), 16},
		{"hard 10", hand("6", "4"), 17},
		{"hard 9", hand("6", "3"), 18},
		{"hard 8", hand("6", "2"), 19},
		{"hard 5", hand("3", "2"), 19},
		{"soft 20", hand("A", "9"), 20},
		{"soft 18", hand("A", "7"), 22},
		{"soft 13", hand("A", "2"), 27},
		{"soft 21 aliases to hard 17 row", hand("A", "A", "9"), 10},
		{"blackjack aliases to hard 17 row", hand("J", "A"), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InitialBucket(tt.hand); got != tt.expected {
				t.Errorf("InitialBucket() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestSubsequentBucket(t *testing.T) {
	tests := []struct {
		name     string
		hand     Hand
		expected int
	}{
		{"hard 17", hand("10", "4", "3"), 0},
		{"hard 16", hand("10", "4", "2"), 1},
		{"hard 8", hand("3", "3", "2"), 9},
		{"soft 20", hand("A", "4", "5"), 10},
		{"soft 13", hand("A", "2"), 17},
		{"soft 21 aliases to hard 17 row", hand("A", "5", "5"), 0},
		{"pair total is plain hard", hand("8", "8"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubsequentBucket(tt.hand); got != tt.expected {
				t.Errorf("SubsequentBucket() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestBucketRanges(t *testing.T) {
	// Every two-card hand must index inside the tables.
	for i := 0; i < 52; i++ {
		for j := 0; j < 52; j++ {
			h := Hand{cardDeck[i], cardDeck[j]}
			if b := InitialBucket(h); b < 0 || b >= InitialBuckets {
				t.Fatalf("InitialBucket(%v) = %d out of range", h, b)
			}
			if b := SubsequentBucket(h); b < 0 || b >= SubsequentBuckets {
				t.Fatalf("SubsequentBucket(%v) = %d out of range", h, b)
			}
			if b := DealerBucket(cardDeck[i]); b < 0 || b >= DealerBuckets {
				t.Fatalf("DealerBucket(%v) = %d out of range", cardDeck[i], b)
			}
		}
	}
}
