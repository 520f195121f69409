package blackjack

// State indexing shared by the fixed and adaptive strategy tables. Hands
// and dealer up-cards are bucketed into small integers that address the
// table cells.
//
// Dealer buckets (10): A, 10/J/Q/K, 9, 8, 7, 6, 5, 4, 3, 2.
// Initial hand buckets (28): 0-9 pairs (A,10,9..2), 10-19 hard totals
// (>=17,16..9,<=8), 20-27 soft totals (20,19..13).
// Subsequent hand buckets (18): 0-9 hard, 10-17 soft, same orderings.
//
// A soft 21 aliases onto the ">=17 hard" bucket in both layouts.

const (
	DealerBuckets     = 10
	InitialBuckets    = 28
	SubsequentBuckets = 18

	initialPairBase = 0
	initialHardBase = 10
	initialSoftBase = 20
)

// Action indices within a table cell.
const (
	ActionIndexHit    = 0
	ActionIndexStand  = 1
	ActionIndexDouble = 2
	ActionIndexSplit  = 3
)

// DealerBucket maps the dealer's up-card to its table column.
func DealerBucket(c Card) int {
	switch c.Rank {
	case "A":
		return 0
	case "10", "J", "Q", "K":
		return 1
	case "9":
		return 2
	case "8":
		return 3
	case "7":
		return 4
	case "6":
		return 5
	case "5":
		return 6
	case "4":
		return 7
	case "3":
		return 8
	default: // 2
		return 9
	}
}

// pairBucket maps the rank of a paired card to its row: A, 10-value, 9..2.
// Face cards share the 10 bucket.
func pairBucket(c Card) int {
	return DealerBucket(c)
}

// hardOffset maps a hard total to its offset within the hard block.
func hardOffset(total int) int {
	switch {
	case total >= 17:
		return 0
	case total <= 8:
		return 9
	default: // 9..16
		return 17 - total
	}
}

// softOffset maps a soft total in [13,20] to its offset within the soft
// block: 20 first, 13 last.
func softOffset(total int) int {
	if total > 20 {
		total = 20
	}
	if total < 13 {
		total = 13
	}
	return 20 - total
}

// InitialBucket maps a hand at its first decision to a row in the
// initial table.
func InitialBucket(h Hand) int {
	if h.Categorize() == CategoryPair {
		return initialPairBase + pairBucket(h[0])
	}
	total, acesHigh := h.value()
	if acesHigh > 0 && total < 21 {
		return initialSoftBase + softOffset(total)
	}
	// Soft 21 deliberately falls through to the >=17 hard bucket.
	return initialHardBase + hardOffset(total)
}

// SubsequentBucket maps a hand at any later decision to a row in the
// subsequent table. Pairs no longer get their own rows; only the total
// matters.
func SubsequentBucket(h Hand) int {
	total, acesHigh := h.value()
	if acesHigh > 0 && total < 21 {
		return SubsequentBuckets - 8 + softOffset(total)
	}
	return hardOffset(total)
}
