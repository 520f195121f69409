package blackjack

// Hand is an ordered sequence of cards; insertion order is draw order.
// The first two cards are the initial deal.
type Hand []Card

// HandCategory classifies a hand. The categories are mutually exclusive
// and always recomputed from the cards, never cached, since a hand
// mutates as cards are added.
type HandCategory int

const (
	CategoryPair HandCategory = iota
	CategoryBlackjack
	CategoryBust
	CategorySoft
	CategoryHard
)

func (c HandCategory) String() string {
	switch c {
	case CategoryPair:
		return "pair"
	case CategoryBlackjack:
		return "blackjack"
	case CategoryBust:
		return "bust"
	case CategorySoft:
		return "soft"
	case CategoryHard:
		return "hard"
	default:
		return "unknown"
	}
}

// value returns the best hand total and how many aces are still counted
// as 11 after adjustment. Aces are re-valued from 11 to 1 one at a time
// while the total exceeds 21.
func (h Hand) value() (total, acesHigh int) {
	for _, c := range h {
		total += cardValue(c.Rank)
		if c.Rank == "A" {
			acesHigh++
		}
	}
	for total > 21 && acesHigh > 0 {
		total -= 10
		acesHigh--
	}
	return total, acesHigh
}

// Value returns the best blackjack total of the hand, accounting for
// soft aces.
func (h Hand) Value() int {
	total, _ := h.value()
	return total
}

// IsSoft reports whether the hand still counts an ace as 11 without
// busting.
func (h Hand) IsSoft() bool {
	total, acesHigh := h.value()
	return acesHigh > 0 && total <= 21
}

// IsBlackjack reports whether the hand is exactly {Jack, Ace} in either
// order. Queen+Ace and King+Ace do not qualify; this matches the house
// rule the rest of the engine is built around.
func (h Hand) IsBlackjack() bool {
	if len(h) != 2 {
		return false
	}
	a, b := h[0].Rank, h[1].Rank
	return (a == "J" && b == "A") || (a == "A" && b == "J")
}

// IsPair reports whether the hand is exactly two cards of identical rank.
func (h Hand) IsPair() bool {
	return len(h) == 2 && h[0].Rank == h[1].Rank
}

// Categorize classifies the hand. Pair wins over Blackjack (a pair of
// jacks is a pair, not 20), Blackjack over Bust, Bust over Soft/Hard.
func (h Hand) Categorize() HandCategory {
	switch {
	case h.IsPair():
		return CategoryPair
	case h.IsBlackjack():
		return CategoryBlackjack
	case h.Value() > 21:
		return CategoryBust
	case h.IsSoft():
		return CategorySoft
	default:
		return CategoryHard
	}
}
