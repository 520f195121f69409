package blackjack

import "math/rand"

// CardSource deals cards to the table. Two draw semantics exist: a
// finite deck dealt without replacement and an infinite shoe where each
// draw is independently uniform over the 52 card kinds. The play engine
// is agnostic to which is used.
type CardSource interface {
	Draw() Card
}

// Deck is a finite 52-card deck dealt without replacement. When the
// deck runs out it is rebuilt and reshuffled.
type Deck struct {
	rng   *rand.Rand
	cards []Card
}

// NewDeck returns a freshly shuffled deck backed by the given rng.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.reshuffle()
	return d
}

func (d *Deck) reshuffle() {
	d.cards = append(d.cards[:0], cardDeck[:]...)
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw deals the next card.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		d.reshuffle()
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c
}

// Remaining returns how many cards are left before a reshuffle.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Shoe draws with replacement: every card is independently uniform over
// the 52 equivalents, as if dealt from an infinitely deep shoe.
type Shoe struct {
	rng *rand.Rand
}

// NewShoe returns a shoe backed by the given rng.
func NewShoe(rng *rand.Rand) *Shoe {
	return &Shoe{rng: rng}
}

// Draw deals an independently uniform card.
func (s *Shoe) Draw() Card {
	return cardDeck[s.rng.Intn(len(cardDeck))]
}

// ScriptedSource replays a fixed card sequence. It is intended for
// deterministic tests and panics when the script runs out.
type ScriptedSource struct {
	cards []Card
	next  int
}

// NewScriptedSource builds a source that deals the given cards in order.
func NewScriptedSource(cards ...Card) *ScriptedSource {
	return &ScriptedSource{cards: cards}
}

// Draw deals the next scripted card.
func (s *ScriptedSource) Draw() Card {
	if s.next >= len(s.cards) {
		panic("scripted source exhausted")
	}
	c := s.cards[s.next]
	s.next++
	return c
}

// Drawn returns how many cards have been dealt so far.
func (s *ScriptedSource) Drawn() int {
	return s.next
}
