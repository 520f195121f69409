package blackjack

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInsufficientCash is returned when a debit would take the balance
// negative.
var ErrInsufficientCash = errors.New("insufficient cash")

// Player holds the cash balance and the queue of pending hands. Hands
// and bets are parallel: bets[i] rides on hands[i], and the front hand
// is the one currently being played. Splits append to the back of both
// queues.
type Player struct {
	Cash  decimal.Decimal
	Hands []Hand
	Bets  []decimal.Decimal
}

// NewPlayer creates a player with the given bankroll and no hands.
func NewPlayer(cash decimal.Decimal) *Player {
	return &Player{Cash: cash}
}

// Front returns the hand currently being played.
func (p *Player) Front() Hand {
	return p.Hands[0]
}

// FrontBet returns the bet riding on the front hand.
func (p *Player) FrontBet() decimal.Decimal {
	return p.Bets[0]
}

// PushHand appends a hand with its bet to the back of the queues.
func (p *Player) PushHand(h Hand, bet decimal.Decimal) {
	p.Hands = append(p.Hands, h)
	p.Bets = append(p.Bets, bet)
}

// PopFront removes the settled front hand and its bet.
func (p *Player) PopFront() {
	p.Hands = p.Hands[1:]
	p.Bets = p.Bets[1:]
}

// Pending reports whether the player still has hands to play.
func (p *Player) Pending() bool {
	return len(p.Hands) > 0
}

// Debit removes amount from the cash balance.
func (p *Player) Debit(amount decimal.Decimal) error {
	if p.Cash.LessThan(amount) {
		return ErrInsufficientCash
	}
	p.Cash = p.Cash.Sub(amount)
	return nil
}

// Credit adds amount to the cash balance.
func (p *Player) Credit(amount decimal.Decimal) {
	p.Cash = p.Cash.Add(amount)
}

// Dealer holds the house hand. By convention the first card dealt is
// the concealed hole card; the second is face up.
type Dealer struct {
	Hand Hand
}

// UpCard returns the dealer's face-up card.
func (d *Dealer) UpCard() Card {
	return d.Hand[1]
}
