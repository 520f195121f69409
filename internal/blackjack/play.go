package blackjack

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Table wires one player/dealer pair, a card source and a policy for a
// round of play. It replaces any notion of process-wide game state:
// everything a hand needs travels through the Table instance.
type Table struct {
	Player *Player
	Dealer *Dealer
	Source CardSource
	Policy Policy

	// Observer, when set, is notified as cards land and hands settle.
	// It is a pure observer and not required for correctness.
	Observer Observer

	// dealerRevealed tracks whether the observer saw the dealer's hand
	// this round; split hands reach dealer play more than once.
	dealerRevealed bool
}

// Observer receives play-by-play notifications.
type Observer interface {
	PlayerDrew(hand Hand, card Card)
	DealerRevealed(hand Hand)
	HandSettled(hand Hand, dealer Hand, bet, payout decimal.Decimal)
}

func (t *Table) observePlayerDrew(h Hand, c Card) {
	if t.Observer != nil {
		t.Observer.PlayerDrew(h, c)
	}
}

// Deal starts a round: the player is debited the bet and receives two
// cards, the dealer receives two (the first stays concealed). Cards
// alternate player, dealer, player, dealer.
func (t *Table) Deal(bet decimal.Decimal) error {
	if bet.Sign() <= 0 {
		return fmt.Errorf("bet must be positive, got %s", bet)
	}
	if err := t.Player.Debit(bet); err != nil {
		return fmt.Errorf("placing bet of %s: %w", bet, err)
	}

	player := Hand{t.Source.Draw()}
	dealer := Hand{t.Source.Draw()}
	player = append(player, t.Source.Draw())
	dealer = append(dealer, t.Source.Draw())

	t.Player.PushHand(player, bet)
	t.Dealer.Hand = dealer
	t.dealerRevealed = false
	return nil
}

// PlayRound deals and plays every pending hand to settlement. A split
// appends a second hand to the queue, which a later iteration picks up.
func (t *Table) PlayRound(bet decimal.Decimal) error {
	if err := t.Deal(bet); err != nil {
		return err
	}
	for t.Player.Pending() {
		if err := t.PlayHand(); err != nil {
			return err
		}
	}
	return nil
}

// PlayHand runs the state machine for the player's front hand:
// initial decision, optional split expansion, the hit/stand loop,
// dealer play and settlement. The front hand and its bet are removed
// once settled.
func (t *Table) PlayHand() error {
	// A hand freshly created by a split holds a single card; complete it
	// before any decision.
	if len(t.Player.Front()) < 2 {
		t.hitFront()
	}

	done, err := t.initialDecision()
	if err != nil {
		return err
	}
	if !done {
		if err := t.decisionLoop(); err != nil {
			return err
		}
	}

	t.dealerPlay()
	t.settleFront()
	return nil
}

// initialDecision handles the first decision on the front hand. It
// returns true when the hand moves directly to dealer play (stand,
// double, or a natural blackjack).
func (t *Table) initialDecision() (bool, error) {
	hand := t.Player.Front()
	if hand.Categorize() == CategoryBlackjack {
		return true, nil
	}

	bet := t.Player.FrontBet()
	dec := Decision{
		Hand:     hand,
		DealerUp: t.Dealer.UpCard(),
		Initial:  true,
		Legal:    LegalActions(hand, true, t.Player.Cash, bet),
		Cash:     t.Player.Cash,
		Bet:      bet,
	}
	action, err := t.Policy.Decide(dec)
	if err != nil {
		return false, fmt.Errorf("initial decision: %w", err)
	}

	switch action {
	case ActionStand:
		return true, nil
	case ActionHit:
		t.hitFront()
		return false, nil
	case ActionDouble:
		if err := t.Player.Debit(bet); err != nil {
			return false, fmt.Errorf("doubling down: %w", err)
		}
		t.Player.Bets[0] = bet.Add(bet)
		t.hitFront()
		return true, nil
	case ActionSplit:
		if err := t.split(); err != nil {
			return false, err
		}
		return false, nil
	default:
		return false, fmt.Errorf("policy returned unknown action %d", action)
	}
}

// split turns the front pair into two single-bet hands. The second card
// seeds a new hand at the back of the queue; the original hand draws
// back up to two cards and continues.
func (t *Table) split() error {
	bet := t.Player.FrontBet()
	if err := t.Player.Debit(bet); err != nil {
		return fmt.Errorf("splitting: %w", err)
	}
	front := t.Player.Front()
	t.Player.PushHand(Hand{front[1]}, bet)
	t.Player.Hands[0] = front[:1]
	t.hitFront()
	return nil
}

// decisionLoop is the subsequent hit/stand loop. It exits when the hand
// busts, completes to a natural blackjack, or the policy stands.
func (t *Table) decisionLoop() error {
	for {
		hand := t.Player.Front()
		switch hand.Categorize() {
		case CategoryBust, CategoryBlackjack:
			return nil
		}

		dec := Decision{
			Hand:     hand,
			DealerUp: t.Dealer.UpCard(),
			Initial:  false,
			Legal:    LegalActions(hand, false, t.Player.Cash, t.Player.FrontBet()),
			Cash:     t.Player.Cash,
			Bet:      t.Player.FrontBet(),
		}
		action, err := t.Policy.Decide(dec)
		if err != nil {
			return fmt.Errorf("decision loop: %w", err)
		}
		if action == ActionStand {
			return nil
		}
		t.hitFront()
	}
}

// dealerPlay draws for the dealer while the total is under 17. A soft
// 17 stands; there is no special case. The draw loop runs regardless of
// whether the player already busted.
func (t *Table) dealerPlay() {
	for t.Dealer.Hand.Value() < 17 {
		t.Dealer.Hand = append(t.Dealer.Hand, t.Source.Draw())
	}
	if t.Observer != nil && !t.dealerRevealed {
		t.Observer.DealerRevealed(t.Dealer.Hand)
		t.dealerRevealed = true
	}
}

// settleFront resolves the front hand against the dealer, credits the
// payout and pops the hand and bet from the queues.
func (t *Table) settleFront() {
	hand := t.Player.Front()
	bet := t.Player.FrontBet()
	payout := bet.Mul(Multiplier(hand, t.Dealer.Hand))
	t.Player.Credit(payout)
	if t.Observer != nil {
		t.Observer.HandSettled(hand, t.Dealer.Hand, bet, payout)
	}
	t.Player.PopFront()
}

func (t *Table) hitFront() {
	c := t.Source.Draw()
	t.Player.Hands[0] = append(t.Player.Hands[0], c)
	t.observePlayerDrew(t.Player.Hands[0], c)
}
