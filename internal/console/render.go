package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sandfort/BlackJackML/internal/blackjack"
)

// RenderHand formats a hand one card per line with its total.
func RenderHand(label string, hand blackjack.Hand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", label)
	for _, c := range hand {
		fmt.Fprintf(&b, "  %s\n", c)
	}
	fmt.Fprintf(&b, "  total %d (%s)", hand.Value(), hand.Categorize())
	return b.String()
}

// RenderDecision shows the player's hand against the dealer's up card.
func RenderDecision(dec blackjack.Decision) string {
	var b strings.Builder
	b.WriteString(RenderHand("Your hand", dec.Hand))
	fmt.Fprintf(&b, "\nDealer shows: %s", dec.DealerUp)
	return b.String()
}

// TableObserver prints play-by-play to a terminal.
type TableObserver struct {
	Out io.Writer
}

func (o *TableObserver) PlayerDrew(hand blackjack.Hand, card blackjack.Card) {
	fmt.Fprintf(o.Out, "You draw %s (total %d)\n", card, hand.Value())
}

func (o *TableObserver) DealerRevealed(hand blackjack.Hand) {
	fmt.Fprintln(o.Out, RenderHand("Dealer", hand))
}

func (o *TableObserver) HandSettled(hand, dealer blackjack.Hand, bet, payout decimal.Decimal) {
	net := payout.Sub(bet)
	switch {
	case net.Sign() > 0:
		fmt.Fprintf(o.Out, "You win %s!\n", net.StringFixed(2))
	case net.Sign() < 0:
		fmt.Fprintf(o.Out, "You lose %s.\n", bet.StringFixed(2))
	default:
		fmt.Fprintln(o.Out, "Push.")
	}
}
