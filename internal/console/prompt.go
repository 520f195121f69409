// Package console implements the interactive table: prompting a human
// player for bets and actions, and rendering hands to the terminal.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sandfort/BlackJackML/internal/blackjack"
)

// Prompter reads bets and actions from an input stream, re-prompting
// until it gets something usable.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter wraps the given streams. Pass os.Stdin/os.Stdout for a
// real terminal session.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// PromptBet asks for a bet until the player enters a positive amount
// within their bankroll. Returns io.EOF when the input stream ends.
func (p *Prompter) PromptBet(cash decimal.Decimal) (decimal.Decimal, error) {
	for {
		fmt.Fprintf(p.out, "You have %s. Place your bet: ", cash.StringFixed(2))
		line, err := p.readLine()
		if err != nil {
			return decimal.Zero, err
		}
		bet, err := decimal.NewFromString(line)
		if err != nil {
			fmt.Fprintln(p.out, "Enter a number.")
			continue
		}
		if bet.Sign() <= 0 {
			fmt.Fprintln(p.out, "Bet must be positive.")
			continue
		}
		if bet.GreaterThan(cash) {
			fmt.Fprintln(p.out, "You can't bet more than you have.")
			continue
		}
		return bet, nil
	}
}

// PromptAction asks for one of the legal actions until the player
// enters one. Input matches on the first letter, case-insensitive.
func (p *Prompter) PromptAction(legal []blackjack.Action) (blackjack.Action, error) {
	for {
		fmt.Fprintf(p.out, "Action [%s]: ", actionMenu(legal))
		line, err := p.readLine()
		if err != nil {
			return blackjack.ActionStand, err
		}
		action, ok := parseAction(line)
		if !ok {
			fmt.Fprintln(p.out, "Unrecognized action.")
			continue
		}
		if !blackjack.LegalIncludes(legal, action) {
			fmt.Fprintf(p.out, "%s is not available here.\n", action)
			continue
		}
		return action, nil
	}
}

func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Split uses "p" so Stand keeps "s".
func actionMenu(legal []blackjack.Action) string {
	parts := make([]string, 0, len(legal))
	for _, a := range legal {
		switch a {
		case blackjack.ActionSplit:
			parts = append(parts, "s(p)lit")
		default:
			name := strings.ToLower(a.String())
			parts = append(parts, "("+name[:1]+")"+name[1:])
		}
	}
	return strings.Join(parts, " ")
}

func parseAction(line string) (blackjack.Action, bool) {
	switch strings.ToLower(line) {
	case "h", "hit":
		return blackjack.ActionHit, true
	case "s", "stand":
		return blackjack.ActionStand, true
	case "d", "double":
		return blackjack.ActionDouble, true
	case "p", "split":
		return blackjack.ActionSplit, true
	}
	return blackjack.ActionStand, false
}

// HumanPolicy routes decisions to a Prompter, showing the hand before
// each choice.
type HumanPolicy struct {
	Prompter *Prompter
}

func (p *HumanPolicy) Decide(dec blackjack.Decision) (blackjack.Action, error) {
	fmt.Fprintln(p.Prompter.out, RenderDecision(dec))
	return p.Prompter.PromptAction(dec.Legal)
}
