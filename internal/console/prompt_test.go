package console

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sandfort/BlackJackML/internal/blackjack"
)

func TestPromptBetRepromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("nope\n-5\n2000\n25\n"), &out)

	bet, err := p.PromptBet(decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("PromptBet: %v", err)
	}
	if !bet.Equal(decimal.NewFromInt(25)) {
		t.Errorf("bet = %s, want 25", bet)
	}
	for _, msg := range []string{"Enter a number.", "Bet must be positive.", "You can't bet more than you have."} {
		if !strings.Contains(out.String(), msg) {
			t.Errorf("output missing %q", msg)
		}
	}
}

func TestPromptBetEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), io.Discard)
	if _, err := p.PromptBet(decimal.NewFromInt(100)); !errors.Is(err, io.EOF) {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestPromptActionParsesShortAndLongForms(t *testing.T) {
	legal := []blackjack.Action{
		blackjack.ActionHit, blackjack.ActionStand,
		blackjack.ActionDouble, blackjack.ActionSplit,
	}
	tests := []struct {
		input string
		want  blackjack.Action
	}{
		{"h\n", blackjack.ActionHit},
		{"HIT\n", blackjack.ActionHit},
		{"stand\n", blackjack.ActionStand},
		{"d\n", blackjack.ActionDouble},
		{"p\n", blackjack.ActionSplit},
		{"Split\n", blackjack.ActionSplit},
	}
	for _, tt := range tests {
		p := NewPrompter(strings.NewReader(tt.input), io.Discard)
		got, err := p.PromptAction(legal)
		if err != nil {
			t.Fatalf("PromptAction(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("PromptAction(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestPromptActionRejectsIllegal(t *testing.T) {
	var out bytes.Buffer
	// Double is not offered; the prompt loops until it gets hit.
	p := NewPrompter(strings.NewReader("d\nxyz\nh\n"), &out)

	got, err := p.PromptAction([]blackjack.Action{blackjack.ActionHit, blackjack.ActionStand})
	if err != nil {
		t.Fatalf("PromptAction: %v", err)
	}
	if got != blackjack.ActionHit {
		t.Errorf("action = %s, want Hit", got)
	}
	if !strings.Contains(out.String(), "not available") {
		t.Error("output missing illegal-action message")
	}
	if !strings.Contains(out.String(), "Unrecognized action.") {
		t.Error("output missing unrecognized-action message")
	}
}

func TestHumanPolicyPlaysFullHand(t *testing.T) {
	var out bytes.Buffer
	policy := &HumanPolicy{Prompter: NewPrompter(strings.NewReader("h\ns\n"), &out)}

	player := blackjack.NewPlayer(decimal.NewFromInt(100))
	dealer := &blackjack.Dealer{}
	table := &blackjack.Table{
		Player: player,
		Dealer: dealer,
		Source: blackjack.NewScriptedSource(
			cards("5", "10", "9", "7", "4")...,
		),
		Policy:   policy,
		Observer: &TableObserver{Out: &out},
	}

	if err := table.PlayRound(decimal.NewFromInt(10)); err != nil {
		t.Fatalf("PlayRound: %v", err)
	}
	// Player 5+9+4=18 beats the dealer's 17.
	if !player.Cash.Equal(decimal.NewFromInt(110)) {
		t.Errorf("cash = %s, want 110", player.Cash)
	}
	if !strings.Contains(out.String(), "Dealer shows:") {
		t.Error("output missing dealer up card")
	}
}

func cards(ranks ...string) []blackjack.Card {
	out := make([]blackjack.Card, len(ranks))
	for i, r := range ranks {
		out[i] = blackjack.Card{Rank: r, Suit: "♠"}
	}
	return out
}
