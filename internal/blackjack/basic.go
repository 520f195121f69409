package blackjack

// BasicPolicy is the fixed basic-strategy lookup. It is a pure function
// of (hand category, total or pair rank, dealer up-card): the same
// decision state always yields the same action.
//
// The dealer card is compared against coarse groups (2-6, 7-8, 9/10/A
// and similar thresholds) rather than the fine 10-way bucket used by
// the learned tables.
type BasicPolicy struct{}

func (BasicPolicy) Decide(dec Decision) (Action, error) {
	up := dealerUpValue(dec.DealerUp)

	var action Action
	switch dec.Hand.Categorize() {
	case CategoryPair:
		action = pairAction(dec.Hand[0], up)
	case CategorySoft:
		action = softAction(dec.Hand.Value(), up)
	case CategoryBlackjack:
		action = ActionStand
	case CategoryBust:
		action = ActionStand
	default:
		action = hardAction(dec.Hand.Value(), up)
	}

	// Double and split are only available on the first decision and only
	// when the bankroll covers the extra stake; otherwise downgrade.
	if action == ActionDouble && !dec.LegalIncludes(ActionDouble) {
		action = ActionHit
	}
	if action == ActionSplit && !dec.LegalIncludes(ActionSplit) {
		action = hardAction(dec.Hand.Value(), up)
	}
	return action, nil
}

// dealerUpValue maps the dealer's up-card to 2..11 (ace high) for
// threshold comparisons.
func dealerUpValue(c Card) int {
	return cardValue(c.Rank)
}

// pairAction encodes the pair rows of basic strategy.
func pairAction(c Card, up int) Action {
	switch c.Rank {
	case "A":
		return ActionSplit
	case "10", "J", "Q", "K":
		return ActionStand
	case "9":
		// Stand against 7, 10 and ace; split the rest.
		if up == 7 || up >= 10 {
			return ActionStand
		}
		return ActionSplit
	case "8":
		return ActionSplit
	case "7":
		if up <= 7 {
			return ActionSplit
		}
		return ActionHit
	case "6":
		if up <= 6 {
			return ActionSplit
		}
		return ActionHit
	case "5":
		// Never split fives; play as hard 10.
		if up <= 9 {
			return ActionDouble
		}
		return ActionHit
	case "4":
		return ActionHit
	default: // 2, 3
		if up <= 7 {
			return ActionSplit
		}
		return ActionHit
	}
}

// hardAction encodes the hard-total rows of basic strategy.
func hardAction(total, up int) Action {
	switch {
	case total >= 17:
		return ActionStand
	case total >= 13:
		if up <= 6 {
			return ActionStand
		}
		return ActionHit
	case total == 12:
		if up >= 4 && up <= 6 {
			return ActionStand
		}
		return ActionHit
	case total == 11:
		return ActionDouble
	case total == 10:
		if up <= 9 {
			return ActionDouble
		}
		return ActionHit
	case total == 9:
		if up >= 3 && up <= 6 {
			return ActionDouble
		}
		return ActionHit
	default: // <= 8
		return ActionHit
	}
}

// softAction encodes the soft-total rows of basic strategy.
func softAction(total, up int) Action {
	switch {
	case total >= 19:
		return ActionStand
	case total == 18:
		if up <= 8 {
			return ActionStand
		}
		return ActionHit
	case total == 17:
		if up >= 3 && up <= 6 {
			return ActionDouble
		}
		return ActionHit
	case total >= 15:
		if up >= 4 && up <= 6 {
			return ActionDouble
		}
		return ActionHit
	default: // soft 13, 14
		if up >= 5 && up <= 6 {
			return ActionDouble
		}
		return ActionHit
	}
}
