package blackjack

import "github.com/shopspring/decimal"

// Payout multipliers applied to the bet on a settled hand.
var (
	MultiplierLoss      = decimal.Zero
	MultiplierPush      = decimal.NewFromInt(1)
	MultiplierWin       = decimal.NewFromInt(2)
	MultiplierBlackjack = decimal.RequireFromString("2.5")
)

// Multiplier resolves a settled player hand against the dealer hand and
// returns the payout multiplier for the bet on that hand. The rules are
// evaluated strictly in order: blackjack pays 3:2, a standing player
// beats a busted dealer, a busted player always loses (even when the
// dealer busts too), then totals are compared. Equal totals push and
// the stake is returned in full.
func Multiplier(player, dealer Hand) decimal.Decimal {
	playerTotal := player.Value()
	dealerTotal := dealer.Value()

	switch {
	case player.Categorize() == CategoryBlackjack:
		return MultiplierBlackjack
	case playerTotal <= 21 && dealerTotal > 21:
		return MultiplierWin
	case playerTotal > 21:
		return MultiplierLoss
	case playerTotal > dealerTotal:
		return MultiplierWin
	case playerTotal < dealerTotal:
		return MultiplierLoss
	default:
		return MultiplierPush
	}
}
