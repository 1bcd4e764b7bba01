package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ResultType is the vendor's settlement outcome for a bet.
type ResultType string

const (
	ResultWin     ResultType = "WIN"
	ResultBetWin  ResultType = "BET_WIN"
	ResultBetLose ResultType = "BET_LOSE"
	ResultLose    ResultType = "LOSE"
	ResultEnd     ResultType = "END"
)

// ParseResultType normalizes s and reports whether it is a known type.
func ParseResultType(s string) (ResultType, bool) {
	rt := ResultType(strings.ToUpper(strings.TrimSpace(s)))
	switch rt {
	case ResultWin, ResultBetWin, ResultBetLose, ResultLose, ResultEnd:
		return rt, true
	}
	return rt, false
}

// SettlementInput carries the amounts of a bet_result request.
// AlreadyDebited is true when a completed bet with the same bet, round,
// game and amount exists.
type SettlementInput struct {
	ResultType     ResultType
	BetAmount      decimal.Decimal
	WinAmount      decimal.Decimal
	JackpotAmount  decimal.Decimal
	AlreadyDebited bool
}

// Settlement is the computed effect of a bet_result.
type Settlement struct {
	Description     string
	Delta           decimal.Decimal
	RequiredBalance decimal.Decimal
	Anomaly         bool
}

// Settle applies the result-type decision table.
func Settle(in SettlementInput) Settlement {
	bet := MoneyFloor(in.BetAmount)
	win := MoneyFloor(in.WinAmount)
	jackpot := MoneyFloor(in.JackpotAmount)

	switch in.ResultType {
	case ResultWin:
		return Settlement{
			Delta:       win.Add(jackpot),
			Description: fmt.Sprintf("WIN: credit win %s and jackpot %s", FormatMoney(win), FormatMoney(jackpot)),
		}

	case ResultBetWin:
		if in.AlreadyDebited {
			return Settlement{
				Delta:       win.Add(jackpot),
				Description: fmt.Sprintf("BET_WIN (debited): credit win %s and jackpot %s", FormatMoney(win), FormatMoney(jackpot)),
			}
		}
		return Settlement{
			Delta:           win.Add(jackpot).Sub(bet),
			RequiredBalance: bet,
			Description:     fmt.Sprintf("BET_WIN: debit bet %s, credit win %s and jackpot %s", FormatMoney(bet), FormatMoney(win), FormatMoney(jackpot)),
		}

	case ResultBetLose:
		if in.AlreadyDebited {
			return Settlement{
				Delta:       jackpot,
				Description: fmt.Sprintf("BET_LOSE (debited): credit jackpot %s", FormatMoney(jackpot)),
			}
		}
		return Settlement{
			Delta:           jackpot.Sub(bet),
			RequiredBalance: bet,
			Description:     fmt.Sprintf("BET_LOSE: debit bet %s, credit jackpot %s", FormatMoney(bet), FormatMoney(jackpot)),
		}

	case ResultLose:
		return Settlement{
			Delta:       jackpot,
			Description: fmt.Sprintf("LOSE: credit jackpot %s", FormatMoney(jackpot)),
		}

	case ResultEnd:
		// END is a notification; the jackpot is not paid here.
		return Settlement{
			Delta:       decimal.Zero,
			Description: "END: round closed, no balance change",
		}

	default:
		return Settlement{
			Delta:       decimal.Zero,
			Description: fmt.Sprintf("unknown result type %q", string(in.ResultType)),
			Anomaly:     true,
		}
	}
}

// Check verifies the settlement precondition and the resulting balance.
func (s Settlement) Check(balance decimal.Decimal) error {
	acc := Account{Balance: balance}
	if err := acc.Covers(s.RequiredBalance); err != nil {
		return err
	}
	_, err := acc.ApplyDelta(s.Delta)
	return err
}
