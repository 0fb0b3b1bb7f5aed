package handlers

import (
	"time"

	"github.com/LevaniIlashvili/Bankist/models"
	"github.com/LevaniIlashvili/Bankist/services"
	"github.com/LevaniIlashvili/Bankist/utils"
)

// buildAccountView assembles everything the UI renders for one account:
// balance, summary totals and movement rows, each raw value paired with its
// locale-formatted string. Row order honors the session's sort toggle.
func buildAccountView(ledger *services.LedgerService, sessions *services.SessionManager, acc models.Account) (models.AccountView, error) {
	sorted, err := sessions.Sorted()
	if err != nil {
		sorted = false
	}

	balance, err := ledger.Balance(acc.Username)
	if err != nil {
		return models.AccountView{}, err
	}
	summary, err := ledger.Summary(acc.Username)
	if err != nil {
		return models.AccountView{}, err
	}
	movements, err := ledger.Movements(acc.Username, sorted)
	if err != nil {
		return models.AccountView{}, err
	}

	return models.AccountView{
		Owner:             acc.Owner,
		Username:          acc.Username,
		Balance:           balance,
		FormattedBalance:  utils.FormatCurrency(balance, acc.Locale, acc.Currency),
		Summary:           summary,
		FormattedIncome:   utils.FormatCurrency(summary.Income, acc.Locale, acc.Currency),
		FormattedOutgoing: utils.FormatCurrency(summary.Outgoing, acc.Locale, acc.Currency),
		FormattedInterest: utils.FormatCurrency(summary.Interest, acc.Locale, acc.Currency),
		Movements:         movementRows(movements, acc),
		Sorted:            sorted,
		Currency:          acc.Currency,
		Locale:            acc.Locale,
	}, nil
}

func movementRows(movements []models.Movement, acc models.Account) []models.MovementRow {
	now := time.Now()
	rows := make([]models.MovementRow, len(movements))
	for i, mov := range movements {
		rowType := "withdrawal"
		if mov.Amount > 0 {
			rowType = "deposit"
		}
		rows[i] = models.MovementRow{
			Type:            rowType,
			Amount:          mov.Amount,
			FormattedAmount: utils.FormatCurrency(mov.Amount, acc.Locale, acc.Currency),
			Date:            mov.Date,
			DisplayDate:     utils.FormatMovementDate(mov.Date, acc.Locale, now),
		}
	}
	return rows
}
