package engine

import (
	"fmt"
	"strconv"

	"github.com/mmynk/tipwiser/internal/models"
)

// DefaultCurrency is the prefix used when none is configured.
const DefaultCurrency = "$"

// FormatMoney renders an amount with two decimals behind a currency prefix.
func FormatMoney(currency string, amount float64) string {
	return fmt.Sprintf("%s%.2f", currency, amount)
}

// Format turns a snapshot into display strings.
func Format(snap models.Snapshot, currency string) models.Display {
	if currency == "" {
		currency = DefaultCurrency
	}
	return models.Display{
		Bill:           FormatMoney(currency, snap.BillAmount),
		TotalPerPerson: FormatMoney(currency, snap.TotalPerPerson),
		Tip:            FormatMoney(currency, snap.TipAmount),
		Split:          strconv.Itoa(snap.SplitCount),
		TipPercent:     strconv.Itoa(snap.TipPercent) + "%",
		ShowDetails:    snap.IsValidBill,
	}
}

// Display formats the engine's current snapshot.
func (e *Engine) Display(currency string) models.Display {
	return Format(e.snap, currency)
}
