package entity

import "github.com/shopspring/decimal"

// Wallet holds the clinic's messaging credit balance as reported by the
// gateway. Balances are money, so they stay decimal end to end.
type Wallet struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// CanAfford checks whether the balance covers the given amount
func (w *Wallet) CanAfford(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}
