package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawTransaction is one ledger row exactly as the importer read it.
// All fields are strings; coercion happens in the normalizer.
type RawTransaction struct {
	Date         string `json:"date"`
	Action       string `json:"action"`
	Symbol       string `json:"symbol"`
	Description  string `json:"description"`
	Quantity     string `json:"quantity"`
	Price        string `json:"price"`
	GrossAmount  string `json:"gross_amount"`
	NetAmount    string `json:"net_amount"`
	Currency     string `json:"currency"`
	ActivityType string `json:"activity_type"`
}

// Action is the normalized direction of a ledger entry.
type Action string

const (
	ActionBuy      Action = "Buy"
	ActionSell     Action = "Sell"
	ActionDividend Action = "DIV"
	ActionOther    Action = "Other"
)

// ParseAction maps the broker's action column onto the canonical set.
func ParseAction(s string) Action {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return ActionBuy
	case "SELL":
		return ActionSell
	case "DIV", "DIVIDEND":
		return ActionDividend
	default:
		return ActionOther
	}
}

// Activity types that partition the ledger.
const (
	ActivityTrades    = "Trades"
	ActivityDividends = "Dividends"
)

// Transaction is the canonical, immutable form of one ledger entry.
// Quantity is always a non-negative magnitude; direction is carried by Action.
// A row whose date could not be parsed keeps a zero Date and DateMissing=true
// rather than being dropped.
type Transaction struct {
	RowIndex     int             `json:"-"` // original ledger order, tie-break for stable sorts
	Date         time.Time       `json:"date"`
	DateMissing  bool            `json:"dateMissing,omitempty"`
	Action       Action          `json:"action"`
	Symbol       string          `json:"symbol"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	GrossAmount  decimal.Decimal `json:"grossAmount"`
	NetAmount    decimal.Decimal `json:"netAmount"`
	Currency     string          `json:"currency"`
	ActivityType string          `json:"activityType"`
	Category     string          `json:"category"`
}

// Partition splits the full transaction set into the Trades and Dividends
// subsets by activity type. Rows of any other activity type remain only in
// the full set.
func Partition(txs []Transaction) (trades, dividends []Transaction) {
	for _, tx := range txs {
		switch tx.ActivityType {
		case ActivityTrades:
			trades = append(trades, tx)
		case ActivityDividends:
			dividends = append(dividends, tx)
		}
	}
	return trades, dividends
}
