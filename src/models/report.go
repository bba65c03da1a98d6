package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot is an open, unconsumed purchase position inside the FIFO queue.
// Quantity is strictly positive while the lot is queued; the engine removes
// a lot the moment it is fully consumed.
type Lot struct {
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	BuyDate   time.Time       `json:"buyDate"`
}

// OpenPosition is a residual lot left after all of a symbol's transactions
// have been matched. Unrealized by definition; reported separately from the
// realized output.
type OpenPosition struct {
	Symbol    string          `json:"symbol"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	BuyDate   time.Time       `json:"buyDate"`
	Category  string          `json:"category"`
}

// RealizedSale is the result of matching one Sell against the lot queue.
// UnmatchedQuantity is the portion sold with no lot to draw from; it
// contributed zero cost basis (best-effort oversell policy).
type RealizedSale struct {
	Symbol            string          `json:"symbol"`
	Date              time.Time       `json:"date"`
	Quantity          decimal.Decimal `json:"quantity"`
	SellPrice         decimal.Decimal `json:"sellPrice"`
	Revenue           decimal.Decimal `json:"revenue"`
	CostBasis         decimal.Decimal `json:"costBasis"`
	Profit            decimal.Decimal `json:"profit"`
	UnmatchedQuantity decimal.Decimal `json:"unmatchedQuantity,omitempty"`
	Category          string          `json:"category"`
}

// StockSummary aggregates realized sales and dividends per symbol.
// Symbols with dividends but no realized sale do not appear: the table is
// sale-anchored.
type StockSummary struct {
	Symbol      string          `json:"symbol"`
	Category    string          `json:"category"`
	TradeCount  int             `json:"tradeCount"`
	Revenue     decimal.Decimal `json:"revenue"`
	CostBasis   decimal.Decimal `json:"costBasis"`
	Profit      decimal.Decimal `json:"profit"`
	Dividends   decimal.Decimal `json:"dividends"`
	TotalReturn decimal.Decimal `json:"totalReturn"`
	ROIPercent  decimal.Decimal `json:"roiPercent"`
}

// CategorySummary sums StockSummary rows per category. ROIPercent is
// recomputed from the summed profit and cost basis, never averaged.
type CategorySummary struct {
	Category    string          `json:"category"`
	TradeCount  int             `json:"tradeCount"`
	Revenue     decimal.Decimal `json:"revenue"`
	CostBasis   decimal.Decimal `json:"costBasis"`
	Profit      decimal.Decimal `json:"profit"`
	Dividends   decimal.Decimal `json:"dividends"`
	TotalReturn decimal.Decimal `json:"totalReturn"`
	ROIPercent  decimal.Decimal `json:"roiPercent"`
}

// MonthlySummary groups realized sales by calendar month (YYYY-MM).
type MonthlySummary struct {
	Month      string          `json:"month"`
	TradeCount int             `json:"tradeCount"`
	Revenue    decimal.Decimal `json:"revenue"`
	CostBasis  decimal.Decimal `json:"costBasis"`
	Profit     decimal.Decimal `json:"profit"`
}

// OverallSummary is the account-level roll-up of the per-stock table.
type OverallSummary struct {
	Revenue     decimal.Decimal `json:"revenue"`
	CostBasis   decimal.Decimal `json:"costBasis"`
	Profit      decimal.Decimal `json:"profit"`
	Dividends   decimal.Decimal `json:"dividends"`
	TotalReturn decimal.Decimal `json:"totalReturn"`
}

// TradeStats is the header block of the trades view.
type TradeStats struct {
	BuyCount       int             `json:"buyCount"`
	SellCount      int             `json:"sellCount"`
	BuyValue       decimal.Decimal `json:"buyValue"`
	SellRevenue    decimal.Decimal `json:"sellRevenue"`
	RealizedProfit decimal.Decimal `json:"realizedProfit"`
}

// DividendStats is the header block of the dividends view.
type DividendStats struct {
	Total         decimal.Decimal            `json:"total"`
	ByCurrency    map[string]decimal.Decimal `json:"byCurrency"`
	UniqueSymbols int                        `json:"uniqueSymbols"`
}
