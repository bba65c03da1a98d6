package parsers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tradereport/src/categories"
	"github.com/username/tradereport/src/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newNormalizer() *TransactionNormalizer {
	return NewTransactionNormalizer(categories.NewClassifier(categories.DefaultTable()))
}

func TestNormalizeBasicRow(t *testing.T) {
	raw := []models.RawTransaction{{
		Date:         "2025-01-02",
		Action:       "buy",
		Symbol:       " AAPL ",
		Description:  "APPLE INC",
		Quantity:     "10",
		Price:        "$185.50",
		GrossAmount:  "-1,855.00",
		NetAmount:    "-1,860.99",
		Currency:     "usd",
		ActivityType: "trades",
	}}

	txs := newNormalizer().Normalize(raw)

	require.Len(t, txs, 1)
	tx := txs[0]
	assert.Equal(t, 0, tx.RowIndex)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.False(t, tx.DateMissing)
	assert.Equal(t, models.ActionBuy, tx.Action)
	assert.Equal(t, "AAPL", tx.Symbol)
	assert.True(t, tx.Quantity.Equal(d("10")))
	assert.True(t, tx.Price.Equal(d("185.50")), "currency symbol stripped")
	assert.True(t, tx.GrossAmount.Equal(d("-1855.00")), "thousands separator stripped")
	assert.Equal(t, "USD", tx.Currency)
	assert.Equal(t, models.ActivityTrades, tx.ActivityType)
	assert.Equal(t, categories.Tech, tx.Category)
}

func TestNormalizeKeepsRowWithBadDate(t *testing.T) {
	raw := []models.RawTransaction{
		{Date: "not a date", Action: "Buy", Symbol: "AAPL", Quantity: "1", Price: "100"},
		{Date: "", Action: "Sell", Symbol: "AAPL", Quantity: "1", Price: "100"},
	}

	txs := newNormalizer().Normalize(raw)

	require.Len(t, txs, 2, "rows are never dropped")
	for _, tx := range txs {
		assert.True(t, tx.DateMissing)
		assert.True(t, tx.Date.IsZero())
	}
}

func TestNormalizeBadNumbersBecomeZero(t *testing.T) {
	raw := []models.RawTransaction{{
		Date: "2025-01-02", Action: "Buy", Symbol: "AAPL",
		Quantity: "ten", Price: "n/a", NetAmount: "",
	}}

	txs := newNormalizer().Normalize(raw)

	require.Len(t, txs, 1)
	assert.True(t, txs[0].Quantity.IsZero())
	assert.True(t, txs[0].Price.IsZero())
	assert.True(t, txs[0].NetAmount.IsZero())
}

func TestNormalizeQuantityAbsoluteValue(t *testing.T) {
	raw := []models.RawTransaction{{
		Date: "2025-01-02", Action: "Sell", Symbol: "AAPL", Quantity: "-12", Price: "120",
	}}

	txs := newNormalizer().Normalize(raw)

	require.Len(t, txs, 1)
	assert.True(t, txs[0].Quantity.Equal(d("12")))
}

func TestNormalizeActionVariants(t *testing.T) {
	cases := map[string]models.Action{
		"Buy":      models.ActionBuy,
		"BUY":      models.ActionBuy,
		"sell":     models.ActionSell,
		"DIV":      models.ActionDividend,
		"Dividend": models.ActionDividend,
		"FXT":      models.ActionOther,
		"":         models.ActionOther,
	}

	for input, want := range cases {
		raw := []models.RawTransaction{{Date: "2025-01-02", Action: input, Symbol: "AAPL"}}
		txs := newNormalizer().Normalize(raw)
		require.Len(t, txs, 1)
		assert.Equal(t, want, txs[0].Action, "action %q", input)
	}
}

func TestNormalizeActivityTypeCanonicalized(t *testing.T) {
	cases := map[string]string{
		"trades":    models.ActivityTrades,
		"Trade":     models.ActivityTrades,
		"dividend":  models.ActivityDividends,
		"Dividends": models.ActivityDividends,
		"Interest":  "Interest",
	}

	for input, want := range cases {
		raw := []models.RawTransaction{{Date: "2025-01-02", Action: "Buy", Symbol: "AAPL", ActivityType: input}}
		txs := newNormalizer().Normalize(raw)
		require.Len(t, txs, 1)
		assert.Equal(t, want, txs[0].ActivityType, "activity %q", input)
	}
}

func TestNormalizeUnknownSymbolFallsBackToOther(t *testing.T) {
	raw := []models.RawTransaction{
		{Date: "2025-01-02", Action: "Buy", Symbol: "ZZZZ"},
		{Date: "2025-01-02", Action: "Buy", Symbol: ""},
	}

	txs := newNormalizer().Normalize(raw)

	require.Len(t, txs, 2)
	assert.Equal(t, categories.Other, txs[0].Category)
	assert.Equal(t, categories.Other, txs[1].Category)
}
