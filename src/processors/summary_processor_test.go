package processors

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tradereport/src/categories"
	"github.com/username/tradereport/src/models"
)

func newSummaryProcessor() *SummaryProcessor {
	return NewSummaryProcessor(categories.NewClassifier(categories.DefaultTable()))
}

func sale(symbol string, revenue, costBasis string) models.RealizedSale {
	r, c := d(revenue), d(costBasis)
	return models.RealizedSale{
		Symbol:    symbol,
		Date:      day(5),
		Revenue:   r,
		CostBasis: c,
		Profit:    r.Sub(c),
	}
}

func dividendTx(symbol, netAmount, currency string) models.Transaction {
	return models.Transaction{
		Symbol:       symbol,
		NetAmount:    d(netAmount),
		Currency:     currency,
		Action:       models.ActionDividend,
		ActivityType: models.ActivityDividends,
	}
}

func TestStockSummariesGroupsBySymbol(t *testing.T) {
	p := newSummaryProcessor()
	sales := []models.RealizedSale{
		sale("AAPL", "1440", "1220"),
		sale("AAPL", "500", "450"),
		sale("ENB.TO", "300", "320"),
	}

	summaries := p.StockSummaries(sales, nil)

	require.Len(t, summaries, 2)
	aapl := summaries[0]
	assert.Equal(t, "AAPL", aapl.Symbol)
	assert.Equal(t, categories.Tech, aapl.Category)
	assert.Equal(t, 2, aapl.TradeCount)
	assert.True(t, aapl.Revenue.Equal(d("1940")))
	assert.True(t, aapl.CostBasis.Equal(d("1670")))
	assert.True(t, aapl.Profit.Equal(d("270")))

	enb := summaries[1]
	assert.Equal(t, "ENB.TO", enb.Symbol)
	assert.Equal(t, categories.Dividend, enb.Category)
	assert.True(t, enb.Profit.Equal(d("-20")))
}

func TestStockSummariesDividendCrossReference(t *testing.T) {
	p := newSummaryProcessor()
	sales := []models.RealizedSale{sale("ENB.TO", "300", "250")}
	dividends := []models.Transaction{
		dividendTx(".ENB.TO", "12.50", "CAD"), // option-style prefix must join against the plain symbol
		dividendTx("ENB.TO", "7.50", "CAD"),
		dividendTx("XOM", "99", "USD"), // dividend-only symbol: no summary row
	}

	summaries := p.StockSummaries(sales, dividends)

	require.Len(t, summaries, 1, "dividend-only symbols must not appear (sale-anchored table)")
	enb := summaries[0]
	assert.True(t, enb.Dividends.Equal(d("20")), "dividends %s", enb.Dividends)
	assert.True(t, enb.TotalReturn.Equal(d("70")), "total return %s", enb.TotalReturn)
}

func TestStockSummariesROIZeroGuard(t *testing.T) {
	p := newSummaryProcessor()
	// Oversell with no lots: profit without cost basis.
	summaries := p.StockSummaries([]models.RealizedSale{sale("TSLA", "1000", "0")}, nil)

	require.Len(t, summaries, 1)
	assert.True(t, summaries[0].Profit.Equal(d("1000")))
	assert.True(t, summaries[0].ROIPercent.IsZero(), "ROI must be 0 when cost basis is 0, got %s", summaries[0].ROIPercent)
}

func TestStockSummariesROIComputation(t *testing.T) {
	p := newSummaryProcessor()
	summaries := p.StockSummaries([]models.RealizedSale{sale("AAPL", "120", "100")}, nil)

	require.Len(t, summaries, 1)
	assert.True(t, summaries[0].ROIPercent.Equal(d("20")), "ROI %s", summaries[0].ROIPercent)
}

func TestStockSummariesTotalProfitMatchesSales(t *testing.T) {
	p := newSummaryProcessor()
	sales := []models.RealizedSale{
		sale("AAPL", "100", "90"),
		sale("MSFT", "200", "210"),
		sale("AAPL", "50", "40"),
		sale("ZZZ", "10", "5"),
	}

	summaries := p.StockSummaries(sales, nil)

	var fromSales, fromSummaries decimal.Decimal
	for _, s := range sales {
		fromSales = fromSales.Add(s.Profit)
	}
	for _, s := range summaries {
		fromSummaries = fromSummaries.Add(s.Profit)
	}
	assert.True(t, fromSales.Equal(fromSummaries),
		"summed profit must be independent of grouping: %s vs %s", fromSales, fromSummaries)
}

func TestCategorySummariesRecomputeROI(t *testing.T) {
	p := newSummaryProcessor()
	stocks := []models.StockSummary{
		{Symbol: "AAPL", Category: categories.Tech, TradeCount: 1, Revenue: d("120"), CostBasis: d("100"), Profit: d("20"), TotalReturn: d("20")},
		{Symbol: "MSFT", Category: categories.Tech, TradeCount: 2, Revenue: d("330"), CostBasis: d("300"), Profit: d("30"), Dividends: d("5"), TotalReturn: d("35")},
		{Symbol: "ZZZ", Category: categories.Other, TradeCount: 1, Revenue: d("10"), CostBasis: d("0"), Profit: d("10"), TotalReturn: d("10")},
	}

	summaries := p.CategorySummaries(stocks)

	require.Len(t, summaries, 2)
	other, tech := summaries[0], summaries[1]

	assert.Equal(t, categories.Other, other.Category)
	assert.True(t, other.ROIPercent.IsZero())

	assert.Equal(t, categories.Tech, tech.Category)
	assert.Equal(t, 3, tech.TradeCount)
	assert.True(t, tech.Revenue.Equal(d("450")))
	assert.True(t, tech.CostBasis.Equal(d("400")))
	assert.True(t, tech.Profit.Equal(d("50")))
	assert.True(t, tech.Dividends.Equal(d("5")))
	assert.True(t, tech.TotalReturn.Equal(d("55")))
	// 50/400*100, recomputed from the sums rather than averaged.
	assert.True(t, tech.ROIPercent.Equal(d("12.5")), "ROI %s", tech.ROIPercent)
}

func TestOverallSummary(t *testing.T) {
	p := newSummaryProcessor()
	stocks := []models.StockSummary{
		{Revenue: d("100"), CostBasis: d("80"), Profit: d("20"), Dividends: d("5"), TotalReturn: d("25")},
		{Revenue: d("50"), CostBasis: d("60"), Profit: d("-10"), TotalReturn: d("-10")},
	}

	overall := p.Overall(stocks)

	assert.True(t, overall.Revenue.Equal(d("150")))
	assert.True(t, overall.CostBasis.Equal(d("140")))
	assert.True(t, overall.Profit.Equal(d("10")))
	assert.True(t, overall.Dividends.Equal(d("5")))
	assert.True(t, overall.TotalReturn.Equal(d("15")))
}

func TestMonthlySummaries(t *testing.T) {
	p := newSummaryProcessor()
	january := sale("AAPL", "100", "90")
	february := sale("AAPL", "200", "150")
	february.Date = february.Date.AddDate(0, 1, 0)

	summaries := p.MonthlySummaries([]models.RealizedSale{february, january})

	require.Len(t, summaries, 2)
	assert.Equal(t, "2025-01", summaries[0].Month)
	assert.Equal(t, 1, summaries[0].TradeCount)
	assert.True(t, summaries[0].Profit.Equal(d("10")))
	assert.Equal(t, "2025-02", summaries[1].Month)
	assert.True(t, summaries[1].Profit.Equal(d("50")))
}

func TestMonthlySummariesSkipUndatedSales(t *testing.T) {
	p := newSummaryProcessor()
	dated := sale("AAPL", "100", "90")
	undated := sale("MSFT", "200", "150")
	undated.Date = time.Time{}

	summaries := p.MonthlySummaries([]models.RealizedSale{dated, undated})

	require.Len(t, summaries, 1)
	assert.Equal(t, "2025-01", summaries[0].Month)
	assert.True(t, summaries[0].Revenue.Equal(d("100")))
}

func TestTradeStats(t *testing.T) {
	p := newSummaryProcessor()
	trades := []models.Transaction{
		{Action: models.ActionBuy, NetAmount: d("-1000")},
		{Action: models.ActionBuy, NetAmount: d("-550.25")},
		{Action: models.ActionSell, NetAmount: d("700")},
	}
	sales := []models.RealizedSale{sale("AAPL", "700", "600")}

	stats := p.TradeStats(trades, sales)

	assert.Equal(t, 2, stats.BuyCount)
	assert.Equal(t, 1, stats.SellCount)
	assert.True(t, stats.BuyValue.Equal(d("1550.25")), "buy value %s", stats.BuyValue)
	assert.True(t, stats.SellRevenue.Equal(d("700")))
	assert.True(t, stats.RealizedProfit.Equal(d("100")))
}

func TestDividendStats(t *testing.T) {
	p := newSummaryProcessor()
	dividends := []models.Transaction{
		dividendTx("ENB.TO", "10", "CAD"),
		dividendTx(".ENB.TO", "5", "CAD"),
		dividendTx("JNJ", "8", "USD"),
	}

	stats := p.DividendStats(dividends)

	assert.True(t, stats.Total.Equal(d("23")))
	assert.True(t, stats.ByCurrency["CAD"].Equal(d("15")))
	assert.True(t, stats.ByCurrency["USD"].Equal(d("8")))
	assert.Equal(t, 2, stats.UniqueSymbols, "prefixed and plain ENB.TO must count once")
}

func TestNormalizeDividendSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{".ENB.TO", "ENB.TO"},
		{"ENB.TO", "ENB.TO"},
		{"#AAPL", "AAPL"},
		{"", ""},
		{".", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDividendSymbol(tt.in), "input %q", tt.in)
	}
}
