package processors

import (
	"sort"

	"github.com/username/tradereport/src/models"
)

// Ranked views over the summary tables. Each returns a sorted copy clipped
// to n rows; the inputs are never reordered.

func TopGainers(stocks []models.StockSummary, n int) []models.StockSummary {
	return rankStocks(stocks, n, func(a, b models.StockSummary) bool {
		return a.Profit.GreaterThan(b.Profit)
	})
}

func TopLosers(stocks []models.StockSummary, n int) []models.StockSummary {
	return rankStocks(stocks, n, func(a, b models.StockSummary) bool {
		return a.Profit.LessThan(b.Profit)
	})
}

func MostActive(stocks []models.StockSummary, n int) []models.StockSummary {
	return rankStocks(stocks, n, func(a, b models.StockSummary) bool {
		return a.TradeCount > b.TradeCount
	})
}

func BiggestSales(sales []models.RealizedSale, n int) []models.RealizedSale {
	ranked := make([]models.RealizedSale, len(sales))
	copy(ranked, sales)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
	})
	return clipSales(ranked, n)
}

func rankStocks(stocks []models.StockSummary, n int, less func(a, b models.StockSummary) bool) []models.StockSummary {
	ranked := make([]models.StockSummary, len(stocks))
	copy(ranked, stocks)
	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j])
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

func clipSales(sales []models.RealizedSale, n int) []models.RealizedSale {
	if n > 0 && n < len(sales) {
		return sales[:n]
	}
	return sales
}
