package processors

import (
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/username/tradereport/src/categories"
	"github.com/username/tradereport/src/models"
)

var oneHundred = decimal.NewFromInt(100)

// SummaryProcessor rolls realized sales and dividend records up into
// per-symbol, per-category and per-month summaries.
type SummaryProcessor struct {
	classifier *categories.Classifier
}

func NewSummaryProcessor(classifier *categories.Classifier) *SummaryProcessor {
	return &SummaryProcessor{classifier: classifier}
}

// StockSummaries produces one row per symbol appearing in the realized
// sales, cross-referenced with the dividend feed. Dividend-only symbols are
// not added: the table is sale-anchored. Output is sorted by symbol.
func (p *SummaryProcessor) StockSummaries(sales []models.RealizedSale, dividends []models.Transaction) []models.StockSummary {
	divBySymbol := make(map[string]decimal.Decimal)
	for _, tx := range dividends {
		key := strings.ToUpper(NormalizeDividendSymbol(tx.Symbol))
		if key == "" {
			continue
		}
		divBySymbol[key] = divBySymbol[key].Add(tx.NetAmount)
	}

	bySymbol := make(map[string]*models.StockSummary)
	var order []string
	for _, sale := range sales {
		summary, ok := bySymbol[sale.Symbol]
		if !ok {
			summary = &models.StockSummary{
				Symbol:   sale.Symbol,
				Category: p.classifier.Classify(sale.Symbol),
			}
			bySymbol[sale.Symbol] = summary
			order = append(order, sale.Symbol)
		}
		summary.TradeCount++
		summary.Revenue = summary.Revenue.Add(sale.Revenue)
		summary.CostBasis = summary.CostBasis.Add(sale.CostBasis)
		summary.Profit = summary.Profit.Add(sale.Profit)
	}

	sort.Strings(order)
	summaries := make([]models.StockSummary, 0, len(order))
	for _, symbol := range order {
		summary := bySymbol[symbol]
		if dividend, ok := divBySymbol[strings.ToUpper(symbol)]; ok {
			summary.Dividends = dividend
		}
		summary.TotalReturn = summary.Profit.Add(summary.Dividends)
		summary.ROIPercent = roiPercent(summary.Profit, summary.CostBasis)
		summaries = append(summaries, *summary)
	}
	return summaries
}

// CategorySummaries groups the per-stock table by category and sums the
// numeric columns. ROI is recomputed from the summed profit and cost basis.
// Output is sorted by category name.
func (p *SummaryProcessor) CategorySummaries(stocks []models.StockSummary) []models.CategorySummary {
	byCategory := make(map[string]*models.CategorySummary)
	for _, stock := range stocks {
		summary, ok := byCategory[stock.Category]
		if !ok {
			summary = &models.CategorySummary{Category: stock.Category}
			byCategory[stock.Category] = summary
		}
		summary.TradeCount += stock.TradeCount
		summary.Revenue = summary.Revenue.Add(stock.Revenue)
		summary.CostBasis = summary.CostBasis.Add(stock.CostBasis)
		summary.Profit = summary.Profit.Add(stock.Profit)
		summary.Dividends = summary.Dividends.Add(stock.Dividends)
		summary.TotalReturn = summary.TotalReturn.Add(stock.TotalReturn)
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]models.CategorySummary, 0, len(names))
	for _, name := range names {
		summary := byCategory[name]
		summary.ROIPercent = roiPercent(summary.Profit, summary.CostBasis)
		summaries = append(summaries, *summary)
	}
	return summaries
}

// Overall rolls the per-stock table up to account level.
func (p *SummaryProcessor) Overall(stocks []models.StockSummary) models.OverallSummary {
	var overall models.OverallSummary
	for _, stock := range stocks {
		overall.Revenue = overall.Revenue.Add(stock.Revenue)
		overall.CostBasis = overall.CostBasis.Add(stock.CostBasis)
		overall.Profit = overall.Profit.Add(stock.Profit)
		overall.Dividends = overall.Dividends.Add(stock.Dividends)
		overall.TotalReturn = overall.TotalReturn.Add(stock.TotalReturn)
	}
	return overall
}

// MonthlySummaries groups realized sales by calendar month, sorted by month.
// Sales from rows without a parsable date belong to no month and are left out.
func (p *SummaryProcessor) MonthlySummaries(sales []models.RealizedSale) []models.MonthlySummary {
	byMonth := make(map[string]*models.MonthlySummary)
	for _, sale := range sales {
		if sale.Date.IsZero() {
			continue
		}
		month := sale.Date.Format("2006-01")
		summary, ok := byMonth[month]
		if !ok {
			summary = &models.MonthlySummary{Month: month}
			byMonth[month] = summary
		}
		summary.TradeCount++
		summary.Revenue = summary.Revenue.Add(sale.Revenue)
		summary.CostBasis = summary.CostBasis.Add(sale.CostBasis)
		summary.Profit = summary.Profit.Add(sale.Profit)
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	summaries := make([]models.MonthlySummary, 0, len(months))
	for _, month := range months {
		summaries = append(summaries, *byMonth[month])
	}
	return summaries
}

// TradeStats computes the trades-view header block.
func (p *SummaryProcessor) TradeStats(trades []models.Transaction, sales []models.RealizedSale) models.TradeStats {
	stats := models.TradeStats{SellCount: len(sales)}
	for _, tx := range trades {
		if tx.Action == models.ActionBuy {
			stats.BuyCount++
			stats.BuyValue = stats.BuyValue.Add(tx.NetAmount.Abs())
		}
	}
	for _, sale := range sales {
		stats.SellRevenue = stats.SellRevenue.Add(sale.Revenue)
		stats.RealizedProfit = stats.RealizedProfit.Add(sale.Profit)
	}
	return stats
}

// DividendStats computes the dividends-view header block over the given
// (possibly pre-filtered) dividend subset.
func (p *SummaryProcessor) DividendStats(dividends []models.Transaction) models.DividendStats {
	stats := models.DividendStats{ByCurrency: make(map[string]decimal.Decimal)}
	seen := make(map[string]struct{})
	for _, tx := range dividends {
		stats.Total = stats.Total.Add(tx.NetAmount)
		if tx.Currency != "" {
			stats.ByCurrency[tx.Currency] = stats.ByCurrency[tx.Currency].Add(tx.NetAmount)
		}
		symbol := strings.ToUpper(NormalizeDividendSymbol(tx.Symbol))
		if symbol != "" {
			seen[symbol] = struct{}{}
		}
	}
	stats.UniqueSymbols = len(seen)
	return stats
}

// NormalizeDividendSymbol strips a single leading non-alphanumeric prefix
// rune. Some dividend feeds prefix option/warrant-style symbols (".ENB.TO")
// that must join against the plain trade symbol.
func NormalizeDividendSymbol(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	runes := []rune(symbol)
	if len(runes) > 0 && !unicode.IsLetter(runes[0]) && !unicode.IsDigit(runes[0]) {
		return string(runes[1:])
	}
	return symbol
}

// roiPercent guards the division: a zero cost basis yields zero, never an
// infinite or NaN result.
func roiPercent(profit, costBasis decimal.Decimal) decimal.Decimal {
	if costBasis.IsZero() {
		return decimal.Zero
	}
	return profit.Div(costBasis).Mul(oneHundred)
}
