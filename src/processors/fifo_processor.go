package processors

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/username/tradereport/src/categories"
	"github.com/username/tradereport/src/models"
)

// StockProcessor matches Sell transactions against a per-symbol FIFO queue
// of open purchase lots and emits realized sale records.
//
// Each symbol's queue is independent state, so symbols are processed
// fork-join across workers and the merged output is ordered by symbol then
// original row order. Parallelism changes wall-clock time only, never the
// numbers.
type StockProcessor struct {
	classifier *categories.Classifier
	workers    int
}

func NewStockProcessor(classifier *categories.Classifier, workers int) *StockProcessor {
	if workers < 1 {
		workers = 1
	}
	return &StockProcessor{classifier: classifier, workers: workers}
}

// Process consumes the Trades subset and returns all realized sales plus the
// residual open lots (unsold position) per symbol.
func (p *StockProcessor) Process(trades []models.Transaction) ([]models.RealizedSale, []models.OpenPosition) {
	bySymbol := groupTradesBySymbol(trades)

	symbols := make([]string, 0, len(bySymbol))
	for symbol := range bySymbol {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	salesBySymbol := make([][]models.RealizedSale, len(symbols))
	positionsBySymbol := make([][]models.OpenPosition, len(symbols))

	workers := p.workers
	if workers > len(symbols) {
		workers = len(symbols)
	}

	if workers <= 1 {
		for i, symbol := range symbols {
			salesBySymbol[i], positionsBySymbol[i] = p.matchSymbol(symbol, bySymbol[symbol])
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					symbol := symbols[i]
					salesBySymbol[i], positionsBySymbol[i] = p.matchSymbol(symbol, bySymbol[symbol])
				}
			}()
		}
		for i := range symbols {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	var sales []models.RealizedSale
	var positions []models.OpenPosition
	for i := range symbols {
		sales = append(sales, salesBySymbol[i]...)
		positions = append(positions, positionsBySymbol[i]...)
	}
	return sales, positions
}

// matchSymbol runs the lot queue state machine for one symbol. Input is
// sorted ascending by date with a stable tie-break on original row order.
// Rows with no parsable date sort after every dated row.
func (p *StockProcessor) matchSymbol(symbol string, txs []models.Transaction) ([]models.RealizedSale, []models.OpenPosition) {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DateMissing != sorted[j].DateMissing {
			return sorted[j].DateMissing
		}
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].RowIndex < sorted[j].RowIndex
	})

	category := p.classifier.Classify(symbol)

	var lots []models.Lot
	var sales []models.RealizedSale

	for _, tx := range sorted {
		switch tx.Action {
		case models.ActionBuy:
			if tx.Quantity.IsPositive() {
				lots = append(lots, models.Lot{
					Quantity:  tx.Quantity,
					UnitPrice: tx.Price,
					BuyDate:   tx.Date,
				})
			}
		case models.ActionSell:
			if !tx.Quantity.IsPositive() {
				continue
			}
			remaining := tx.Quantity
			costBasis := decimal.Zero
			for remaining.IsPositive() && len(lots) > 0 {
				take := decimal.Min(remaining, lots[0].Quantity)
				costBasis = costBasis.Add(take.Mul(lots[0].UnitPrice))
				lots[0].Quantity = lots[0].Quantity.Sub(take)
				remaining = remaining.Sub(take)
				if lots[0].Quantity.IsZero() {
					lots = lots[1:]
				}
			}
			// Queue emptied before the sale was covered: the excess quantity
			// contributes zero cost basis (documented oversell policy).
			revenue := tx.Quantity.Mul(tx.Price)
			sales = append(sales, models.RealizedSale{
				Symbol:            symbol,
				Date:              tx.Date,
				Quantity:          tx.Quantity,
				SellPrice:         tx.Price,
				Revenue:           revenue,
				CostBasis:         costBasis,
				Profit:            revenue.Sub(costBasis),
				UnmatchedQuantity: remaining,
				Category:          category,
			})
		default:
			// Dividend or other rows mixed into the trade stream are ignored.
		}
	}

	var positions []models.OpenPosition
	for _, lot := range lots {
		positions = append(positions, models.OpenPosition{
			Symbol:    symbol,
			Quantity:  lot.Quantity,
			UnitPrice: lot.UnitPrice,
			BuyDate:   lot.BuyDate,
			Category:  category,
		})
	}
	return sales, positions
}

func groupTradesBySymbol(trades []models.Transaction) map[string][]models.Transaction {
	grouped := make(map[string][]models.Transaction)
	for _, tx := range trades {
		if tx.Symbol == "" {
			continue
		}
		grouped[tx.Symbol] = append(grouped[tx.Symbol], tx)
	}
	return grouped
}
