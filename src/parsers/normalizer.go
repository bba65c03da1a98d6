package parsers

import (
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/tradereport/src/categories"
	"github.com/username/tradereport/src/models"
	"github.com/username/tradereport/src/utils"
)

// TransactionNormalizer converts raw ledger rows into canonical transactions.
// Coercion is best-effort: an unparsable date leaves a zero date with
// DateMissing set, an unparsable number becomes zero. Rows are never dropped
// and the input is never mutated.
type TransactionNormalizer struct {
	classifier *categories.Classifier
}

func NewTransactionNormalizer(classifier *categories.Classifier) *TransactionNormalizer {
	return &TransactionNormalizer{classifier: classifier}
}

func (n *TransactionNormalizer) Normalize(raw []models.RawTransaction) []models.Transaction {
	transactions := make([]models.Transaction, 0, len(raw))
	for i, row := range raw {
		date, ok := utils.ParseDate(row.Date)
		if !ok && row.Date != "" {
			log.Printf("Warning: unparsable transaction date %q, keeping row with missing date", row.Date)
		}

		symbol := strings.TrimSpace(row.Symbol)
		tx := models.Transaction{
			RowIndex:     i,
			Date:         date,
			DateMissing:  !ok,
			Action:       models.ParseAction(row.Action),
			Symbol:       symbol,
			Description:  strings.TrimSpace(row.Description),
			Quantity:     parseDecimal(row.Quantity).Abs(),
			Price:        parseDecimal(row.Price),
			GrossAmount:  parseDecimal(row.GrossAmount),
			NetAmount:    parseDecimal(row.NetAmount),
			Currency:     strings.ToUpper(strings.TrimSpace(row.Currency)),
			ActivityType: canonicalActivityType(row.ActivityType),
			Category:     n.classifier.Classify(symbol),
		}
		transactions = append(transactions, tx)
	}
	return transactions
}

func canonicalActivityType(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trades", "trade":
		return models.ActivityTrades
	case "dividends", "dividend":
		return models.ActivityDividends
	default:
		return strings.TrimSpace(s)
	}
}

// parseDecimal coerces a ledger number. Currency symbols and thousands
// separators are tolerated; anything unparsable degrades to zero.
func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		log.Printf("Warning: unparsable numeric field %q, treating as zero", s)
		return decimal.Zero
	}
	return d
}
