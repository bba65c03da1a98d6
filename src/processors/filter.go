package processors

import (
	"strings"
	"time"

	"github.com/username/tradereport/src/models"
)

// TransactionFilter is a set of AND-composed predicates over transaction-like
// collections. A zero value (or the "All" sentinel on the string fields) is
// the identity transform.
type TransactionFilter struct {
	From     time.Time
	To       time.Time
	HasFrom  bool
	HasTo    bool
	Category string
	Action   string
	Currency string
	Symbol   string
}

// filterOn reports whether a string predicate is active. Empty and the
// "All" sentinel both mean "no filter".
func filterOn(value string) bool {
	return value != "" && !strings.EqualFold(value, "All")
}

// Apply returns the transactions matching every active predicate, preserving
// input order. With no active predicates the result equals the input.
func (f TransactionFilter) Apply(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

func (f TransactionFilter) matches(tx models.Transaction) bool {
	if f.HasFrom || f.HasTo {
		// A row with no parsable date cannot satisfy an active date range.
		if tx.DateMissing {
			return false
		}
		if f.HasFrom && tx.Date.Before(f.From) {
			return false
		}
		if f.HasTo && tx.Date.After(f.To) {
			return false
		}
	}
	if filterOn(f.Category) && !strings.EqualFold(tx.Category, f.Category) {
		return false
	}
	if filterOn(f.Action) && models.ParseAction(f.Action) != tx.Action {
		return false
	}
	if filterOn(f.Currency) && !strings.EqualFold(tx.Currency, f.Currency) {
		return false
	}
	if f.Symbol != "" && !strings.Contains(strings.ToUpper(tx.Symbol), strings.ToUpper(f.Symbol)) {
		return false
	}
	return true
}

// ApplySales filters realized sales on the predicates that apply to them:
// date range, category and symbol substring. Action and currency are trade
// row attributes and are ignored here.
func (f TransactionFilter) ApplySales(sales []models.RealizedSale) []models.RealizedSale {
	out := make([]models.RealizedSale, 0, len(sales))
	for _, sale := range sales {
		if f.HasFrom || f.HasTo {
			if sale.Date.IsZero() {
				continue
			}
			if f.HasFrom && sale.Date.Before(f.From) {
				continue
			}
			if f.HasTo && sale.Date.After(f.To) {
				continue
			}
		}
		if filterOn(f.Category) && !strings.EqualFold(sale.Category, f.Category) {
			continue
		}
		if f.Symbol != "" && !strings.Contains(strings.ToUpper(sale.Symbol), strings.ToUpper(f.Symbol)) {
			continue
		}
		out = append(out, sale)
	}
	return out
}
