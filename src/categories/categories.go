package categories

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Reporting categories. Everything not listed in the table lands in Other.
const (
	TSXMining = "TSX Mining"
	Dividend  = "Dividend"
	Tech      = "Tech"
	BlueChip  = "Blue Chip"
	Other     = "Other"
)

// Table maps a category name to the ticker symbols that belong to it.
type Table map[string][]string

// DefaultTable returns the built-in symbol table.
func DefaultTable() Table {
	return Table{
		TSXMining: {
			"ABX.TO", "CCO.TO", "TECK-B.TO", "NTR.TO", "FM.TO", "FNV.TO",
			"AGI.TO", "AEM.TO", "K.TO", "WPM.TO", "LUN.TO", "IVN.TO",
			"NXE.TO", "CS.TO", "B2GOLD.TO",
		},
		Dividend: {
			"ENB.TO", "SU.TO", "BCE.TO", "JNJ", "ABBV", "PFE", "KO", "PG",
			"T.TO", "BNS.TO",
		},
		Tech: {
			"AAPL", "MSFT", "NVDA", "GOOGL", "META", "AMZN", "TSLA", "AMD",
			"CRM", "SHOP.TO", "ADBE", "INTC", "CSCO", "ORCL",
		},
		BlueChip: {
			"JPM", "WMT", "V", "UNH", "LLY", "MRK", "BMY", "CAT", "HD",
			"MA", "DIS", "XOM", "CVX",
		},
	}
}

// LoadTable reads a category table from a JSON file shaped like
// {"Tech": ["AAPL", ...], ...}. Used to override the built-in table.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading category table %s: %w", path, err)
	}
	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing category table %s: %w", path, err)
	}
	return table, nil
}

// Classifier maps ticker symbols to categories via case-insensitive exact
// match against an immutable table. Build one at startup and share it: the
// FIFO output and the aggregation step must classify identically.
type Classifier struct {
	byTicker map[string]string
}

func NewClassifier(table Table) *Classifier {
	byTicker := make(map[string]string)
	for category, symbols := range table {
		for _, symbol := range symbols {
			byTicker[strings.ToUpper(symbol)] = category
		}
	}
	return &Classifier{byTicker: byTicker}
}

// Classify returns the category for a symbol. Unknown or empty symbols map
// to Other.
func (c *Classifier) Classify(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return Other
	}
	if category, ok := c.byTicker[strings.ToUpper(symbol)]; ok {
		return category
	}
	return Other
}
