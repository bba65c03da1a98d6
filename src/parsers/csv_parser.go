package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/username/tradereport/src/models"
)

// ErrMissingColumns signals a structurally incompatible file: a required
// column is absent from the header entirely. Row-level dirt never triggers it.
var ErrMissingColumns = errors.New("activity file is missing required columns")

// ActivityCSVParser reads a broker activity CSV export. Column headers vary
// between export versions (naming, underscores, stray whitespace), so columns
// are located by canonicalized header name rather than position.
type ActivityCSVParser struct{}

func NewActivityCSVParser() *ActivityCSVParser {
	return &ActivityCSVParser{}
}

// canonicalHeader collapses case, underscores and repeated whitespace so
// "Transaction_Date", " transaction date " and "Transaction Date" all match.
func canonicalHeader(h string) string {
	h = strings.ReplaceAll(h, "_", " ")
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

var headerAliases = map[string]string{
	"transaction date": "date",
	"date":             "date",
	"trade date":       "date",
	"action":           "action",
	"symbol":           "symbol",
	"description":      "description",
	"quantity":         "quantity",
	"qty":              "quantity",
	"price":            "price",
	"gross amount":     "gross",
	"gross":            "gross",
	"net amount":       "net",
	"net":              "net",
	"currency":         "currency",
	"activity type":    "activity",
	"type":             "activity",
}

func (p *ActivityCSVParser) Parse(file io.Reader) ([]models.RawTransaction, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields per record
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int)
	for i, h := range header {
		if name, ok := headerAliases[canonicalHeader(h)]; ok {
			if _, seen := columns[name]; !seen {
				columns[name] = i
			}
		}
	}

	for _, required := range []string{"date", "symbol", "action"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumns, required)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var transactions []models.RawTransaction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Warning: Failed to read CSV record: %v", err)
			continue // Skip this record and continue processing
		}
		transactions = append(transactions, models.RawTransaction{
			Date:         field(record, "date"),
			Action:       field(record, "action"),
			Symbol:       field(record, "symbol"),
			Description:  field(record, "description"),
			Quantity:     field(record, "quantity"),
			Price:        field(record, "price"),
			GrossAmount:  field(record, "gross"),
			NetAmount:    field(record, "net"),
			Currency:     field(record, "currency"),
			ActivityType: field(record, "activity"),
		})
	}

	return transactions, nil
}
