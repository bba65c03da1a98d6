package parsers

import (
	"io"

	"github.com/username/tradereport/src/models"
)

// Parser reads a broker activity export and produces raw ledger rows.
type Parser interface {
	Parse(file io.Reader) ([]models.RawTransaction, error)
}

// Normalizer converts raw rows into canonical transactions. Best-effort:
// row-level dirt degrades fields, it never drops the row.
type Normalizer interface {
	Normalize(raw []models.RawTransaction) []models.Transaction
}
