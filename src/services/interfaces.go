package services

import (
	"errors"
	"io"

	"github.com/username/tradereport/src/models"
	"github.com/username/tradereport/src/processors"
)

var (
	ErrParsingFailed = errors.New("parsing failed")
	ErrNoDataset     = errors.New("no ledger uploaded yet")
	ErrUnknownUpload = errors.New("unknown upload id")
	ErrUnknownReport = errors.New("unknown report kind")
)

// UploadResult summarizes one processed ledger upload.
type UploadResult struct {
	UploadID      string `json:"uploadId"`
	Transactions  int    `json:"transactions"`
	Trades        int    `json:"trades"`
	Dividends     int    `json:"dividends"`
	RealizedSales int    `json:"realizedSales"`
	OpenPositions int    `json:"openPositions"`
	UniqueSymbols int    `json:"uniqueSymbols"`
}

// ReportService is the core pipeline boundary consumed by the handlers:
// ingest a ledger, then serve read-only views over the processed dataset.
type ReportService interface {
	ProcessUpload(fileReader io.Reader, source string) (*UploadResult, error)
	UploadSummary(uploadID string) (*UploadResult, error)
	Transactions(filter processors.TransactionFilter) ([]models.Transaction, error)
	Sales(filter processors.TransactionFilter) ([]models.RealizedSale, error)
	Dividends(filter processors.TransactionFilter) ([]models.Transaction, models.DividendStats, error)
	StockSummaries() ([]models.StockSummary, models.OverallSummary, models.TradeStats, error)
	CategorySummaries() ([]models.CategorySummary, error)
	MonthlySummaries() ([]models.MonthlySummary, error)
	OpenPositions() ([]models.OpenPosition, error)
	RankedStocks(kind string, n int) ([]models.StockSummary, error)
	BiggestSales(n int) ([]models.RealizedSale, error)
}
