package services

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/tradereport/src/logger"
	"github.com/username/tradereport/src/models"
	"github.com/username/tradereport/src/parsers"
	"github.com/username/tradereport/src/processors"
)

const (
	ckLatestDataset = "dataset_latest"
	ckDatasetByID   = "dataset_%s"
)

// Dataset holds everything derived from one uploaded ledger. Computed once
// at upload time; all report endpoints are reads over it.
type Dataset struct {
	UploadID          string
	Transactions      []models.Transaction
	Trades            []models.Transaction
	Dividends         []models.Transaction
	Sales             []models.RealizedSale
	OpenPositions     []models.OpenPosition
	StockSummaries    []models.StockSummary
	CategorySummaries []models.CategorySummary
	MonthlySummaries  []models.MonthlySummary
	Overall           models.OverallSummary
	TradeStats        models.TradeStats
}

type reportServiceImpl struct {
	normalizer       parsers.Normalizer
	stockProcessor   *processors.StockProcessor
	summaryProcessor *processors.SummaryProcessor
	reportCache      *cache.Cache
	datasetExpiry    time.Duration
}

func NewReportService(
	normalizer parsers.Normalizer,
	stockProcessor *processors.StockProcessor,
	summaryProcessor *processors.SummaryProcessor,
	reportCache *cache.Cache,
	datasetExpiry time.Duration,
) ReportService {
	return &reportServiceImpl{
		normalizer:       normalizer,
		stockProcessor:   stockProcessor,
		summaryProcessor: summaryProcessor,
		reportCache:      reportCache,
		datasetExpiry:    datasetExpiry,
	}
}

func (s *reportServiceImpl) ProcessUpload(fileReader io.Reader, source string) (*UploadResult, error) {
	startTime := time.Now()
	uploadID := uuid.NewString()
	logger.L.Info("ProcessUpload START", "uploadID", uploadID, "source", source)

	parser, err := parsers.GetParser(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	rawRows, err := parser.Parse(fileReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	transactions := s.normalizer.Normalize(rawRows)
	trades, dividends := models.Partition(transactions)

	sales, openPositions := s.stockProcessor.Process(trades)
	stockSummaries := s.summaryProcessor.StockSummaries(sales, dividends)

	dataset := &Dataset{
		UploadID:          uploadID,
		Transactions:      transactions,
		Trades:            trades,
		Dividends:         dividends,
		Sales:             sales,
		OpenPositions:     openPositions,
		StockSummaries:    stockSummaries,
		CategorySummaries: s.summaryProcessor.CategorySummaries(stockSummaries),
		MonthlySummaries:  s.summaryProcessor.MonthlySummaries(sales),
		Overall:           s.summaryProcessor.Overall(stockSummaries),
		TradeStats:        s.summaryProcessor.TradeStats(trades, sales),
	}

	s.reportCache.Set(fmt.Sprintf(ckDatasetByID, uploadID), dataset, s.datasetExpiry)
	s.reportCache.Set(ckLatestDataset, dataset, cache.NoExpiration)

	logger.L.Info("ProcessUpload END",
		"uploadID", uploadID,
		"transactions", len(transactions),
		"trades", len(trades),
		"dividends", len(dividends),
		"realizedSales", len(sales),
		"duration", time.Since(startTime))

	return uploadSummary(dataset), nil
}

// UploadSummary returns the ingest counts of a previously processed upload,
// as long as its cache entry has not expired.
func (s *reportServiceImpl) UploadSummary(uploadID string) (*UploadResult, error) {
	cached, found := s.reportCache.Get(fmt.Sprintf(ckDatasetByID, uploadID))
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUpload, uploadID)
	}
	return uploadSummary(cached.(*Dataset)), nil
}

func uploadSummary(dataset *Dataset) *UploadResult {
	return &UploadResult{
		UploadID:      dataset.UploadID,
		Transactions:  len(dataset.Transactions),
		Trades:        len(dataset.Trades),
		Dividends:     len(dataset.Dividends),
		RealizedSales: len(dataset.Sales),
		OpenPositions: len(dataset.OpenPositions),
		UniqueSymbols: len(dataset.StockSummaries),
	}
}

// dataset returns the latest processed dataset, or ErrNoDataset before the
// first upload.
func (s *reportServiceImpl) dataset() (*Dataset, error) {
	if cached, found := s.reportCache.Get(ckLatestDataset); found {
		return cached.(*Dataset), nil
	}
	return nil, ErrNoDataset
}

func (s *reportServiceImpl) Transactions(filter processors.TransactionFilter) ([]models.Transaction, error) {
	dataset, err := s.dataset()
	if err != nil {
		return nil, err
	}
	return filter.Apply(dataset.Transactions), nil
}

func (s *reportServiceImpl) Sales(filter processors.TransactionFilter) ([]models.RealizedSale, error) {
	dataset, err := s.dataset()
	if err != nil {
		return nil, err
	}
	return filter.ApplySales(dataset.Sales), nil
}

func (s *reportServiceImpl) Dividends(filter processors.TransactionFilter) ([]models.Transaction, models.DividendStats, error) {
	dataset, err := s.dataset()
	if err != nil {
		return nil, models.DividendStats{}, err
	}
	filtered := filter.Apply(dataset.Dividends)
	return filtered, s.summaryProcessor.DividendStats(filtered), nil
}

func (s *reportServiceImpl) StockSummaries() ([]models.StockSummary, models.OverallSummary, models.TradeStats, error) {
	dataset, err := s.dataset()
	if err != nil {
		return nil, models.OverallSummary{}, models.TradeStats{}, err
	}
	return dataset.StockSummaries, dataset.Overall, dataset.TradeStats, nil
}

func (s *reportServiceImpl) CategorySummaries() ([]models.CategorySummary, error) {
	dataset, err := s.dataset()
	if err != nil {
		return nil, err
	}
	return dataset.CategorySummaries, nil
}

func (s *reportServiceImpl) MonthlySummaries() ([]models.MonthlySummary, error) {
	dataset, err := s.dataset()
	if err != nil {
		return nil, err
	}
	return dataset.MonthlySummaries, nil
}

func (s *reportServiceImpl) OpenPositions() ([]models.OpenPosition, error) {
	dataset, err := s.dataset()
	if err != nil {
		return nil, err
	}
	return dataset.OpenPositions, nil
}

func (s *reportServiceImpl) RankedStocks(kind string, n int) ([]models.StockSummary, error) {
	dataset, err := s.dataset()
	if err != nil {
		return nil, err
	}
	switch kind {
	case "top-gainers":
		return processors.TopGainers(dataset.StockSummaries, n), nil
	case "top-losers":
		return processors.TopLosers(dataset.StockSummaries, n), nil
	case "most-active":
		return processors.MostActive(dataset.StockSummaries, n), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownReport, kind)
	}
}

func (s *reportServiceImpl) BiggestSales(n int) ([]models.RealizedSale, error) {
	dataset, err := s.dataset()
	if err != nil {
		return nil, err
	}
	return processors.BiggestSales(dataset.Sales, n), nil
}
