package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/username/tradereport/src/logger"
	"github.com/username/tradereport/src/models"
	"github.com/username/tradereport/src/services"
	"github.com/username/tradereport/src/utils"
)

const defaultRankedReportSize = 10

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: service}
}

// HandleGetStockSummary serves the per-stock table with the account-level
// roll-up, with ETag support so presentation clients can cache it.
func (h *ReportHandler) HandleGetStockSummary(w http.ResponseWriter, r *http.Request) {
	stocks, overall, tradeStats, err := h.reportService.StockSummaries()
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if stocks == nil {
		stocks = []models.StockSummary{}
	}

	payload := map[string]interface{}{
		"stocks":     stocks,
		"overall":    overall,
		"tradeStats": tradeStats,
	}

	w.Header().Set("Cache-Control", "no-cache, private")
	if etag, etagErr := utils.GenerateETag(payload); etagErr == nil && etag != "" {
		quotedETag := fmt.Sprintf("%q", etag)
		w.Header().Set("ETag", quotedETag)
		for _, clientETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(clientETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else if etagErr != nil {
		logger.L.Warn("Proceeding without ETag check due to ETag generation error", "error", etagErr)
	}

	utils.SendJSON(w, payload)
}

func (h *ReportHandler) HandleGetCategorySummary(w http.ResponseWriter, r *http.Request) {
	categories, err := h.reportService.CategorySummaries()
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if categories == nil {
		categories = []models.CategorySummary{}
	}
	utils.SendJSON(w, categories)
}

func (h *ReportHandler) HandleGetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	months, err := h.reportService.MonthlySummaries()
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if months == nil {
		months = []models.MonthlySummary{}
	}
	utils.SendJSON(w, months)
}

// HandleGetSales serves the realized sale sequence, filterable by date
// range, category and symbol.
func (h *ReportHandler) HandleGetSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.reportService.Sales(filterFromQuery(r))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if sales == nil {
		sales = []models.RealizedSale{}
	}
	utils.SendJSON(w, sales)
}

// HandleGetHoldings serves the residual open lots left after matching.
func (h *ReportHandler) HandleGetHoldings(w http.ResponseWriter, r *http.Request) {
	positions, err := h.reportService.OpenPositions()
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if positions == nil {
		positions = []models.OpenPosition{}
	}
	utils.SendJSON(w, positions)
}

// HandleGetRankedReport serves the ranked views: top-gainers, top-losers,
// most-active, biggest-sales. Optional "n" caps the row count.
func (h *ReportHandler) HandleGetRankedReport(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	n := defaultRankedReportSize
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		parsed, err := strconv.Atoi(nStr)
		if err != nil || parsed < 1 {
			utils.SendJSONError(w, fmt.Sprintf("invalid report size %q", nStr), http.StatusBadRequest)
			return
		}
		n = parsed
	}

	if kind == "biggest-sales" {
		sales, err := h.reportService.BiggestSales(n)
		if err != nil {
			sendServiceError(w, err)
			return
		}
		if sales == nil {
			sales = []models.RealizedSale{}
		}
		utils.SendJSON(w, sales)
		return
	}

	stocks, err := h.reportService.RankedStocks(kind, n)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if stocks == nil {
		stocks = []models.StockSummary{}
	}
	utils.SendJSON(w, stocks)
}
