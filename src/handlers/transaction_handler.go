package handlers

import (
	"errors"
	"net/http"

	"github.com/username/tradereport/src/models"
	"github.com/username/tradereport/src/services"
	"github.com/username/tradereport/src/utils"
)

type TransactionHandler struct {
	reportService services.ReportService
}

func NewTransactionHandler(service services.ReportService) *TransactionHandler {
	return &TransactionHandler{reportService: service}
}

// HandleGetTransactions serves the filtered canonical transaction set.
func (h *TransactionHandler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.reportService.Transactions(filterFromQuery(r))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	utils.SendJSON(w, transactions)
}

// HandleGetDividends serves the filtered dividend subset with its header stats.
func (h *TransactionHandler) HandleGetDividends(w http.ResponseWriter, r *http.Request) {
	dividends, stats, err := h.reportService.Dividends(filterFromQuery(r))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if dividends == nil {
		dividends = []models.Transaction{}
	}
	utils.SendJSON(w, map[string]interface{}{
		"dividends": dividends,
		"stats":     stats,
	})
}

// sendServiceError maps service errors onto HTTP responses.
func sendServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrNoDataset) {
		utils.SendJSONError(w, "No ledger uploaded yet. POST a file to /api/upload first.", http.StatusNotFound)
		return
	}
	if errors.Is(err, services.ErrUnknownUpload) {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, services.ErrUnknownReport) {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.SendJSONError(w, "An internal error occurred.", http.StatusInternalServerError)
}
