package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folioboard/internal/client/folio"
	"folioboard/internal/derive"
	"folioboard/internal/service"
)

type TransactionHandler struct {
	Client       *folio.Client
	Transactions *service.TransactionViewService
	Prefs        *PortfolioHandler
	Logger       *zap.Logger
}

func (h *TransactionHandler) Register(authed *gin.RouterGroup) {
	authed.GET("/transactions", h.table)
	authed.POST("/transactions", h.create)
	authed.PUT("/transactions/:id", h.update)
	authed.DELETE("/transactions/:id", h.remove)
	authed.POST("/transactions/import", h.importCSV)
}

// @Summary Transactions table
// @Tags transactions
// @Param portfolio_id query int true "portfolio id"
// @Param asset_id query int false "filter to one asset"
// @Param sort query string false "sort key"
// @Param dir query string false "asc|desc"
// @Success 200 {object} apiResponse
// @Router /api/transactions [get]
func (h *TransactionHandler) table(c *gin.Context) {
	portfolioID := uint64QueryPtr(c, "portfolio_id")
	if portfolioID == nil {
		Error(c, http.StatusBadRequest, "portfolio_id is required", nil)
		return
	}

	params := folio.ListTransactionsParams{
		PortfolioID: *portfolioID,
		AssetID:     uint64QueryPtr(c, "asset_id"),
		Limit:       intQuery(c, "limit", 0),
		Offset:      intQuery(c, "offset", 0),
	}

	sort := derive.SortState{Key: derive.TxKeyDate, Dir: derive.Desc}
	if h.Prefs != nil {
		sort = h.Prefs.resolveSort(c, tableTransactions, sort)
	}
	baseCurrency := strQuery(c, "currency", "USD")

	view, err := h.Transactions.Table(c.Request.Context(), params, baseCurrency, sort)
	if err != nil {
		BackendError(c, err)
		return
	}
	if h.Prefs != nil && strQuery(c, "sort", "") != "" {
		h.Prefs.rememberSort(c, tableTransactions, sort)
	}
	Ok(c, view, nil)
}

func (h *TransactionHandler) create(c *gin.Context) {
	var body folio.TransactionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid transaction payload", nil)
		return
	}
	tx, err := h.Client.CreateTransaction(c.Request.Context(), body)
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, tx, nil)
}

func (h *TransactionHandler) update(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var body folio.TransactionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid transaction payload", nil)
		return
	}
	tx, err := h.Client.UpdateTransaction(c.Request.Context(), id, body)
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, tx, nil)
}

func (h *TransactionHandler) remove(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Client.DeleteTransaction(c.Request.Context(), id); err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, nil, nil)
}

// @Summary Import transactions from CSV
// @Tags transactions
// @Accept multipart/form-data
// @Param portfolio_id query int true "portfolio id"
// @Param file formData file true "CSV file"
// @Success 200 {object} apiResponse
// @Router /api/transactions/import [post]
func (h *TransactionHandler) importCSV(c *gin.Context) {
	portfolioID := uint64QueryPtr(c, "portfolio_id")
	if portfolioID == nil {
		Error(c, http.StatusBadRequest, "portfolio_id is required", nil)
		return
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.Client.ImportTransactionsCSV(c.Request.Context(), *portfolioID, header.Filename, file)
	if err != nil {
		BackendError(c, err)
		return
	}
	if h.Logger != nil {
		h.Logger.Info("transactions imported",
			zap.Uint64("portfolio_id", *portfolioID),
			zap.Int("imported", result.Imported),
			zap.Int("skipped", result.Skipped))
	}
	Ok(c, result, nil)
}
