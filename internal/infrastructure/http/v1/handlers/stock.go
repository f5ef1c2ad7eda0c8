package handlers

import (
	"github.com/gin-gonic/gin"

	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
	"cartline/internal/core/types"
	"cartline/internal/domain/catalog/product"
	"cartline/internal/domain/stock"
	"cartline/internal/infrastructure/http/v1/dto"
)

// StockHandler handles HTTP requests for stock balances and snapshots.
type StockHandler struct {
	*BaseHandler
	service  *stock.Service
	products *product.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service, products *product.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
		products:    products,
	}
}

// ListBalances handles GET /stock
func (h *StockHandler) ListBalances(c *gin.Context) {
	balances, err := h.service.ListBalances(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": dto.FromBalanceList(balances)})
}

// GetSnapshot handles GET /stock/:productId
//
// The carton breakdown in the response uses the product's current conversion
// factor and is informational only.
func (h *StockHandler) GetSnapshot(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	p, err := h.products.GetByID(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	snap, err := h.service.Fetch(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSnapshot(snap, p.PiecesPerCarton))
}

// RecordReceipt handles POST /stock/:productId/receipts
func (h *StockHandler) RecordReceipt(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	var req dto.ReceiptRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if _, err := h.products.GetByID(ctx, productID); err != nil {
		h.Error(c, err)
		return
	}

	b, err := h.service.RecordReceipt(ctx, productID, req.Pieces, types.NewMoney(req.UnitCost))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromBalance(b))
}

// RecordIssue handles POST /stock/:productId/issues
func (h *StockHandler) RecordIssue(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	var req dto.IssueRequest
	if !h.BindJSON(c, &req) {
		return
	}

	b, err := h.service.RecordIssue(ctx, productID, req.Pieces)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromBalance(b))
}
