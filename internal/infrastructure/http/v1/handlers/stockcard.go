package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/id"
	"stockcard/internal/domain/stockcard"
	"stockcard/internal/infrastructure/http/v1/dto"
)

// StockCardHandler exposes the stock card report: wizard CRUD, report
// generation and snapshot retrieval.
type StockCardHandler struct {
	*BaseHandler
	service *stockcard.Service
}

// NewStockCardHandler creates a new stock card report handler.
func NewStockCardHandler(base *BaseHandler, service *stockcard.Service) *StockCardHandler {
	return &StockCardHandler{
		BaseHandler: base,
		service:     service,
	}
}

// CreateWizard handles POST /reports/stock-card/wizards
// Stores a report request for later (re)generation.
func (h *StockCardHandler) CreateWizard(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateStockCardWizardRequest
	if !h.BindJSON(c, &req) {
		return
	}

	wizard := req.ToWizard()
	if err := h.service.CreateWizard(ctx, wizard); err != nil {
		h.Error(c, err)
		return
	}

	response := dto.FromWizard(wizard)
	h.CompleteIdempotency(c, http.StatusCreated, "application/json", response)
	c.JSON(http.StatusCreated, response)
}

// Generate handles POST /reports/stock-card/wizards/:id/generate
// Builds the report document for a stored wizard.
func (h *StockCardHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	wizardID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	report, err := h.service.Generate(ctx, wizardID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.CompleteIdempotency(c, http.StatusOK, "application/json", report)
	c.JSON(http.StatusOK, report)
}

// GenerateOneShot handles POST /reports/stock-card
// One-shot path: store the request and generate in a single call.
func (h *StockCardHandler) GenerateOneShot(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateStockCardWizardRequest
	if !h.BindJSON(c, &req) {
		return
	}

	report, err := h.service.GenerateFromRequest(ctx, req.ToWizard())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.CompleteIdempotency(c, http.StatusOK, "application/json", report)
	c.JSON(http.StatusOK, report)
}

// Snapshot handles GET /reports/stock-card/wizards/:id/snapshot
// Returns the archived copy of a previously generated report.
func (h *StockCardHandler) Snapshot(c *gin.Context) {
	ctx := c.Request.Context()

	wizardID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	report, err := h.service.Snapshot(ctx, wizardID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// RegisterRoutes registers stock card report routes.
func (h *StockCardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.GenerateOneShot)
	rg.POST("/wizards", h.CreateWizard)
	rg.POST("/wizards/:id/generate", h.Generate)
	rg.GET("/wizards/:id/snapshot", h.Snapshot)
}
