package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/id"
	"stockcard/internal/domain"
	"stockcard/internal/domain/documents/adjustment"
	"stockcard/internal/infrastructure/http/v1/dto"
)

// AdjustmentHandler handles inventory adjustment document endpoints.
type AdjustmentHandler struct {
	*BaseDocumentHandler[*adjustment.Adjustment, dto.CreateAdjustmentRequest, dto.UpdateAdjustmentRequest]
	service *adjustment.Service
}

// NewAdjustmentHandler creates a configured adjustment handler.
func NewAdjustmentHandler(base *BaseHandler, service *adjustment.Service) *AdjustmentHandler {
	config := BaseDocumentHandlerConfig[
		*adjustment.Adjustment,
		dto.CreateAdjustmentRequest,
		dto.UpdateAdjustmentRequest,
	]{
		Service:    service,
		EntityName: "adjustment",

		MapCreateDTO: func(req dto.CreateAdjustmentRequest) *adjustment.Adjustment {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateAdjustmentRequest, existing *adjustment.Adjustment) *adjustment.Adjustment {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(doc *adjustment.Adjustment) any {
			return dto.FromAdjustment(doc)
		},

		IsPostImmediately: func(req dto.CreateAdjustmentRequest) bool {
			return req.PostImmediately
		},
	}

	return &AdjustmentHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, config),
		service:             service,
	}
}

// List handles GET /document/adjustments
func (h *AdjustmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := adjustment.ListFilter{
		ListFilter: domain.ListFilter{
			Search:         c.Query("search"),
			Limit:          h.ParseIntQuery(c, "limit", 50),
			Offset:         h.ParseIntQuery(c, "offset", 0),
			OrderBy:        c.DefaultQuery("orderBy", "-date"),
			IncludeDeleted: c.Query("includeDeleted") == "true",
		},
		Posted:   parseBoolQuery(c, "posted"),
		DateFrom: parseTimeQuery(c, "dateFrom"),
		DateTo:   parseTimeQuery(c, "dateTo"),
	}

	if locStr := c.Query("locationId"); locStr != "" {
		locID, err := id.Parse(locStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid locationId format"))
			return
		}
		filter.LocationID = &locID
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromAdjustment(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
