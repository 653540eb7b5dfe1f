package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/id"
	"stockcard/internal/domain"
	"stockcard/internal/domain/documents/transfer"
	"stockcard/internal/infrastructure/http/v1/dto"
)

// TransferHandler handles transfer document endpoints.
type TransferHandler struct {
	*BaseDocumentHandler[*transfer.Transfer, dto.CreateTransferRequest, dto.UpdateTransferRequest]
	service *transfer.Service
}

// NewTransferHandler creates a configured transfer handler.
func NewTransferHandler(base *BaseHandler, service *transfer.Service) *TransferHandler {
	config := BaseDocumentHandlerConfig[
		*transfer.Transfer,
		dto.CreateTransferRequest,
		dto.UpdateTransferRequest,
	]{
		Service:    service,
		EntityName: "transfer",

		MapCreateDTO: func(req dto.CreateTransferRequest) *transfer.Transfer {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateTransferRequest, existing *transfer.Transfer) *transfer.Transfer {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(doc *transfer.Transfer) any {
			return dto.FromTransfer(doc)
		},

		IsPostImmediately: func(req dto.CreateTransferRequest) bool {
			return req.PostImmediately
		},
	}

	return &TransferHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, config),
		service:             service,
	}
}

// List handles GET /document/transfers
func (h *TransferHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := transfer.ListFilter{
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

	if opType := c.Query("operationType"); opType != "" {
		t := transfer.OperationType(opType)
		if !t.Valid() {
			h.Error(c, apperror.NewValidation("unknown operation type").
				WithDetail("value", opType))
			return
		}
		filter.OperationType = &t
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
		items[i] = dto.FromTransfer(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
