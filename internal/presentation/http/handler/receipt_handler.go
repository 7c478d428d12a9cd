package handler

import (
	"time"

	"github.com/dukahub/dukapos-api/internal/application/service"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/response"
	"github.com/dukahub/dukapos-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceiptHandler handles receipt and refund HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	refundService  *service.RefundService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService, refundService *service.RefundService) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		refundService:  refundService,
	}
}

// List handles listing receipts (supports both page-based and cursor-based
// pagination)
func (h *ReceiptHandler) List(c *gin.Context) {
	actor, ok := CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var filter request.ReceiptFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	if filter.Cursor != "" || filter.Limit > 0 {
		h.listWithCursor(c, actor, &filter)
		return
	}

	params := &repository.ReceiptFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		Refunded:  filter.Refunded,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.StartDate != "" {
		if t, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			params.StartDate = &t
		}
	}
	if filter.EndDate != "" {
		if t, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			params.EndDate = &t
		}
	}

	result, err := h.receiptService.ListReceipts(c.Request.Context(), actor, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}

// listWithCursor handles listing receipts with cursor-based pagination
func (h *ReceiptHandler) listWithCursor(c *gin.Context, actor service.Actor, filter *request.ReceiptFilterRequest) {
	direction := filter.Direction
	if direction == "" {
		direction = "next"
	}

	params := &repository.ReceiptCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    filter.Cursor,
			Direction: pagination.CursorDirection(direction),
			Limit:     filter.Limit,
		},
		Search:   filter.Search,
		Refunded: filter.Refunded,
	}

	result, err := h.receiptService.ListReceiptsCursor(c.Request.Context(), actor, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipts retrieved successfully", result)
}

// Get handles retrieving a single receipt with its refund history
func (h *ReceiptHandler) Get(c *gin.Context) {
	actor, ok := CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, refunds, err := h.receiptService.GetReceipt(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", gin.H{
		"receipt": receipt,
		"refunds": refunds,
	})
}

// Refund refunds a subset of a receipt's line items
func (h *ReceiptHandler) Refund(c *gin.Context) {
	actor, ok := CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req request.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.RefundItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.RefundItemInput{
			ReceiptItemID: item.ReceiptItemID,
			Quantity:      item.Quantity,
		}
	}

	record, err := h.refundService.Refund(c.Request.Context(), actor, &service.RefundInput{
		ReceiptID: id,
		Items:     items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Refund processed successfully", record)
}

// ListRefunds handles listing refund records
func (h *ReceiptHandler) ListRefunds(c *gin.Context) {
	actor, ok := CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := &pagination.PaginationParams{}
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.refundService.ListRefunds(c.Request.Context(), actor, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Refunds retrieved successfully", result)
}

// GetRefund handles retrieving a single refund record
func (h *ReceiptHandler) GetRefund(c *gin.Context) {
	actor, ok := CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid refund ID")
		return
	}

	record, err := h.refundService.GetRefund(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Refund retrieved successfully", record)
}
