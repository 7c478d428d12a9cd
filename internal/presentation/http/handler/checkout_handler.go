package handler

import (
	"github.com/dukahub/dukapos-api/internal/application/service"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles cart checkout HTTP requests
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout completes a sale for the submitted cart. Staff checkouts produce a
// receipt; company accounts produce a pending order instead.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	actor, ok := CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.CheckoutItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CheckoutItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), actor, &service.CheckoutInput{Items: items})
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Order != nil {
		response.Created(c, "Order placed successfully", result)
		return
	}
	response.Created(c, "Checkout completed successfully", result)
}
