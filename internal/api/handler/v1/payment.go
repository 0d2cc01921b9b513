package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saamb/saamb-api/internal/api/handler/v1/response"
	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/service"
)

type PaymentService interface {
	GetPaymentInfo(ctx context.Context) (domain.PaymentInfo, error)
}

type PaymentHandler struct {
	svc PaymentService
}

func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{
		svc: svc,
	}
}

// HandleGetPaymentInfo godoc
// @Summary      Fetch the bank details for paying a cart
// @Tags         payment
// @Produce      json
// @Success      200      {object}   response.PaymentInfoResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payment-info [get]
// @Security     BearerToken
func (h *PaymentHandler) HandleGetPaymentInfo(ctx *gin.Context) {
	info, err := h.svc.GetPaymentInfo(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrPaymentInfoNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPaymentInfoNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetPaymentInfo -> h.svc.GetPaymentInfo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.PaymentInfoResponse{
		Success:     true,
		PaymentInfo: info,
	})
}
