package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saamb/saamb-api/internal/api/handler/v1/request"
	"github.com/saamb/saamb-api/internal/api/handler/v1/response"
	"github.com/saamb/saamb-api/internal/api/middleware"
	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/service"
)

type CartService interface {
	GetWishlist(ctx context.Context, groupID uint) ([]domain.WishStatus, error)
	CreateWish(ctx context.Context, wish domain.Wish) (domain.Wish, error)
	UpdateWish(ctx context.Context, wish domain.Wish) (domain.Wish, error)
	DeleteWish(ctx context.Context, wishID uint) error
	Reserve(ctx context.Context, groupID, wishID uint, quantity int) error
	Unreserve(ctx context.Context, groupID, wishID uint) error
	ClearCart(ctx context.Context, groupID uint) error
	MarkPaid(ctx context.Context, groupID uint, paid bool) error
}

type WishHandler struct {
	svc CartService
}

func NewWishHandler(svc CartService) *WishHandler {
	return &WishHandler{
		svc: svc,
	}
}

// HandleGetWishlist godoc
// @Summary      List all wishes with availability for the calling group
// @Tags         wishlist
// @Produce      json
// @Success      200      {object}   response.WishlistResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /wishlist [get]
// @Security     BearerToken
func (h *WishHandler) HandleGetWishlist(ctx *gin.Context) {
	caller, ok := middleware.GroupFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInvalidToken())
		return
	}

	wishes, err := h.svc.GetWishlist(ctx.Request.Context(), caller.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetWishlist -> h.svc.GetWishlist -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.WishlistResponse{
		Success: true,
		Wishes:  wishes,
	})
}

// HandleAddWish godoc
// @Summary      Create a wish
// @Tags         wishlist
// @Produce      json
// @Param        request   body      request.AddWishRequest true "request body"
// @Success      200      {object}   response.WishResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /wishlist [post]
// @Security     BearerToken
func (h *WishHandler) HandleAddWish(ctx *gin.Context) {
	var req request.AddWishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	wish, err := h.svc.CreateWish(ctx.Request.Context(), domain.Wish{
		Title:       req.Title,
		Description: req.Description,
		PictureURL:  req.PictureURL,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleAddWish -> h.svc.CreateWish -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.WishResponse{
		Success: true,
		Wish:    wish,
	})
}

// HandleEditWish godoc
// @Summary      Update a wish
// @Tags         wishlist
// @Produce      json
// @Param        request   body      request.EditWishRequest true "request body"
// @Success      200      {object}   response.WishResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /wishlist [put]
// @Security     BearerToken
func (h *WishHandler) HandleEditWish(ctx *gin.Context) {
	var req request.EditWishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	wish, err := h.svc.UpdateWish(ctx.Request.Context(), domain.Wish{
		ID:          req.WishID,
		Title:       req.Title,
		Description: req.Description,
		PictureURL:  req.PictureURL,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		if errors.Is(err, service.ErrWishNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrWishNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleEditWish -> h.svc.UpdateWish -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.WishResponse{
		Success: true,
		Wish:    wish,
	})
}

// HandleDeleteWish godoc
// @Summary      Delete a wish and every reservation of it
// @Tags         wishlist
// @Produce      json
// @Param        request   body      request.DeleteWishRequest true "request body"
// @Success      200      {object}   response.OK
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /wishlist [delete]
// @Security     BearerToken
func (h *WishHandler) HandleDeleteWish(ctx *gin.Context) {
	var req request.DeleteWishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteWish(ctx.Request.Context(), req.WishID); err != nil {
		if errors.Is(err, service.ErrWishNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrWishNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteWish -> h.svc.DeleteWish -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOK("wish deleted"))
}

// HandlePurchase godoc
// @Summary      Reserve or release a wish for the calling group
// @Description  Reserving sets the group's reserved quantity to the given value.
// @Tags         wishlist
// @Produce      json
// @Param        request   body      request.PurchaseRequest true "request body"
// @Success      200      {object}   response.OK
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /wishlist [patch]
// @Security     BearerToken
func (h *WishHandler) HandlePurchase(ctx *gin.Context) {
	caller, ok := middleware.GroupFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInvalidToken())
		return
	}

	var req request.PurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var err error
	if req.IsPurchasing {
		err = h.svc.Reserve(ctx.Request.Context(), caller.ID, req.WishID, req.Quantity)
	} else {
		err = h.svc.Unreserve(ctx.Request.Context(), caller.ID, req.WishID)
	}
	if err != nil {
		if errors.Is(err, service.ErrWishNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrWishNotFound))
			return
		}
		if errors.Is(err, service.ErrCapacityExceeded) ||
			errors.Is(err, service.ErrInvalidQuantity) ||
			errors.Is(err, service.ErrNoSuchReservation) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandlePurchase -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOK("cart updated"))
}

// HandleClearCart godoc
// @Summary      Empty the calling group's cart and reset its paid flag
// @Tags         groups
// @Produce      json
// @Success      200      {object}   response.OK
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /groups/cartClear [post]
// @Security     BearerToken
func (h *WishHandler) HandleClearCart(ctx *gin.Context) {
	caller, ok := middleware.GroupFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInvalidToken())
		return
	}

	if err := h.svc.ClearCart(ctx.Request.Context(), caller.ID); err != nil {
		err = fmt.Errorf("v1.HandleClearCart -> h.svc.ClearCart -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOK("cart cleared"))
}

// HandlePay godoc
// @Summary      Mark the calling group's cart as paid or unpaid
// @Tags         groups
// @Produce      json
// @Param        request   body      request.PayRequest true "request body"
// @Success      200      {object}   response.OK
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /pay [patch]
// @Security     BearerToken
func (h *WishHandler) HandlePay(ctx *gin.Context) {
	caller, ok := middleware.GroupFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInvalidToken())
		return
	}

	var req request.PayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.MarkPaid(ctx.Request.Context(), caller.ID, req.Paid); err != nil {
		err = fmt.Errorf("v1.HandlePay -> h.svc.MarkPaid -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOK("payment status updated"))
}
