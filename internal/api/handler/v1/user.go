package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/saamb/saamb-api/internal/api/handler/v1/request"
	"github.com/saamb/saamb-api/internal/api/handler/v1/response"
	"github.com/saamb/saamb-api/internal/api/middleware"
	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/service"
)

var errNotInCallerGroup = errors.New("user does not belong to your group")

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	CreateUser(ctx context.Context, firstName, lastName string, groupID uint) (domain.User, error)
	UpdateUser(ctx context.Context, id uint, update service.UserUpdate) (domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetUser godoc
// @Summary      Fetch a user
// @Tags         users
// @Produce      json
// @Param        user_id   query     int true "user ID"
// @Success      200      {object}   response.UserResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users [get]
// @Security     BearerToken
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Query("user_id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("user_id must be a positive integer")))
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.UserResponse{
		Success: true,
		User:    user,
	})
}

// HandleAddUser godoc
// @Summary      Create a user
// @Tags         users
// @Produce      json
// @Param        request   body      request.AddUserRequest true "request body"
// @Success      200      {object}   response.UserResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users [post]
// @Security     BearerToken
func (h *UserHandler) HandleAddUser(ctx *gin.Context) {
	var req request.AddUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.CreateUser(ctx.Request.Context(), req.FirstName, req.LastName, req.GroupID)
	if err != nil {
		if errors.Is(err, service.ErrUserNameExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUserNameExists))
			return
		}
		if errors.Is(err, service.ErrGroupNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrGroupNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleAddUser -> h.svc.CreateUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.UserResponse{
		Success: true,
		User:    user,
	})
}

// HandleEditUser godoc
// @Summary      Update a user
// @Description  A group may edit its own members; a super group may edit anyone.
// @Tags         users
// @Produce      json
// @Param        request   body      request.EditUserRequest true "request body"
// @Success      200      {object}   response.UserResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users [put]
// @Security     BearerToken
func (h *UserHandler) HandleEditUser(ctx *gin.Context) {
	caller, ok := middleware.GroupFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInvalidToken())
		return
	}

	var req request.EditUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	target, err := h.svc.GetUser(ctx.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleEditUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if !caller.SuperGroup && target.GroupID != caller.ID {
		response.RenderErr(ctx, response.ErrBadRequest(errNotInCallerGroup))
		return
	}

	// Reassigning a user to another group is an admin concern.
	if req.GroupID != nil && !caller.SuperGroup {
		response.RenderErr(ctx, response.ErrBadRequest(errNotInCallerGroup))
		return
	}

	update := service.UserUpdate{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DietaryInfo:   req.DietaryInfo,
		SongRequest:   req.SongRequest,
		GroupID:       req.GroupID,
		CampingOnSite: req.CampingOnSite,
		BrunchSunday:  req.BrunchSunday,
	}
	if req.RegistrationStatus != nil {
		status := domain.RegistrationStatus(*req.RegistrationStatus)
		update.RegistrationStatus = &status
	}
	if req.AttendanceStatus != nil {
		status := domain.AttendanceStatus(*req.AttendanceStatus)
		update.AttendanceStatus = &status
	}
	if req.DietaryRestrictions != nil {
		restrictions := domain.DietaryRestrictions(*req.DietaryRestrictions)
		update.DietaryRestrictions = &restrictions
	}

	user, err := h.svc.UpdateUser(ctx.Request.Context(), req.UserID, update)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))
			return
		}
		if errors.Is(err, service.ErrGroupNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrGroupNotFound))
			return
		}
		if errors.Is(err, service.ErrUserNameExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUserNameExists))
			return
		}

		err = fmt.Errorf("v1.HandleEditUser -> h.svc.UpdateUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.UserResponse{
		Success: true,
		User:    user,
	})
}

// HandleDeleteUser godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        request   body      request.DeleteUserRequest true "request body"
// @Success      200      {object}   response.OK
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users [delete]
// @Security     BearerToken
func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	var req request.DeleteUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteUser(ctx.Request.Context(), req.UserID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteUser -> h.svc.DeleteUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOK("user deleted"))
}
