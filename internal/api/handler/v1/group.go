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

type GroupService interface {
	GetGroups(ctx context.Context) ([]domain.Group, error)
	GetGroupWithUsers(ctx context.Context, id uint) (domain.Group, error)
	CreateGroup(ctx context.Context, name, password string, superGroup bool, memberIDs []uint) (domain.Group, error)
	UpdateGroup(ctx context.Context, id uint, name, password *string, superGroup *bool, memberIDs []uint) (domain.Group, error)
	DeleteGroup(ctx context.Context, id uint) error
}

type GroupUserService interface {
	GetUsersByGroup(ctx context.Context, groupID uint) ([]domain.User, error)
}

type GroupHandler struct {
	svc     GroupService
	userSvc GroupUserService
}

func NewGroupHandler(svc GroupService, userSvc GroupUserService) *GroupHandler {
	return &GroupHandler{
		svc:     svc,
		userSvc: userSvc,
	}
}

// HandleGetGroups godoc
// @Summary      List all groups
// @Tags         groups
// @Produce      json
// @Success      200      {object}   response.GroupsResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /groups [get]
// @Security     BearerToken
func (h *GroupHandler) HandleGetGroups(ctx *gin.Context) {
	groups, err := h.svc.GetGroups(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetGroups -> h.svc.GetGroups -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	summaries := make([]response.GroupSummary, 0, len(groups))
	for _, group := range groups {
		summaries = append(summaries, response.GroupSummary{
			ID:   group.ID,
			Name: group.Name,
		})
	}

	ctx.JSON(http.StatusOK, response.GroupsResponse{
		Success: true,
		Groups:  summaries,
	})
}

// HandleGetSelf godoc
// @Summary      Fetch the calling group with its members
// @Tags         groups
// @Produce      json
// @Success      200      {object}   response.GroupResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /groups/self [get]
// @Security     BearerToken
func (h *GroupHandler) HandleGetSelf(ctx *gin.Context) {
	caller, ok := middleware.GroupFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInvalidToken())
		return
	}

	group, err := h.svc.GetGroupWithUsers(ctx.Request.Context(), caller.ID)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrGroupNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetSelf -> h.svc.GetGroupWithUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.GroupResponse{
		Success: true,
		Group:   group,
	})
}

// HandleGetGroupUsers godoc
// @Summary      List the members of a group
// @Tags         groups
// @Produce      json
// @Param        group_id  query     int true "group ID"
// @Success      200      {object}   response.UsersResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /groups/users [get]
// @Security     BearerToken
func (h *GroupHandler) HandleGetGroupUsers(ctx *gin.Context) {
	groupID, err := strconv.ParseUint(ctx.Query("group_id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("group_id must be a positive integer")))
		return
	}

	users, err := h.userSvc.GetUsersByGroup(ctx.Request.Context(), uint(groupID))
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrGroupNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetGroupUsers -> h.userSvc.GetUsersByGroup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.UsersResponse{
		Success: true,
		Users:   users,
	})
}

// HandleAddGroup godoc
// @Summary      Create a group
// @Tags         groups
// @Produce      json
// @Param        request   body      request.AddGroupRequest true "request body"
// @Success      200      {object}   response.GroupResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /groups [post]
// @Security     BearerToken
func (h *GroupHandler) HandleAddGroup(ctx *gin.Context) {
	var req request.AddGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	group, err := h.svc.CreateGroup(ctx.Request.Context(), req.Name, req.Password, req.SuperGroup, req.MembersID)
	if err != nil {
		if errors.Is(err, service.ErrGroupNameExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrGroupNameExists))
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUserNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleAddGroup -> h.svc.CreateGroup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.GroupResponse{
		Success: true,
		Group:   group,
	})
}

// HandleEditGroup godoc
// @Summary      Update a group
// @Tags         groups
// @Produce      json
// @Param        request   body      request.EditGroupRequest true "request body"
// @Success      200      {object}   response.GroupResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /groups [put]
// @Security     BearerToken
func (h *GroupHandler) HandleEditGroup(ctx *gin.Context) {
	var req request.EditGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	group, err := h.svc.UpdateGroup(ctx.Request.Context(), req.GroupID, req.Name, req.Password, req.SuperGroup, req.MembersID)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrGroupNotFound))
			return
		}
		if errors.Is(err, service.ErrGroupNameExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrGroupNameExists))
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUserNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleEditGroup -> h.svc.UpdateGroup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.GroupResponse{
		Success: true,
		Group:   group,
	})
}

// HandleDeleteGroup godoc
// @Summary      Delete a group
// @Tags         groups
// @Produce      json
// @Param        request   body      request.DeleteGroupRequest true "request body"
// @Success      200      {object}   response.OK
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /groups [delete]
// @Security     BearerToken
func (h *GroupHandler) HandleDeleteGroup(ctx *gin.Context) {
	var req request.DeleteGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteGroup(ctx.Request.Context(), req.GroupID); err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrGroupNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteGroup -> h.svc.DeleteGroup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOK("group deleted"))
}
