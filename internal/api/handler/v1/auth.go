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
	"github.com/saamb/saamb-api/internal/config"
	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/pkg/jwthelper"
	"github.com/saamb/saamb-api/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, name, password string) (domain.Group, []domain.User, error)
	Logout(ctx context.Context, group domain.Group, token string) error
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleLogin godoc
// @Summary      Login a group
// @Tags         groups
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /groups/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	group, users, err := h.svc.Login(ctx.Request.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrWrongPassword))
			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), group.Name)
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Success: true,
		Token:   token,
		Group:   group,
		Users:   users,
	})
}

// HandleLogout godoc
// @Summary      Logout the calling group
// @Tags         groups
// @Produce      json
// @Success      200      {object}   response.OK
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /groups/logout [post]
// @Security     BearerToken
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	group, ok := middleware.GroupFromContext(ctx)
	token, hasToken := middleware.TokenFromContext(ctx)
	if !ok || !hasToken {
		response.RenderErr(ctx, response.ErrInvalidToken())
		return
	}

	if err := h.svc.Logout(ctx.Request.Context(), group, token); err != nil {
		err = fmt.Errorf("v1.HandleLogout -> h.svc.Logout -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOK("logged out"))
}
