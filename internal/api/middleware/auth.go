package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saamb/saamb-api/internal/api/handler/v1/response"
	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/pkg/jwthelper"
)

const (
	groupContextKey = "authedGroup"
	tokenContextKey = "authedToken"
)

type AuthenticatorGroupRepository interface {
	FindByName(ctx context.Context, name string) (domain.Group, error)
}

type AuthenticatorTokenRepository interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Authenticator resolves a JWT into its group. A token is only good while
// its signature verifies, it has not been revoked, and the group still has
// an active session. Every rejection renders the same response so callers
// cannot probe which check failed.
type Authenticator struct {
	signingKey []byte
	groups     AuthenticatorGroupRepository
	tokens     AuthenticatorTokenRepository
}

func NewAuthenticator(signingKey string, groups AuthenticatorGroupRepository, tokens AuthenticatorTokenRepository) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
		groups:     groups,
		tokens:     tokens,
	}
}

func (a *Authenticator) VerifyToken() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractToken(ctx)
		if token == "" {
			response.RenderErr(ctx, response.ErrInvalidToken())
			return
		}

		groupName, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrInvalidToken())
			return
		}

		revoked, err := a.tokens.IsRevoked(ctx.Request.Context(), token)
		if err != nil || revoked {
			response.RenderErr(ctx, response.ErrInvalidToken())
			return
		}

		group, err := a.groups.FindByName(ctx.Request.Context(), groupName)
		if err != nil {
			response.RenderErr(ctx, response.ErrInvalidToken())
			return
		}

		if !group.SessionActive {
			response.RenderErr(ctx, response.ErrInvalidToken())
			return
		}

		ctx.Set(groupContextKey, group)
		ctx.Set(tokenContextKey, token)
		ctx.Next()
	}
}

// RequireAdmin gates a route to super groups. It must run after VerifyToken.
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		group, ok := GroupFromContext(ctx)
		if !ok || !group.SuperGroup {
			response.RenderErr(ctx, response.ErrInvalidToken())
			return
		}

		ctx.Next()
	}
}

func extractToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	header = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	return header
}

func GroupFromContext(ctx *gin.Context) (domain.Group, bool) {
	value, exists := ctx.Get(groupContextKey)
	if !exists {
		return domain.Group{}, false
	}

	group, ok := value.(domain.Group)

	return group, ok
}

func TokenFromContext(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(tokenContextKey)
	if !exists {
		return "", false
	}

	token, ok := value.(string)

	return token, ok
}
