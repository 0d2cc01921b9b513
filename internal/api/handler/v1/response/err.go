package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errTokenInvalid = errors.New("Token is invalid")

// Err is the envelope every failed request renders. The status code rides
// along for RenderErr but is never serialized.
type Err struct {
	StatusCode int    `json:"-"`
	Success    bool   `json:"success"`
	Msg        string `json:"msg"`
}

func (e *Err) Error() string {
	return e.Msg
}

func NewErr(statusCode int, err error) *Err {
	return &Err{
		StatusCode: statusCode,
		Success:    false,
		Msg:        err.Error(),
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, err)
}

func ErrNotFound(err error) *Err {
	return NewErr(http.StatusNotFound, err)
}

// ErrInvalidToken deliberately carries no detail about why the token was
// rejected.
func ErrInvalidToken() *Err {
	return NewErr(http.StatusBadRequest, errTokenInvalid)
}

func ErrInternalServerError(err error) *Err {
	zap.L().Error("500 internal server error", zap.Error(err))

	return NewErr(http.StatusInternalServerError, errors.New("internal server error"))
}

func RenderErr(ctx *gin.Context, err *Err) {
	ctx.AbortWithStatusJSON(err.StatusCode, err)
}
