package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saamb/saamb-api/internal/api/handler/v1/response"
)

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         healthcheck
// @Produce      json
// @Success      200      {object}   response.OK
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.NewOK("API is up and running"))
}
