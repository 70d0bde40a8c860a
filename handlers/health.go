package handlers

import (
	"net/http"

	"zmina/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last known status of external dependencies.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
