package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pirate444/food-order-app/errors"
	"go.uber.org/zap"
)

// Envelope is the uniform wrapper returned by every API call
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{Success: true, Message: message})
}

// respondError converts an application error to its HTTP status + envelope.
// This is the only place engine errors become transport responses.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Code >= http.StatusInternalServerError {
		zap.L().Error("Request failed",
			zap.Error(appErr),
			zap.String("path", c.Request.URL.Path))
	}
	c.JSON(appErr.Code, Envelope{Success: false, Message: appErr.Message})
}
