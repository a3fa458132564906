package util

import (
	"engineer_connect_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Kind    ErrorKind   `json:"kind,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, Validation(message))
}

// Fail writes err as a response. AppErrors keep their kind and message; any
// other error is logged in full and reported as StoreUnavailable.
func Fail(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		logger.Log.Error("Internal server error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		appErr = ErrStoreUnavailable
	} else if appErr.Kind == KindStoreUnavailable && appErr.Err != nil {
		logger.Log.Error("Store unavailable",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(appErr.Err),
		)
	}

	status := StatusFor(appErr.Kind)
	message := appErr.Message
	if appErr.Kind == KindStoreUnavailable {
		message = ErrStoreUnavailable.Message
	}
	c.JSON(status, Response{
		Code:    status,
		Message: message,
		Kind:    appErr.Kind,
	})
}

// Abort is Fail followed by c.Abort, for middleware.
func Abort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}
