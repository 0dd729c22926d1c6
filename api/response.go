package api

import (
	"errors"
	"net/http"

	"ledgerapi/config"
	"ledgerapi/logging"
	"ledgerapi/middleware"
	"ledgerapi/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Response common envelope
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 200
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

// SuccessWithMessage 200 with a custom message
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Error error envelope
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// bindError reports a request body or query that failed to bind
func bindError(c *gin.Context, err error) {
	BadRequest(c, "invalid request: "+err.Error())
}

// respondError maps service errors onto HTTP statuses. Anything that is not a
// domain error is logged and reported as 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrConflict):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidOperation):
		BadRequest(c, err.Error())
	default:
		_ = c.Error(err)
		logging.Component("api").WithError(err).WithFields(logrus.Fields{
			logging.FieldMethod: c.Request.Method,
			logging.FieldPath:   c.FullPath(),
			logging.FieldUserID: middleware.GetCurrentUserID(c),
		}).Error("request failed")
		InternalError(c, config.SafeErrorMessage(err, "internal server error"))
	}
}
