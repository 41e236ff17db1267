package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/application"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/interface/middleware"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
	"github.com/oksasatya/estate-listing-api/pkg/response"
	"github.com/oksasatya/estate-listing-api/pkg/validation"
)

// StatusOf maps a domain error to its HTTP status.
func StatusOf(err error) int {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindValidation:
		if errs.IsCode(err, errs.CodeInvalidStatusTransition) {
			return http.StatusUnprocessableEntity
		}
		return http.StatusBadRequest
	case errs.KindUnauthorized:
		return http.StatusUnauthorized
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindExternal:
		if errs.IsCode(err, errs.CodeMapsRateLimited) || errs.IsCode(err, errs.CodeMapsQuotaExceeded) {
			return http.StatusTooManyRequests
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err in the error envelope. Internal causes are logged
// and replaced by a generic message.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	status := StatusOf(err)
	code := errs.CodeOf(err)
	msg := err.Error()
	var e *errs.Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	if status >= http.StatusInternalServerError {
		helpers.LogError(log, "request failed", err, logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(middleware.CtxRequestID),
			"code":       code,
		})
		if status == http.StatusInternalServerError {
			msg = "internal server error"
		}
	}
	response.Error[any](c, status, string(code), msg, nil)
}

// bindJSON binds and validates the body, answering 400 with every failing
// field on error.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error[any](c, http.StatusBadRequest, string(errs.CodeValidationFailed), "invalid payload", validation.ToDetails(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.Error[any](c, http.StatusBadRequest, string(errs.CodeValidationFailed), "invalid query", validation.ToDetails(err))
		return false
	}
	return true
}

// actor reads the caller set by the auth middleware. Anonymous when absent.
func actor(c *gin.Context) application.Actor {
	return application.Actor{
		UserID: c.GetString(middleware.CtxUserID),
		Role:   entity.Role(c.GetString(middleware.CtxRole)),
	}
}

type pageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q pageQuery) page() repository.Page {
	return repository.Page{Page: q.Page, Limit: q.Limit}.Normalize()
}
