package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appProcurement "github.com/procure/backend/internal/application/procurement"
	"github.com/procure/backend/internal/domain/identity"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/procure/backend/internal/interfaces/http/dto"
	"github.com/procure/backend/internal/interfaces/http/middleware"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "X-Request-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	if id := c.GetHeader(RequestIDKey); id != "" {
		return id
	}
	return ""
}

// getUserID extracts the authenticated user ID from the JWT claims
func getUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr := middleware.GetJWTUserID(c)
	if userIDStr == "" {
		return uuid.Nil, shared.ErrUnauthorized
	}
	id, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, shared.ErrUnauthorized
	}
	return id, nil
}

// actor builds the document-operation caller from the JWT claims. An
// unauthenticated request yields an invalid role, which every scoped
// operation rejects.
func actor(c *gin.Context) appProcurement.Actor {
	a := appProcurement.Actor{Role: identity.Role(middleware.GetJWTRole(c))}
	if id, err := getUserID(c); err == nil {
		a.ID = id
	}
	return a
}

// toFilter converts list query parameters into a repository filter
func toFilter(req dto.ListRequest) shared.Filter {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter
}

// dateRangeFilter adds start_date/end_date query parameters, given as
// DD-MM-YYYY, to the filter
func dateRangeFilter(c *gin.Context, filter shared.Filter) (shared.Filter, error) {
	if v := c.Query("start_date"); v != "" {
		t, err := shared.ParseDocDate(v)
		if err != nil {
			return filter, shared.NewDomainError(dto.ErrCodeInvalidFormat, "start_date must be DD-MM-YYYY")
		}
		filter.Filters["start_date"] = t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := shared.ParseDocDate(v)
		if err != nil {
			return filter, shared.NewDomainError(dto.ErrCodeInvalidFormat, "end_date must be DD-MM-YYYY")
		}
		filter.Filters["end_date"] = t
	}
	return filter, nil
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BindingError maps a request binding failure onto the error envelope
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleError converts domain errors to HTTP responses. Unknown error
// types surface as INTERNAL without leaking their message.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := getRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		statusCode := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(statusCode, dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, requestID))
		return
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
		requestID,
	))
}
