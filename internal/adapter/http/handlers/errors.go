package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	request "repairdesk/internal/adapter/http/dto/request"
	"repairdesk/internal/adapter/http/middleware"
	"repairdesk/internal/usecase"
	"repairdesk/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload  = pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Invalid request payload", http.StatusBadRequest)
	errUnauthenticated = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
)

func mapJobError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		return pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Unknown identity", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Not allowed for your role", http.StatusForbidden)
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrTechnicianNotFound):
		return pkg.NewDomainErrorSimple("TECHNICIAN_NOT_FOUND", "Technician not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Status change not allowed from the current status", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNotATechnician):
		return pkg.NewDomainErrorSimple("NOT_A_TECHNICIAN", "User is not a technician", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPayload):
		return pkg.NewDomainError("INVALID_PAYLOAD", err.Error(), err, http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapInviteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInviteNotFound):
		return pkg.NewDomainErrorSimple("INVITE_NOT_FOUND", "Invite not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInviteAlreadyExists):
		return pkg.NewDomainErrorSimple("INVITE_ALREADY_EXISTS", "An active invite already exists for this email", http.StatusConflict)
	case errors.Is(err, usecase.ErrInviteNotActive):
		return pkg.NewDomainErrorSimple("INVITE_NOT_ACTIVE", "Invite already used or expired", http.StatusConflict)
	case errors.Is(err, usecase.ErrAlreadyMember):
		return pkg.NewDomainErrorSimple("ALREADY_MEMBER", "Identity already holds a role", http.StatusConflict)
	default:
		return mapJobError(err)
	}
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "[http][handler] request failed",
			"route", c.FullPath(), "code", appErr.Code, "err", appErr.Err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func writeBindError(c *gin.Context, err error) {
	if fields := request.FieldErrors(err); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    errInvalidPayload.Code,
			"message": errInvalidPayload.Message,
			"fields":  fields,
		})
		return
	}
	c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
}

// actor returns the authenticated caller or writes 401.
func actor(c *gin.Context) (usecase.Identity, bool) {
	who, ok := middleware.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
	}
	return who, ok
}
