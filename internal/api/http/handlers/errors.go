package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-copilot/internal/repository"
	"github.com/spec-kit/support-copilot/internal/service"
	"github.com/spec-kit/support-copilot/pkg/util/errorutil"
)

// translateError maps store and service errors onto transport errors.
func translateError(err error) error {
	var fiberErr *fiber.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &fiberErr):
		return errorutil.NewDomainError("HTTP_ERROR", fiberErr.Message, fiberErr.Code, nil)
	case errors.Is(err, repository.ErrStoreUnavailable):
		return errorutil.NewStoreUnavailable(err)
	case errors.Is(err, repository.ErrIssueNotFound):
		return errorutil.NewNotFound("issue", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		return errorutil.NewUnauthorized("invalid client credentials")
	default:
		return err
	}
}
