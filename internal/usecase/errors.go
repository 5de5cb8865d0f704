package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrJobNotFound        = fmt.Errorf("job %w", ErrNotFound)
	ErrTechnicianNotFound = fmt.Errorf("technician %w", ErrNotFound)
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrForbidden          = errors.New("forbidden")
	ErrNotATechnician     = errors.New("user is not a technician")
	ErrStorageFailure     = errors.New("storage failure")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidPayload     = errors.New("invalid payload")

	ErrInviteNotFound      = fmt.Errorf("invite %w", ErrNotFound)
	ErrInviteAlreadyExists = errors.New("an active invite already exists for this email")
	ErrInviteNotActive     = errors.New("invite already used or expired")
	ErrAlreadyMember       = errors.New("identity already holds a role")
)

func storageFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrStorageFailure, err)
}

func invalidPayload(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, fmt.Sprintf(format, args...))
}
