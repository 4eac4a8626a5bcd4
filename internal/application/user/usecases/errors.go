package usecases

import (
	"errors"

	"github.com/gohub-app/gohub/internal/domain/user"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
)

func accountStateError(err error) error {
	switch {
	case errors.Is(err, user.ErrAccountDeactivated):
		return apperrors.NewAccountDeactivatedError()
	case errors.Is(err, user.ErrAccountPending):
		return apperrors.NewAccountPendingError()
	}
	return err
}
