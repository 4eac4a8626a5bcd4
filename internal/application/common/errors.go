// Package common holds helpers shared by the application services.
package common

import (
	"github.com/gohub-app/gohub/internal/shared/constants"
	"github.com/gohub-app/gohub/internal/shared/db"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

// StoreError converts an unexpected store failure into StoreUnavailable or a
// generic internal error. Typed application errors pass through unchanged.
func StoreError(log logger.Interface, msg string, err error, keysAndValues ...interface{}) error {
	if apperrors.IsAppError(err) {
		return err
	}

	log.Errorw(msg, append(keysAndValues, "error", err)...)
	if db.IsUnavailable(err) {
		return apperrors.NewStoreUnavailableError()
	}
	return apperrors.NewInternalError(constants.ErrMsgInternalServerError)
}
