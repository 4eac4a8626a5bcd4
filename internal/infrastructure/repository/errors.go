package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
)

// isUniqueViolation recognises duplicate-key failures from every supported driver.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateError(err)
}

// violatedColumn finds the offending column of table in the driver message, which
// names the index (mysql, postgres) or table.column (sqlite).
func violatedColumn(err error, table string, columns ...string) string {
	msg := strings.ToLower(err.Error())
	for _, c := range columns {
		if strings.Contains(msg, "idx_"+table+"_"+c) || strings.Contains(msg, table+"."+c) {
			return c
		}
	}
	return ""
}
