package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
)

// PostgreSQL SQLSTATE codes the catalog cares about.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// translateError maps constraint violations onto the gateway sentinels.
// Both lib/pq and pgx errors are recognised so the adapters work with either driver.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ErrNotFound
	}
	code, constraint := sqlState(err)
	switch code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", ports.ErrDuplicate, constraint)
	case codeCheckViolation:
		return fmt.Errorf("%w: %s", domain.ErrNegativeStock, constraint)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", ports.ErrNotFound, constraint)
	}
	return err
}

func sqlState(err error) (string, string) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}
