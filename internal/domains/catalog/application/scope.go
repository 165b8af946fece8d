package application

import (
	"context"
	"errors"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
)

// createScope parameterizes the create algorithm over one entity type.
// Steps run in order and each one is only issued after the previous succeeded.
type createScope[T any] struct {
	// conflictMsg is reported both for a positive pre-check and for a storage-level duplicate.
	conflictMsg string
	// parentNotFoundMsg is reported when persist loses the parent to a concurrent delete.
	parentNotFoundMsg string
	// ensureParent is nil for entities without a parent scope.
	ensureParent func(ctx context.Context) error
	exists       func(ctx context.Context, name string) (bool, error)
	persist      func(ctx context.Context, name string) (T, error)
}

func createInScope[T any](ctx context.Context, scope createScope[T], name string) (T, error) {
	var zero T
	if scope.ensureParent != nil {
		if err := scope.ensureParent(ctx); err != nil {
			return zero, err
		}
	}
	exists, err := scope.exists(ctx, name)
	if err != nil {
		return zero, err
	}
	if exists {
		return zero, conflict(scope.conflictMsg, nil)
	}
	created, err := scope.persist(ctx, name)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrDuplicate):
			return zero, conflict(scope.conflictMsg, err)
		case errors.Is(err, ports.ErrNotFound) && scope.parentNotFoundMsg != "":
			return zero, notFound(scope.parentNotFoundMsg, err)
		}
		return zero, mapError(err)
	}
	return created, nil
}

// renameScope parameterizes the idempotent rename algorithm over one entity type.
type renameScope[T any] struct {
	notFoundMsg string
	conflictMsg string
	find        func(ctx context.Context, id int64) (T, error)
	nameOf      func(current T) string
	// exists checks the name within the scope that owns current.
	exists func(ctx context.Context, current T, name string) (bool, error)
	update func(ctx context.Context, id int64, name string) (T, error)
}

func renameInScope[T any](ctx context.Context, scope renameScope[T], id int64, rawName string) (T, error) {
	var zero T
	name, err := domain.NormalizeName(rawName)
	if err != nil {
		return zero, invalidInput(err)
	}
	current, err := scope.find(ctx, id)
	if err != nil {
		return zero, classifyLookup(err, scope.notFoundMsg)
	}
	if name == scope.nameOf(current) {
		return current, nil
	}
	exists, err := scope.exists(ctx, current, name)
	if err != nil {
		return zero, err
	}
	if exists {
		return zero, conflict(scope.conflictMsg, nil)
	}
	updated, err := scope.update(ctx, id, name)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrDuplicate):
			return zero, conflict(scope.conflictMsg, err)
		case errors.Is(err, ports.ErrNotFound):
			return zero, notFound(scope.notFoundMsg, err)
		}
		return zero, mapError(err)
	}
	return updated, nil
}

// classifyLookup turns a gateway not-found signal into a NotFound error and leaves everything else opaque.
func classifyLookup(err error, msg string) error {
	if errors.Is(err, ports.ErrNotFound) {
		return notFound(msg, err)
	}
	return err
}
