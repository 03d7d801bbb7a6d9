package pkg

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/identi-digital/identi-modules/internal/domain"
)

// Active restricts a query to rows whose disabled_at is unset.
func Active() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("disabled_at IS NULL")
	}
}

// Disabled restricts a query to soft-deleted rows.
func Disabled() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("disabled_at IS NOT NULL")
	}
}

// StateScope picks Active or Disabled for a listing; anything but
// StateDisabled means active-only.
func StateScope(state domain.LifecycleState) Scope {
	if state == domain.StateDisabled {
		return Disabled()
	}
	return Active()
}

// GetOne loads a single T by id with the given scopes applied.
func GetOne[T any](ctx context.Context, db *gorm.DB, id string, scopes ...Scope) (*T, error) {
	q := db.WithContext(ctx)
	for _, s := range scopes {
		q = s(q)
	}

	var out T
	if err := q.Where("id = ?", id).First(&out).Error; err != nil {
		return nil, MapError(err)
	}
	return &out, nil
}

// Exists reports whether a T with id matches the given scopes.
func Exists[T any](ctx context.Context, db *gorm.DB, id string, scopes ...Scope) (bool, error) {
	q := db.WithContext(ctx).Model(new(T))
	for _, s := range scopes {
		q = s(q)
	}

	var n int64
	if err := q.Where("id = ?", id).Count(&n).Error; err != nil {
		return false, MapError(err)
	}
	return n > 0, nil
}

// Disable moves an active T to the disabled state, stamping disabled_at and
// updated_at with now. It returns domain.ErrNotFound when the row is absent
// or already disabled.
func Disable[T any](ctx context.Context, db *gorm.DB, id string, now time.Time) (*T, error) {
	return transition[T](ctx, db, id, "disabled_at IS NULL", map[string]any{
		"disabled_at": now,
		"updated_at":  now,
	}, Disabled())
}

// Restore moves a disabled T back to active, clearing disabled_at. It returns
// domain.ErrNotFound when the row is absent or already active.
func Restore[T any](ctx context.Context, db *gorm.DB, id string, now time.Time) (*T, error) {
	return transition[T](ctx, db, id, "disabled_at IS NOT NULL", map[string]any{
		"disabled_at": nil,
		"updated_at":  now,
	}, Active())
}

func transition[T any](ctx context.Context, db *gorm.DB, id, from string, values map[string]any, to Scope) (*T, error) {
	var out *T
	err := WithTx(ctx, db, func(tx *gorm.DB) error {
		res := tx.Model(new(T)).Where("id = ?", id).Where(from).Updates(values)
		if res.Error != nil {
			return MapError(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		got, err := GetOne[T](ctx, tx, id, to)
		if err != nil {
			return err
		}
		out = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
