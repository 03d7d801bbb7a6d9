package pkg

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/identi-digital/identi-modules/internal/domain"
)

// Store is a GORM-backed domain.Repository for a soft-deletable entity.
// Modules embed it and add their own queries.
type Store[T any] struct {
	db   *gorm.DB
	spec ListSpec
	now  func() time.Time
}

// NewStore creates a Store for T listed according to spec.
func NewStore[T any](db *gorm.DB, spec ListSpec) *Store[T] {
	return &Store[T]{db: db, spec: spec, now: time.Now}
}

// DB exposes the underlying handle for module-specific queries.
func (s *Store[T]) DB() *gorm.DB {
	return s.db
}

// Now returns the store clock's current time.
func (s *Store[T]) Now() time.Time {
	return s.now()
}

// SetClock replaces the clock used for lifecycle timestamps.
func (s *Store[T]) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Create inserts entity.
func (s *Store[T]) Create(ctx context.Context, entity *T) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return MapError(err)
	}
	return nil
}

// GetByID retrieves an active entity by id.
func (s *Store[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return GetOne[T](ctx, s.db, id, Active())
}

// List returns a page of entities in q.State, narrowed by q.Filters.
func (s *Store[T]) List(ctx context.Context, q domain.ListQuery) (*domain.PageResult[T], error) {
	return FindPage[T](ctx, s.db, s.spec, q.PageRequest, StateScope(q.State), Equals(q.Filters, s.spec.FilterFields))
}

// Update loads the active entity, applies the change, and saves it in one
// transaction. An error from apply aborts the update.
func (s *Store[T]) Update(ctx context.Context, id string, apply func(*T) error) (*T, error) {
	var out *T
	err := WithTx(ctx, s.db, func(tx *gorm.DB) error {
		entity, err := GetOne[T](ctx, tx, id, Active())
		if err != nil {
			return err
		}
		if err := apply(entity); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(entity).Error; err != nil {
			return MapError(err)
		}
		out = entity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Disable soft-deletes an active entity.
func (s *Store[T]) Disable(ctx context.Context, id string) (*T, error) {
	return Disable[T](ctx, s.db, id, s.now())
}

// Restore re-activates a disabled entity.
func (s *Store[T]) Restore(ctx context.Context, id string) (*T, error) {
	return Restore[T](ctx, s.db, id, s.now())
}
