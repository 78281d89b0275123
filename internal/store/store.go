// Package store persists plan records and publishes live queries over them.
package store

import (
	"context"
	"fmt"
	"maps"

	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is any persisted plan record.
type Record interface {
	models.SavePlan | models.SpendingPlan | models.Consumption | models.Income
	Self() string
}

// Store reads and writes records of one type. All writes are whole-record
// replacements, per-key serialization is left to the database.
type Store[T Record] struct {
	db  *gorm.DB
	hub *Hub
}

// New returns a store for db. Live queries are refreshed by writes through
// any store created with the same hub.
func New[T Record](db *gorm.DB, hub *Hub) *Store[T] {
	return &Store[T]{
		db:  db,
		hub: hub,
	}
}

// Upsert creates the record or, if a record with the same ID exists,
// replaces all of its fields.
func (s *Store[T]) Upsert(ctx context.Context, record *T) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Omit(clause.Associations).
		Create(record).Error
	if err != nil {
		return err
	}

	s.hub.Notify()
	return nil
}

// UpdateIf sets values on the record with the ID, but only if its columns
// still hold expected. It never creates a record and reports whether one
// was updated. Model hooks are not run since only the given columns change.
func (s *Store[T]) UpdateIf(ctx context.Context, id uuid.UUID, expected, values map[string]any) (bool, error) {
	set := maps.Clone(values)
	if set == nil {
		set = make(map[string]any, 1)
	}
	set["updated_at"] = s.db.NowFunc()

	var record T
	result := s.db.WithContext(ctx).
		Session(&gorm.Session{SkipHooks: true}).
		Model(&record).
		Where("id = ?", id).
		Where(expected).
		Updates(set)
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	s.hub.Notify()
	return true, nil
}

// DeleteByID deletes the record. It returns models.ErrResourceNotFound if
// there is no record with the ID.
func (s *Store[T]) DeleteByID(ctx context.Context, id uuid.UUID) error {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Delete(&record).Error
	if err != nil {
		return err
	}

	s.hub.Notify()
	return nil
}

// GetByID returns the record with the ID or models.ErrResourceNotFound.
func (s *Store[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	var record T
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		return record, err
	}

	return record, nil
}

// All returns all records in storage order. conds are passed on to gorm's
// Find, e.g. models.Consumption{SpendingPlanID: id}.
func (s *Store[T]) All(ctx context.Context, conds ...any) ([]T, error) {
	records := make([]T, 0)
	err := s.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&records, conds...).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ObserveAll returns a channel that receives the full collection: first the
// current state, then again after every write through a store sharing the
// hub.
//
// A slow receiver only gets the newest collection, intermediate ones are
// dropped. The channel is closed when ctx is done.
func (s *Store[T]) ObserveAll(ctx context.Context) (<-chan []T, error) {
	// Subscribe first so that no write between the initial read and the
	// subscription goes unnoticed
	wake := s.hub.subscribe()

	current, err := s.All(ctx)
	if err != nil {
		s.hub.unsubscribe(wake)
		return nil, fmt.Errorf("reading initial state: %w", err)
	}

	out := make(chan []T)

	go func() {
		defer close(out)
		defer s.hub.unsubscribe(wake)

		pending := true
		for {
			// A nil channel blocks, so nothing is sent until there is a new collection
			var send chan<- []T
			if pending {
				send = out
			}

			select {
			case <-ctx.Done():
				return

			case send <- current:
				pending = false

			case <-wake:
				records, err := s.All(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}

					var zero T
					log.Error().Str("resource", zero.Self()).Err(err).Msg("live query")
					continue
				}

				current = records
				pending = true
			}
		}
	}()

	return out, nil
}
