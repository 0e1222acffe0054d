// Package gormstore persists recipes in a SQL database through GORM. It is
// the request/response backend: every mutation is followed by an explicit
// re-list on the caller's side.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recipebox/internal/model"
	"recipebox/internal/store"
)

// Store is a SQL-backed recipe store.
type Store struct {
	db *gorm.DB
}

// Open connects with the given driver ("postgres" or "sqlite") and migrates
// the recipes table.
func Open(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, &store.ConnectivityError{Op: "open database", Err: err}
	}
	return New(db)
}

// New wraps an existing GORM connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&model.Recipe{}); err != nil {
		return nil, &store.ConnectivityError{Op: "migrate recipes table", Err: err}
	}
	return &Store{db: db}, nil
}

func (s *Store) List(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id").
		Find(&recipes).Error
	if err != nil {
		return nil, &store.ConnectivityError{Op: "list recipes", Err: err}
	}
	return recipes, nil
}

func (s *Store) Create(ctx context.Context, draft model.Draft) (model.Recipe, error) {
	var recipe model.Recipe
	draft.Apply(&recipe)
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return model.Recipe{}, &store.ConnectivityError{Op: "create recipe", Err: err}
	}
	return recipe, nil
}

func (s *Store) Update(ctx context.Context, id string, draft model.Draft) (model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Recipe{}, store.ErrNotFound
		}
		return model.Recipe{}, &store.ConnectivityError{Op: "load recipe", Err: err}
	}

	// Save writes every column, so a cleared summary or category actually
	// clears. CreatedAt is carried over from the loaded row untouched.
	draft.Apply(&recipe)
	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return model.Recipe{}, &store.ConnectivityError{Op: "update recipe", Err: err}
	}
	return recipe, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return &store.ConnectivityError{Op: "delete recipe", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
