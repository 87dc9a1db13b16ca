package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type stateRow struct {
	Key       string `gorm:"column:key;primaryKey;size:128"`
	Value     string `gorm:"column:value"`
	UpdatedAt time.Time
}

func (stateRow) TableName() string {
	return "client_state"
}

// Gorm persists state rows through GORM. The sqlite driver covers the
// single-machine case, postgres a shared kiosk deployment.
type Gorm struct {
	db *gorm.DB
}

func OpenSQLite(path string) (*Gorm, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite state path required")
	}
	return newGorm(sqlite.Open(path))
}

func OpenPostgres(dsn string) (*Gorm, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres state dsn required")
	}
	return newGorm(postgres.Open(dsn))
}

func newGorm(dialector gorm.Dialector) (*Gorm, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}
	if err := db.AutoMigrate(&stateRow{}); err != nil {
		return nil, fmt.Errorf("migrating state table: %w", err)
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Get(ctx context.Context, key string) (string, bool, error) {
	var row stateRow
	err := g.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading state key %q: %w", key, err)
	}
	return row.Value, true, nil
}

func (g *Gorm) Set(ctx context.Context, key, value string) error {
	row := stateRow{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("writing state key %q: %w", key, err)
	}
	return nil
}

func (g *Gorm) Delete(ctx context.Context, key string) error {
	if err := g.db.WithContext(ctx).Delete(&stateRow{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("deleting state key %q: %w", key, err)
	}
	return nil
}

func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
