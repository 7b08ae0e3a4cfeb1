package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"swapers-hq/lpmon/pkg/provider"
)

// PostgresConfig configures PostgresStore.
type PostgresConfig struct {
	// DSN is a libpq connection string or URL.
	DSN string

	// MaxOpenConns caps the connection pool. Default: 10
	MaxOpenConns int

	// AutoMigrate creates or updates the providers table on open.
	AutoMigrate bool
}

// providerModel is the gorm row for a provider.
type providerModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	Name        string `gorm:"size:128;not null"`
	Kind        string `gorm:"size:16;not null;index"`
	CanReceive  bool   `gorm:"not null"`
	CanSend     bool   `gorm:"not null"`
	HomeVisible bool   `gorm:"not null"`
	IsAvailable bool   `gorm:"not null"`
	UpdatedAt   time.Time
}

func (providerModel) TableName() string {
	return "liquidity_providers"
}

func toModel(rec provider.Record) providerModel {
	return providerModel{
		ID:          rec.ID,
		Name:        rec.Name,
		Kind:        string(rec.Kind),
		CanReceive:  rec.CanReceive,
		CanSend:     rec.CanSend,
		HomeVisible: rec.HomeVisible,
		IsAvailable: rec.IsAvailable,
	}
}

func (m providerModel) record() provider.Record {
	return provider.Record{
		ID:          m.ID,
		Name:        m.Name,
		Kind:        provider.Kind(m.Kind),
		CanReceive:  m.CanReceive,
		CanSend:     m.CanSend,
		HomeVisible: m.HomeVisible,
		IsAvailable: m.IsAvailable,
	}
}

// PostgresStore implements Store with gorm on PostgreSQL.
type PostgresStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewPostgresStore connects to PostgreSQL.
func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	if cfg.DSN == "" {
		return nil, NewStorageError("postgres", "open", errors.New("dsn cannot be empty"))
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, NewStorageError("postgres", "open", err)
	}
	return newPostgresStore(db, cfg)
}

// NewPostgresStoreFromDB wraps an existing gorm handle.
func NewPostgresStoreFromDB(db *gorm.DB, cfg PostgresConfig) (*PostgresStore, error) {
	return newPostgresStore(db, cfg)
}

func newPostgresStore(db *gorm.DB, cfg PostgresConfig) (*PostgresStore, error) {
	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = 10
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, NewStorageError("postgres", "open", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&providerModel{}); err != nil {
			return nil, NewStorageError("postgres", "migrate", err)
		}
	}

	s := &PostgresStore{db: db, logger: slog.Default().With("component", "storage.postgres")}
	s.logger.Info("PostgreSQL provider store initialized", "auto_migrate", cfg.AutoMigrate)
	return s, nil
}

func (s *PostgresStore) ListProviders(ctx context.Context) ([]provider.Record, error) {
	var rows []providerModel
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, NewStorageError("postgres", "list", err)
	}
	out := make([]provider.Record, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.record())
	}
	return out, nil
}

func (s *PostgresStore) GetProvider(ctx context.Context, id string) (provider.Record, error) {
	var m providerModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return provider.Record{}, ErrNotFound
	}
	if err != nil {
		return provider.Record{}, NewStorageError("postgres", "get", err)
	}
	return m.record(), nil
}

func (s *PostgresStore) PutProvider(ctx context.Context, rec provider.Record) error {
	m := toModel(rec)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&m).Error
	if err != nil {
		return NewStorageError("postgres", "put", err)
	}
	return nil
}

func (s *PostgresStore) EnsureProvider(ctx context.Context, rec provider.Record) (bool, error) {
	m := toModel(rec)
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
	if res.Error != nil {
		return false, NewStorageError("postgres", "ensure", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *PostgresStore) SetAvailability(ctx context.Context, id string, available bool) error {
	res := s.db.WithContext(ctx).Model(&providerModel{}).Where("id = ?", id).Update("is_available", available)
	if res.Error != nil {
		return NewStorageError("postgres", "set_availability", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
