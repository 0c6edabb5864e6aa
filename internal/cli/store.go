package cli

import (
	"fmt"

	"petdiary/internal/adapter/memory"
	"petdiary/internal/adapter/postgres"
	"petdiary/internal/adapter/sqlite"
	"petdiary/internal/config"
	"petdiary/internal/domain"
)

// Store is a record store backing all three collections.
type Store interface {
	domain.EventRepository
	domain.NoteRepository
	domain.WeightRepository
}

// OpenStore opens the store selected by cfg. The returned close function is
// never nil.
func OpenStore(cfg config.StoreConfig) (Store, func() error, error) {
	switch cfg.Type {
	case config.StorePostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		return db, db.Close, nil
	case config.StoreSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		return s, s.Close, nil
	case config.StoreMemory:
		return memory.New(), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown store type %q", cfg.Type)
}
