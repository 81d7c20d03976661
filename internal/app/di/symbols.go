package di

import (
	"gorm.io/gorm"

	"dashboard_backend/internal/feature/symbollist/adapters"
	"dashboard_backend/internal/feature/symbollist/usecase"
	"dashboard_backend/internal/platform/config"
	"dashboard_backend/internal/platform/db"
)

// NewSymbolRepository returns the gorm catalog when a database is open,
// or an always-empty catalog otherwise.
func NewSymbolRepository(gdb *gorm.DB) usecase.SymbolRepository {
	if gdb != nil {
		return adapters.NewSymbolRepository(gdb)
	}
	return adapters.NewEmptySymbolRepository()
}

// DBConfig maps the application config onto the db package's settings.
func DBConfig(cfg *config.Config) db.Config {
	return db.Config{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
	}
}
