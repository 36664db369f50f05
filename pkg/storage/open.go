package storage

import (
	"fmt"

	"go.uber.org/zap"

	"go-ferre-inventory/pkg/database"
)

// Options selects a backend. Only the fields of the chosen driver are read.
type Options struct {
	Driver string // file, memory, postgres or redis
	Path   string
	DB     database.Config

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open builds the store named by opts.Driver.
func Open(opts Options, l *zap.Logger) (Store, error) {
	switch opts.Driver {
	case "file":
		return NewFileStore(opts.Path)
	case "memory":
		return NewMemoryStore(), nil
	case "postgres":
		db, err := database.ConnectDB(opts.DB, l)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db)
	case "redis":
		return NewRedisStore(opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
	}
	return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
}
