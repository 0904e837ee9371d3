package store

import (
	"context"
	"fmt"

	"product_catalog/domain"
)

// NewStore constructs a domain.ProductStore by kind: "memory", "file",
// "sqlite", "postgres" or "redis". dsn is the file path for file and sqlite,
// the connection string for postgres and the address for redis; it is
// ignored for memory.
func NewStore(ctx context.Context, kind, dsn string) (domain.ProductStore, error) {
	switch kind {
	case "memory", "mem":
		return NewInMemoryStore(), nil
	case "file":
		if dsn == "" {
			return nil, fmt.Errorf("file path required for file store")
		}
		return open(NewFileStore(dsn))
	case "sqlite":
		if dsn == "" {
			return nil, fmt.Errorf("database path required for sqlite store")
		}
		return open(OpenSQLiteStore(dsn))
	case "postgres", "pg":
		if dsn == "" {
			return nil, fmt.Errorf("connection string required for postgres store")
		}
		return open(OpenPostgresStore(ctx, dsn))
	case "redis":
		if dsn == "" {
			return nil, fmt.Errorf("address required for redis store")
		}
		return open(OpenRedisStore(ctx, dsn))
	default:
		return nil, fmt.Errorf("unknown store kind: %s", kind)
	}
}

// open keeps a failed constructor from leaking a typed nil into the interface.
func open(s domain.ProductStore, err error) (domain.ProductStore, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
