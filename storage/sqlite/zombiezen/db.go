package zombiezen

import (
	"context"
	"embed"
	"fmt"
	"path"
	"runtime"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// Open opens the database at dbPath, creating it if missing, and runs the
// embedded schema scripts (e.g. "annotations.sql"). Connections use WAL,
// the sqlitex default.
func Open(dbPath string, scripts ...string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool(fmt.Sprintf("file:%s", dbPath), sqlitex.PoolOptions{
		PoolSize:    runtime.NumCPU(),
		PrepareConn: prepareConn,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite pool at %s: %w", dbPath, err)
	}

	for _, name := range scripts {
		if err := runScript(pool, name); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return pool, nil
}

// prepareConn runs on every new connection of the pool.
func prepareConn(conn *sqlite.Conn) error {
	return sqlitex.ExecuteTransient(conn, "PRAGMA synchronous = NORMAL;", nil)
}

func runScript(pool *sqlitex.Pool, name string) error {
	scriptPath := path.Join("sql", name)

	script, err := sqlFiles.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read embedded sql file %s: %w", scriptPath, err)
	}

	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
		return fmt.Errorf("failed to execute script %s: %w", name, err)
	}
	return nil
}
