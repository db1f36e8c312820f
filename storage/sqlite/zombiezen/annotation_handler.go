package zombiezen

import (
	"context"
	"fmt"

	"github.com/revelaction/cohmetrix/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type AnnotationHandler struct {
	pool *sqlitex.Pool
}

var _ storage.AnnotationStore = (*AnnotationHandler)(nil)

func NewAnnotationHandler(pool *sqlitex.Pool) *AnnotationHandler {
	return &AnnotationHandler{pool: pool}
}

// OpenAnnotationHandler opens (or creates) the database at dbPath and its
// annotations table.
func OpenAnnotationHandler(dbPath string) (*AnnotationHandler, error) {
	pool, err := Open(dbPath, "annotations.sql")
	if err != nil {
		return nil, err
	}
	return NewAnnotationHandler(pool), nil
}

func (h *AnnotationHandler) Close() error {
	return h.pool.Close()
}

func (h *AnnotationHandler) Read(key storage.Key) ([]byte, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var (
		data  []byte
		found bool
	)
	err = sqlitex.Execute(conn, "SELECT data FROM annotations WHERE version = ? AND kind = ?", &sqlitex.ExecOptions{
		Args: []interface{}{key.Version, key.Kind},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			data = make([]byte, stmt.ColumnLen(0))
			stmt.ColumnBytes(0, data)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation %s/%s: %w", key.Version, key.Kind, err)
	}
	if !found {
		return nil, storage.ErrNotFound
	}

	return data, nil
}

func (h *AnnotationHandler) Write(key storage.Key, data []byte) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "INSERT OR REPLACE INTO annotations (version, kind, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{key.Version, key.Kind, data},
	})
	if err != nil {
		return fmt.Errorf("failed to write annotation %s/%s: %w", key.Version, key.Kind, err)
	}

	return nil
}

func (h *AnnotationHandler) Delete(key storage.Key) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	err = sqlitex.Execute(conn, "DELETE FROM annotations WHERE version = ? AND kind = ?", &sqlitex.ExecOptions{
		Args: []interface{}{key.Version, key.Kind},
	})
	if err != nil {
		return fmt.Errorf("failed to delete annotation %s/%s: %w", key.Version, key.Kind, err)
	}

	return nil
}

// Kinds returns how many annotations of each kind are stored.
func (h *AnnotationHandler) Kinds() (map[string]int, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	counts := map[string]int{}
	err = sqlitex.Execute(conn, "SELECT kind, COUNT(*) FROM annotations GROUP BY kind", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			counts[stmt.ColumnText(0)] = stmt.ColumnInt(1)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return counts, nil
}
