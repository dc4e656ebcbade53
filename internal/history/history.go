// Package history persists chat snapshots in a SQLite database under the
// user config directory. Snapshots store the chat's native JSON so the
// on-disk shape matches what save/open produce.
package history

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"time"

	"vesper/internal/config"
	"vesper/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

type Snapshot struct {
	ID            string
	Name          string
	UpdatedAtUnix int64
	MessageCount  int
}

// Open opens (and if needed creates) the snapshot database.
func Open() (*sql.DB, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return OpenAt(filepath.Join(dir, "vesper.db"))
}

// OpenAt opens the snapshot database at an explicit path.
func OpenAt(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			updated_at INTEGER NOT NULL,
			message_count INTEGER NOT NULL,
			data TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_updated_at ON snapshots(updated_at DESC);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// SaveSnapshot upserts a chat under the given snapshot ID. Pass an empty
// ID to create a new snapshot; the assigned ID is returned.
func SaveSnapshot(db *sql.DB, id string, chat *models.Chat) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	data, err := json.Marshal(chat)
	if err != nil {
		return "", errors.Wrap(err, "encode chat")
	}

	_, err = db.Exec(
		`INSERT INTO snapshots(id, name, updated_at, message_count, data) VALUES(?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at,
		 message_count = excluded.message_count, data = excluded.data`,
		id,
		chat.Name,
		time.Now().Unix(),
		len(chat.Messages),
		string(data),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListRecent returns snapshot metadata newest-first, plus the total count.
func ListRecent(db *sql.DB, limit, offset int) (int, []Snapshot, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		return 0, nil, err
	}

	rows, err := db.Query(
		"SELECT id, name, updated_at, message_count FROM snapshots ORDER BY updated_at DESC LIMIT ? OFFSET ?",
		limit,
		offset,
	)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	items := make([]Snapshot, 0, limit)
	for rows.Next() {
		var it Snapshot
		if err := rows.Scan(&it.ID, &it.Name, &it.UpdatedAtUnix, &it.MessageCount); err != nil {
			return 0, nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}
	return count, items, nil
}

// LoadSnapshot decodes the stored chat and restores its composition slot.
func LoadSnapshot(db *sql.DB, id string) (*models.Chat, error) {
	var data string
	if err := db.QueryRow("SELECT data FROM snapshots WHERE id = ?", id).Scan(&data); err != nil {
		return nil, err
	}

	var chat models.Chat
	if err := json.Unmarshal([]byte(data), &chat); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	chat.RebindCurrent()
	return &chat, nil
}

// DeleteSnapshot removes a stored chat.
func DeleteSnapshot(db *sql.DB, id string) error {
	_, err := db.Exec("DELETE FROM snapshots WHERE id = ?", id)
	return err
}
