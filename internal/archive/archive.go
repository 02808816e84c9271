// Package archive provides a best-effort sqlite sink for relayed
// messages. The relay never reads it on the hot path; history served to
// clients stays in memory. It exists so operators can inspect traffic
// after the fact, not as a durability guarantee.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/linguachat/linguachat-server/internal/core"
)

// Store is a sqlite-backed message archive.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id          TEXT PRIMARY KEY,
	room        TEXT NOT NULL,
	from_user   TEXT NOT NULL,
	to_user     TEXT NOT NULL,
	content     TEXT NOT NULL,
	class       TEXT NOT NULL,
	original    TEXT,
	source_lang TEXT,
	target_lang TEXT,
	created_at  DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_room ON messages(room, created_at);
`

// Open creates or opens the archive database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts one relayed message.
func (s *Store) Record(ctx context.Context, msg core.Message) error {
	var original, sourceLang, targetLang *string
	if msg.Translation != nil {
		original = &msg.Translation.Original
		sourceLang = &msg.Translation.SourceLang
		targetLang = &msg.Translation.TargetLang
	}

	query := `
		INSERT OR IGNORE INTO messages
			(id, room, from_user, to_user, content, class, original, source_lang, target_lang, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		msg.ID, msg.Room, msg.From, msg.To, msg.Content, string(msg.Class),
		original, sourceLang, targetLang, msg.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// RoomMessages returns archived messages for a room in send order.
func (s *Store) RoomMessages(ctx context.Context, roomID string) ([]core.Message, error) {
	query := `
		SELECT id, room, from_user, to_user, content, class, original, source_lang, target_lang, created_at
		FROM messages
		WHERE room = ?
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []core.Message
	for rows.Next() {
		var msg core.Message
		var class string
		var original, sourceLang, targetLang sql.NullString
		var createdAt time.Time
		if err := rows.Scan(&msg.ID, &msg.Room, &msg.From, &msg.To, &msg.Content, &class,
			&original, &sourceLang, &targetLang, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg.Class = core.MessageClass(class)
		msg.CreatedAt = createdAt
		if original.Valid {
			msg.Translation = &core.Translation{
				Original:   original.String,
				SourceLang: sourceLang.String,
				TargetLang: targetLang.String,
			}
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
