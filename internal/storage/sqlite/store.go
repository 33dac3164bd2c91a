// Package sqlite 提供基于 SQLite 的快照存储实现。
//
// 数据库中只有一张 blobs 表，键到快照的映射与其它后端完全一致，
// SQLite 只负责落盘，不参与任何查询逻辑。
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"webmail/client/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS blobs (
    key   TEXT PRIMARY KEY,
    value BLOB NOT NULL
);`

// Store SQLite 快照存储。
type Store struct {
	db *sql.DB
}

// Open 打开（必要时创建）指定路径的数据库，path 为空时使用内存库。
func Open(path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	inMemory := trimmed == "" || trimmed == ":memory:"
	if inMemory {
		trimmed = ":memory:"
	}

	db, err := sql.Open("sqlite", trimmed)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// modernc 驱动不支持并发写，收紧连接池
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if !inMemory {
		if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Load 读取键对应的快照，行不存在时返回 ok=false。
func (s *Store) Load(key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, storage.ErrInvalidKey
	}

	var data []byte
	err := s.db.QueryRow("SELECT value FROM blobs WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return data, true, nil
}

// Save 整体覆盖键对应的快照。
func (s *Store) Save(key string, data []byte) error {
	if key == "" {
		return storage.ErrInvalidKey
	}

	_, err := s.db.Exec(
		"INSERT INTO blobs (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, data,
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

// Delete 删除指定键，行不存在时静默成功。
func (s *Store) Delete(key string) error {
	if key == "" {
		return storage.ErrInvalidKey
	}

	if _, err := s.db.Exec("DELETE FROM blobs WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}

// Close 关闭数据库连接。
func (s *Store) Close() error {
	return s.db.Close()
}

// Health 检查数据库连接是否可用。
func (s *Store) Health() error {
	return s.db.Ping()
}
