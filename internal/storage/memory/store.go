// Package memory 提供基于内存的快照存储实现，主要用于测试与一次性会话。
package memory

import (
	"sync"

	"webmail/client/internal/storage"
)

// Store 把每个键的快照保存在内存 map 中，进程退出即丢失。
type Store struct {
	mu     sync.RWMutex
	blobs  map[string][]byte
	closed bool
}

// NewStore 创建一个内存存储实例。
func NewStore() *Store {
	return &Store{
		blobs: make(map[string][]byte),
	}
}

// Load 读取指定键的快照，不存在时返回 ok=false。
func (s *Store) Load(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, false, storage.ErrClosed
	}

	data, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}

	// 返回副本，避免调用方修改内部状态
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

// Save 整体覆盖指定键的快照。
func (s *Store) Save(key string, data []byte) error {
	if key == "" {
		return storage.ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrClosed
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	s.blobs[key] = stored
	return nil
}

// Delete 删除指定键，键不存在时静默成功。
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrClosed
	}

	delete(s.blobs, key)
	return nil
}

// Close 关闭存储，之后的读写返回 ErrClosed。
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.blobs = nil
	return nil
}

// Health 检查存储是否可用。
func (s *Store) Health() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return storage.ErrClosed
	}
	return nil
}
