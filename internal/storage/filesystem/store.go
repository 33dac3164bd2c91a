// Package filesystem 提供基于本地文件的快照存储实现。
//
// 每个键对应基础目录下的一个 .json 文件，整文件读写，扮演浏览器
// localStorage 的角色。
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"webmail/client/internal/storage"
)

// Store 文件系统快照存储。
type Store struct {
	basePath string // 快照文件根目录
}

// NewStore 创建文件系统存储实例，基础目录不存在时自动创建。
func NewStore(basePath string) (*Store, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("base path is required")
	}

	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base path: %w", err)
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}

	return &Store{basePath: abs}, nil
}

// Load 读取键对应的快照文件，文件不存在时返回 ok=false。
func (s *Store) Load(key string) ([]byte, bool, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return data, true, nil
}

// Save 整体覆盖键对应的快照文件。
//
// 先写临时文件再重命名，避免写入中断留下半截快照。
func (s *Store) Save(key string, data []byte) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit snapshot %s: %w", key, err)
	}
	return nil
}

// Delete 删除键对应的快照文件，文件不存在时静默成功。
func (s *Store) Delete(key string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}

// Close 关闭存储。文件存储没有需要释放的句柄。
func (s *Store) Close() error {
	return nil
}

// Health 检查基础目录是否仍然可用。
func (s *Store) Health() error {
	info, err := os.Stat(s.basePath)
	if err != nil {
		return fmt.Errorf("stat base directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("base path is not a directory: %s", s.basePath)
	}
	return nil
}

// keyPath 计算键对应的文件路径，拒绝会逃出基础目录的键名。
func (s *Store) keyPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", storage.ErrInvalidKey
	}
	return filepath.Join(s.basePath, key+".json"), nil
}
