// Package storage 定义键值快照存储的统一接口。
//
// 存储模型非常简单：每个键对应一个完整集合的序列化快照，写入总是
// 整体替换，没有事务也没有并发控制，仅适用于单进程单写者场景。
package storage

import "errors"

// 客户端使用的三个固定存储键。
const (
	KeyMessages = "messages"
	KeyUsers    = "users"
	KeySession  = "session"
)

// Keys 返回全部固定存储键。
func Keys() []string {
	return []string{KeyMessages, KeyUsers, KeySession}
}

var (
	// ErrClosed 存储已关闭
	ErrClosed = errors.New("storage closed")
	// ErrInvalidKey 非法的存储键
	ErrInvalidKey = errors.New("invalid storage key")
)

// Store 定义快照存储操作。
//
// Load 在键不存在时返回 ok=false 而不是错误；Save 整体覆盖键下内容。
type Store interface {
	Load(key string) (data []byte, ok bool, err error)
	Save(key string, data []byte) error
	Delete(key string) error

	Close() error
	Health() error
}
