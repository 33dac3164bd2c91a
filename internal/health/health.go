// Package health 持久化存储的健康探测。
package health

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"webmail/client/internal/storage"
)

// Checker 存储健康检查器。
type Checker struct {
	store  storage.Store
	logger *zap.Logger
}

// NewChecker 创建健康检查器。
func NewChecker(store storage.Store, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		store:  store,
		logger: logger,
	}
}

// Check 探测存储是否可用，失败时记录日志并返回错误。
func (c *Checker) Check() error {
	if err := c.store.Health(); err != nil {
		c.logger.Error("storage health check failed", zap.Error(err))
		return fmt.Errorf("storage unavailable: %w", err)
	}
	return nil
}

// Report 逐键汇总存储状态，供命令行工具打印。
func (c *Checker) Report() map[string]string {
	results := make(map[string]string)

	if err := c.store.Health(); err != nil {
		results["store"] = fmt.Sprintf("ERROR: %v", err)
	} else {
		results["store"] = "OK"
	}

	for _, key := range storage.Keys() {
		_, ok, err := c.store.Load(key)
		switch {
		case err != nil:
			results[key] = fmt.Sprintf("ERROR: %v", err)
		case !ok:
			results[key] = "EMPTY"
		default:
			results[key] = "OK"
		}
	}

	results["timestamp"] = time.Now().Format(time.RFC3339)
	return results
}
