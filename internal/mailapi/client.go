// Package mailapi 实现邮件客户端的数据访问层。
//
// 所有读写都经由注入的快照存储完成：整集合加载、过滤、整集合回写，
// 没有索引，线性扫描在演示规模的数据量下足够。每次调用前模拟一段
// 固定的网络往返延迟，延迟为 0 时关闭（测试场景）。
package mailapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"webmail/client/internal/auth"
	"webmail/client/internal/domain"
	"webmail/client/internal/storage"
)

// 快照存储键。session 键保存签名后的会话令牌，其余两个键各保存一个
// 完整集合的 JSON 快照。
const (
	keyMessages = storage.KeyMessages
	keyUsers    = storage.KeyUsers
	keySession  = storage.KeySession
)

var (
	// ErrInvalidCredentials 邮箱或密码不匹配
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailExists 注册邮箱已被占用
	ErrEmailExists = errors.New("email already exists")
	// ErrNotAuthenticated 操作要求已登录用户
	ErrNotAuthenticated = errors.New("user not authenticated")
	// ErrInvalidFolder 文件夹取值非法
	ErrInvalidFolder = errors.New("invalid folder")
)

// Client 数据访问层客户端，独占持有快照存储。
type Client struct {
	store   storage.Store
	tokens  *auth.TokenManager
	logger  *zap.Logger
	latency time.Duration
}

// NewClient 创建数据访问层客户端。
func NewClient(store storage.Store, tokens *auth.TokenManager, logger *zap.Logger, latency time.Duration) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		store:   store,
		tokens:  tokens,
		logger:  logger,
		latency: latency,
	}
}

// Bootstrap 在存储为空时写入演示数据，对应原始应用首次打开时的初始化。
func (c *Client) Bootstrap(users []domain.User, messages []domain.Message) error {
	if _, ok, err := c.store.Load(keyUsers); err != nil {
		return fmt.Errorf("check user snapshot: %w", err)
	} else if !ok {
		if err := c.saveUsers(users); err != nil {
			return err
		}
		c.logger.Info("seeded user collection", zap.Int("count", len(users)))
	}

	if _, ok, err := c.store.Load(keyMessages); err != nil {
		return fmt.Errorf("check message snapshot: %w", err)
	} else if !ok {
		if err := c.saveMessages(messages); err != nil {
			return err
		}
		c.logger.Info("seeded message collection", zap.Int("count", len(messages)))
	}

	return nil
}

// delay 模拟一次普通请求的网络往返。
func (c *Client) delay() { c.sleep(c.latency) }

// delayShort 模拟轻量请求（标记、注销）的往返。
func (c *Client) delayShort() { c.sleep(c.latency / 2) }

// delayLong 模拟重量请求（发信）的往返。
func (c *Client) delayLong() { c.sleep(c.latency * 3 / 2) }

func (c *Client) sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func (c *Client) loadMessages() ([]domain.Message, error) {
	data, ok, err := c.store.Load(keyMessages)
	if err != nil {
		return nil, fmt.Errorf("load message snapshot: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var messages []domain.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("decode message snapshot: %w", err)
	}
	return messages, nil
}

func (c *Client) saveMessages(messages []domain.Message) error {
	if messages == nil {
		messages = []domain.Message{}
	}
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode message snapshot: %w", err)
	}
	if err := c.store.Save(keyMessages, data); err != nil {
		return fmt.Errorf("save message snapshot: %w", err)
	}
	return nil
}

func (c *Client) loadUsers() ([]domain.User, error) {
	data, ok, err := c.store.Load(keyUsers)
	if err != nil {
		return nil, fmt.Errorf("load user snapshot: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode user snapshot: %w", err)
	}
	return users, nil
}

func (c *Client) saveUsers(users []domain.User) error {
	if users == nil {
		users = []domain.User{}
	}
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}
	if err := c.store.Save(keyUsers, data); err != nil {
		return fmt.Errorf("save user snapshot: %w", err)
	}
	return nil
}
