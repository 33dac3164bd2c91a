package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"webmail/client/internal/auth"
	"webmail/client/internal/config"
	"webmail/client/internal/health"
	"webmail/client/internal/logger"
	"webmail/client/internal/mailapi"
	"webmail/client/internal/mailbox"
	"webmail/client/internal/seed"
	"webmail/client/internal/session"
	"webmail/client/internal/storage"
	"webmail/client/internal/storage/filesystem"
	"webmail/client/internal/storage/memory"
	"webmail/client/internal/storage/sqlite"
	"webmail/client/internal/ui/app"
)

// main 是终端邮件客户端的程序入口。
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 初始化日志系统。未配置日志文件时丢弃日志：
	// 终端界面占用标准输出，日志只能落盘。
	log := zap.NewNop()
	if cfg.Log.File != "" {
		log, err = logger.New(logger.Config{
			Level:       cfg.Log.Level,
			Development: cfg.Log.Development,
			File:        cfg.Log.File,
		})
		if err != nil {
			panic(fmt.Sprintf("failed to initialize logger: %v", err))
		}
	}
	defer log.Sync()

	log.Info("starting webmail client",
		zap.String("storage_backend", cfg.Storage.Backend),
		zap.Duration("latency", cfg.API.Latency),
	)

	store, err := openStore(cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to open storage: %v", err))
	}
	defer store.Close()

	if err := health.NewChecker(store, log).Check(); err != nil {
		panic(fmt.Sprintf("storage not usable: %v", err))
	}

	tokens := auth.NewTokenManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.Expiry)
	api := mailapi.NewClient(store, tokens, log, cfg.API.Latency)

	if err := bootstrap(api); err != nil {
		panic(fmt.Sprintf("failed to seed demo data: %v", err))
	}

	sess := session.New(api)
	state := mailbox.New(api, log, cfg.API.PageSize)

	program := tea.NewProgram(
		app.New(sess, state, api, log),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		log.Error("program exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "webmail: %v\n", err)
		os.Exit(1)
	}
}

// openStore 按配置的后端打开持久化存储。
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return memory.NewStore(), nil
	case "sqlite":
		path := cfg.Storage.Path
		if path != "" && filepath.Ext(path) == "" {
			// 配置给的是目录时，库文件放在目录下
			if err := os.MkdirAll(path, 0755); err != nil {
				return nil, err
			}
			path = filepath.Join(path, "webmail.db")
		}
		return sqlite.Open(path)
	default:
		return filesystem.NewStore(cfg.Storage.Path)
	}
}

// bootstrap 首次启动时写入演示账号与邮件，已有数据时保持不动。
func bootstrap(api *mailapi.Client) error {
	users, err := seed.Users()
	if err != nil {
		return err
	}
	return api.Bootstrap(users, seed.Messages(users))
}
