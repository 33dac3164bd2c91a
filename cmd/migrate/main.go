package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"webmail/client/internal/health"
	"webmail/client/internal/storage"
	"webmail/client/internal/storage/filesystem"
	"webmail/client/internal/storage/memory"
	"webmail/client/internal/storage/sqlite"
)

// main 在两个存储后端之间搬运全部快照键，用于切换后端时迁移数据。
func main() {
	fromBackend := flag.String("from", "", "source backend: memory, filesystem or sqlite")
	fromPath := flag.String("from-path", "", "source data directory or database file")
	toBackend := flag.String("to", "", "target backend: memory, filesystem or sqlite")
	toPath := flag.String("to-path", "", "target data directory or database file")
	flag.Parse()

	if *fromBackend == "" || *toBackend == "" {
		fmt.Println("usage:")
		fmt.Println("  migrate -from=filesystem -from-path=./data -to=sqlite -to-path=./webmail.db")
		os.Exit(1)
	}

	src, err := openStore(*fromBackend, *fromPath)
	if err != nil {
		fatalf("cannot open source store: %v", err)
	}
	defer src.Close()

	dst, err := openStore(*toBackend, *toPath)
	if err != nil {
		fatalf("cannot open target store: %v", err)
	}
	defer dst.Close()

	checker := health.NewChecker(src, zap.NewNop())
	if err := checker.Check(); err != nil {
		fatalf("source store unhealthy: %v", err)
	}

	copied := 0
	for _, key := range storage.Keys() {
		data, ok, err := src.Load(key)
		if err != nil {
			fatalf("cannot read key %q: %v", key, err)
		}
		if !ok {
			fmt.Printf("  skip %-10s (empty)\n", key)
			continue
		}
		if err := dst.Save(key, data); err != nil {
			fatalf("cannot write key %q: %v", key, err)
		}
		fmt.Printf("  copy %-10s %d bytes\n", key, len(data))
		copied++
	}

	fmt.Printf("migrated %d key(s) from %s to %s\n", copied, *fromBackend, *toBackend)

	report := health.NewChecker(dst, zap.NewNop()).Report()
	keys := make([]string, 0, len(report))
	for k := range report {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-10s %s\n", k, report[k])
	}
}

// openStore 按后端名打开存储。sqlite 给目录路径时库文件落在目录下。
func openStore(backend, path string) (storage.Store, error) {
	switch backend {
	case "memory":
		return memory.NewStore(), nil
	case "filesystem":
		if path == "" {
			return nil, fmt.Errorf("filesystem backend requires a data directory")
		}
		return filesystem.NewStore(path)
	case "sqlite":
		if path != "" && filepath.Ext(path) == "" {
			if err := os.MkdirAll(path, 0755); err != nil {
				return nil, err
			}
			path = filepath.Join(path, "webmail.db")
		}
		return sqlite.Open(path)
	default:
		return nil, fmt.Errorf("unknown backend %q: must be memory, filesystem or sqlite", backend)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "migrate: "+format+"\n", args...)
	os.Exit(1)
}
