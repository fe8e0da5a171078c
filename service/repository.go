package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"nooralanwar/invoicing/config"
	"nooralanwar/invoicing/store"
	"nooralanwar/invoicing/store/file"
	"nooralanwar/invoicing/store/memory"
	redisstore "nooralanwar/invoicing/store/redis"
)

// OpenRepository picks a backend from the configuration: redis when an
// address is set and reachable, else the JSON data file when a path is set,
// else in-memory only. The returned closer releases backend resources.
func OpenRepository(ctx context.Context, cfg config.Config, log *logrus.Logger) (store.Repository, func() error, error) {
	noop := func() error { return nil }

	if cfg.RedisAddr != "" {
		rs := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, noop, fmt.Errorf("redis unavailable at %s: %w", cfg.RedisAddr, err)
		}
		log.Info("repository: redis")
		return rs, rs.Close, nil
	}

	if cfg.DataFile != "" {
		fs, err := file.Open(cfg.DataFile)
		if err != nil {
			return nil, noop, err
		}
		log.WithField("path", cfg.DataFile).Info("repository: file")
		return fs, noop, nil
	}

	log.Info("repository: in-memory")
	return memory.New(), noop, nil
}
