package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jask/inventory/internal/config"
	"github.com/jask/inventory/internal/database"
	"github.com/jask/inventory/internal/database/repository"
	"github.com/jask/inventory/internal/inventory"
	"github.com/jask/inventory/internal/notify"
	"github.com/jask/inventory/internal/secrets"
)

// app is the wiring shared by every command that touches the store.
type app struct {
	cfg    config.Config
	db     *sql.DB
	hub    *notify.Hub
	store  *repository.ItemRepo
	items  *inventory.OfflineItemsRepository
	bridge *notify.RedisBridge
	cancel context.CancelFunc
	done   chan struct{}
}

// openApp migrates and opens the database. With listen set, invalidations
// published by other processes are delivered into the hub as well.
func openApp(ctx context.Context, cfg config.Config, listen bool) (*app, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Driver, cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Driver, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	hub := notify.NewHub()
	store := repository.NewItemRepo(db)
	a := &app{
		cfg:   cfg,
		db:    db,
		hub:   hub,
		store: store,
		items: inventory.NewOfflineItemsRepository(store, hub),
	}
	if cfg.Notify.Enabled() {
		a.startBridge(ctx, listen)
	}
	return a, nil
}

func (a *app) startBridge(ctx context.Context, listen bool) {
	n := a.cfg.Notify
	bridge, err := notify.NewRedisBridge(&redis.Options{
		Addr:     n.RedisAddr,
		Password: resolveRedisPassword(n),
		DB:       n.RedisDB,
	}, n.Channel, a.hub)
	if err != nil {
		log.Printf("warn: notifications disabled: %v", err)
		return
	}
	a.bridge = bridge

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := bridge.Connect(pingCtx); err != nil {
		log.Printf("warn: redis at %s unreachable, other processes will not see changes: %v", n.RedisAddr, err)
		return
	}
	if !listen {
		return
	}

	runCtx, stop := context.WithCancel(ctx)
	a.cancel = stop
	a.done = make(chan struct{})
	ready := make(chan struct{})
	go func() {
		defer close(a.done)
		if err := bridge.Run(runCtx, ready); err != nil && runCtx.Err() == nil {
			log.Printf("notify: %v", err)
		}
	}()
	select {
	case <-ready:
	case <-a.done:
	case <-time.After(2 * time.Second):
		log.Printf("warn: redis subscription not confirmed yet")
	}
}

// resolveRedisPassword prefers the config value, then the secret store.
func resolveRedisPassword(n config.NotifyConfig) string {
	if p := strings.TrimSpace(n.RedisPassword); p != "" {
		return p
	}
	store, err := secrets.DefaultStore()
	if err != nil {
		return ""
	}
	p, ok, err := store.Get(secrets.RedisPassword)
	if err != nil {
		log.Printf("warn: read redis password: %v", err)
	}
	if !ok {
		return ""
	}
	return p
}

func (a *app) Close() error {
	if a.cancel != nil {
		a.cancel()
		<-a.done
	}
	if a.bridge != nil {
		_ = a.bridge.Close()
	}
	return a.db.Close()
}

// withApp opens the app for the duration of fn.
func (c *cli) withApp(ctx context.Context, listen bool, fn func(a *app) error) error {
	a, err := openApp(ctx, c.cfg, listen)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
