package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"tasty-table/internal/billing"
	"tasty-table/internal/config"
	"tasty-table/internal/events"
	"tasty-table/internal/httpapi"
	"tasty-table/internal/logger"
	"tasty-table/internal/order"
	"tasty-table/internal/registry"
	"tasty-table/internal/seed"
	"tasty-table/internal/storage"
	"tasty-table/internal/storage/memory"
	"tasty-table/internal/storage/postgres"
	"tasty-table/internal/storage/redisstore"
)

func main() {
	mode := flag.String("mode", "", "api | seed | notifier")
	cfgPath := flag.String("config", "config.json", "path to config file")
	port := flag.Int("port", 0, "override http port")
	flag.Parse()

	lg := logger.New("bootstrap")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		lg.Error("config_load_failed", err, nil)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.HTTPPort = *port
	}
	if cfg.LogLevel != "" {
		os.Setenv("LOG_LEVEL", cfg.LogLevel)
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		lg.Error("storage_connect_failed", err, map[string]any{"backend": cfg.StorageBackend})
		os.Exit(1)
	}
	defer closeStore()
	lg.Info("storage_connected", map[string]any{"backend": cfg.StorageBackend})

	switch *mode {
	case "seed":
		if err := seed.Ensure(ctx, store, lg); err != nil {
			lg.Error("seed_failed", err, nil)
			os.Exit(1)
		}
		lg.Info("seed_done", nil)

	case "api":
		var pub events.Publisher
		if cfg.AMQPURL != "" {
			client, err := events.Dial(cfg.AMQPURL)
			if err != nil {
				lg.Error("amqp_connect_failed", err, nil)
				os.Exit(1)
			}
			defer client.Close()
			pub = client
			lg.Info("amqp_connected", nil)
		}
		if err := runAPI(ctx, cfg, store, pub); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}

	case "notifier":
		if cfg.AMQPURL == "" {
			fmt.Fprintln(os.Stderr, "amqp-url is required for notifier mode")
			os.Exit(2)
		}
		client, err := events.Dial(cfg.AMQPURL)
		if err != nil {
			lg.Error("amqp_connect_failed", err, nil)
			os.Exit(1)
		}
		defer client.Close()
		lg.Info("service_started", map[string]any{"service": "notifier"})
		if err := client.RunNotifier(ctx, logger.New("notifier")); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "--mode is required: api | seed | notifier")
		os.Exit(2)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.StorageBackend {
	case "redis":
		st := redisstore.New(cfg.RedisAddr)
		if err := st.Ping(ctx); err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case "postgres":
		st, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	default:
		return memory.New(), func() {}, nil
	}
}

func runAPI(ctx context.Context, cfg *config.Config, store storage.Store, pub events.Publisher) error {
	lg := logger.New("api")

	tables, err := registry.NewTables(ctx, store)
	if err != nil {
		return err
	}
	menu, err := registry.NewMenu(ctx, store)
	if err != nil {
		return err
	}
	customers, err := registry.NewCustomers(ctx, store)
	if err != nil {
		return err
	}
	grocery, err := registry.NewGrocery(ctx, store)
	if err != nil {
		return err
	}
	staff, err := registry.NewStaff(ctx, store)
	if err != nil {
		return err
	}
	restaurant, err := registry.NewRestaurantProfile(ctx, store)
	if err != nil {
		return err
	}
	orders, err := order.NewService(ctx, store, tables, menu, pub)
	if err != nil {
		return err
	}
	bills, err := billing.NewService(ctx, store, orders, tables, pub)
	if err != nil {
		return err
	}

	handler := httpapi.NewHandler(tables, menu, customers, grocery, staff, restaurant, orders, bills)
	srv := httpapi.NewServer(":"+strconv.Itoa(cfg.HTTPPort), httpapi.NewRouter(handler))
	lg.Info("service_started", map[string]any{"service": "api", "port": cfg.HTTPPort})
	return srv.Run(ctx)
}
