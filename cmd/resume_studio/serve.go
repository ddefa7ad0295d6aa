package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/server"
	"github.com/jonathan/resume-studio/internal/store"
)

var (
	servePort    int
	serveBackend string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for resume storage, job tailoring, ATS scanning and document export.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveBackend, "storage", "", "Storage backend: memory, redis or postgres (defaults to STORAGE_BACKEND env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	oracle, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}

	st, err := openStore(ctx, serveBackend)
	if err != nil {
		oracle.Close()
		return err
	}

	srv := server.New(server.Config{
		Port:   servePort,
		Store:  st,
		Oracle: oracle,
	})

	defer oracle.Close()
	return srv.Start()
}

// openStore builds the storage backend. An empty backend falls back to the
// STORAGE_BACKEND env var, then to in-memory storage.
func openStore(ctx context.Context, backend string) (store.Store, error) {
	if backend == "" {
		backend = os.Getenv("STORAGE_BACKEND")
	}

	switch backend {
	case "", config.BackendMemory:
		return store.NewMemoryStore(), nil

	case config.BackendRedis:
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		st, err := store.NewRedisStore(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
		}
		return st, nil

	case config.BackendPostgres:
		databaseURL := os.Getenv("DATABASE_URL")
		if databaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for postgres storage")
		}
		st, err := store.NewPostgresStore(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return st, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected memory, redis or postgres)", backend)
	}
}
