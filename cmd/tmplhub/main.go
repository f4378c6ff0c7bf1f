// @title			tmplhub API
// @version		1.0
// @description	Template catalog and lint service for DevOps template pages.
// @BasePath		/api/v1

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/tmplhub/tmplhub/internal/config"
	"github.com/tmplhub/tmplhub/internal/corpus"
	"github.com/tmplhub/tmplhub/internal/database"
	"github.com/tmplhub/tmplhub/internal/handler"
	"github.com/tmplhub/tmplhub/internal/lint"
	"github.com/tmplhub/tmplhub/internal/logger"
	"github.com/tmplhub/tmplhub/internal/repository"
	"github.com/tmplhub/tmplhub/internal/service"
)

func main() {
	app := &cli.App{
		Name:  "tmplhub",
		Usage: "Template catalog and lint service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Aliases: []string{"d"},
				Value:   config.DefaultDatabaseURL,
				Usage:   "PostgreSQL database URL",
				EnvVars: []string{"DATABASE_URL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					corpusDirFlag(),
				},
				Action: runServe,
			},
			{
				Name:  "sync",
				Usage: "Ingest the corpus into the index",
				Flags: []cli.Flag{
					corpusDirFlag(),
					builtinFlag(),
					&cli.BoolFlag{
						Name:  "prune",
						Usage: "Remove indexed pages no longer present in the corpus",
					},
				},
				Action: runSync,
			},
			{
				Name:  "lint",
				Usage: "Lint the corpus without touching the database",
				Flags: []cli.Flag{
					corpusDirFlag(),
					builtinFlag(),
					&cli.StringFlag{
						Name:  "format",
						Value: "text",
						Usage: "Output format (text, json)",
					},
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Exit non-zero on warnings too",
					},
				},
				Action: runLint,
			},
			{
				Name:  "token",
				Usage: "Manage API tokens for mutating endpoints",
				Subcommands: []*cli.Command{
					{
						Name:  "create",
						Usage: "Create an API token and print its secret",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "name",
								Aliases:  []string{"n"},
								Usage:    "Token name",
								Required: true,
							},
						},
						Action: runTokenCreate,
					},
					{
						Name:  "revoke",
						Usage: "Deactivate all tokens with a given name",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "name",
								Aliases:  []string{"n"},
								Usage:    "Token name",
								Required: true,
							},
						},
						Action: runTokenRevoke,
					},
				},
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func corpusDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "corpus-dir",
		Aliases: []string{"c"},
		Value:   config.DefaultCorpusDir,
		Usage:   "Corpus root directory",
		EnvVars: []string{"CORPUS_DIR"},
	}
}

func builtinFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "builtin",
		Usage: "Use the embedded starter corpus instead of --corpus-dir",
	}
}

// loadCorpus reads either the configured corpus directory or the embedded
// starter corpus.
func loadCorpus(c *cli.Context) (*corpus.Corpus, error) {
	if c.Bool("builtin") {
		return corpus.Load(corpus.Builtin(), config.BuiltinSource)
	}
	dir := c.String("corpus-dir")
	return corpus.LoadDir(dir, dir)
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}
	databaseURL := c.String("database-url")

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	h, err := handler.New(db.Pool(), c.String("corpus-dir"))
	if err != nil {
		return fmt.Errorf("failed to build handler: %w", err)
	}

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runSync(c *cli.Context) error {
	ctx := c.Context

	db, err := database.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	corp, err := loadCorpus(c)
	if err != nil {
		return err
	}

	linter, err := lint.New()
	if err != nil {
		return err
	}

	pool := db.Pool()
	syncService := service.NewSyncService(
		pool,
		repository.NewPageRepository(pool),
		repository.NewFenceRepository(pool),
		repository.NewIssueRepository(pool),
		repository.NewSyncRunRepository(pool),
		linter,
	)

	run, err := syncService.Sync(ctx, corp, c.Bool("prune"))
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Printf("synced %d/%d pages from %s (%d errors, %d warnings)\n",
		run.PagesSynced, run.PagesSeen, run.Source, run.ErrorsCount, run.WarningsCount)
	return nil
}

func runTokenCreate(c *cli.Context) error {
	ctx := c.Context

	db, err := database.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	token, err := repository.NewTokenRepository(db.Pool()).Create(ctx, c.String("name"), uuid.NewString())
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	// The secret is only ever printed here.
	fmt.Printf("token %q created: %s\n", token.Name, token.Token)
	return nil
}

func runTokenRevoke(c *cli.Context) error {
	ctx := c.Context

	db, err := database.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := repository.NewTokenRepository(db.Pool()).Revoke(ctx, c.String("name")); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	fmt.Printf("tokens named %q revoked\n", c.String("name"))
	return nil
}

func runLint(c *cli.Context) error {
	corp, err := loadCorpus(c)
	if err != nil {
		return err
	}

	linter, err := lint.New()
	if err != nil {
		return err
	}

	issues := linter.Run(corp)
	summary := lint.Summarize(issues)

	switch c.String("format") {
	case "json":
		if err := json.NewEncoder(os.Stdout).Encode(issues); err != nil {
			return fmt.Errorf("encode issues: %w", err)
		}
	default:
		for _, issue := range issues {
			if issue.Line > 0 {
				fmt.Printf("%s:%d: %s %s: %s\n", issue.Path, issue.Line, issue.Severity, issue.Code, issue.Message)
			} else {
				fmt.Printf("%s: %s %s: %s\n", issue.Path, issue.Severity, issue.Code, issue.Message)
			}
		}
		fmt.Printf("%d pages, %d errors, %d warnings\n", len(corp.Docs), summary.Errors, summary.Warnings)
	}

	for i := range issues {
		if issues[i].IsBlocking(c.Bool("strict")) {
			return cli.Exit("lint failed", 1)
		}
	}
	return nil
}
