package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jask/docqa/internal/config"
	"github.com/jask/docqa/internal/database"
	"github.com/jask/docqa/internal/database/repository"
	"github.com/jask/docqa/internal/llm"
	"github.com/jask/docqa/internal/rag"
	"github.com/jask/docqa/internal/secrets"
	"github.com/jask/docqa/internal/server"
)

func newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the question-answering backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if _, err := setupLogging(cfg.Log, false); err != nil {
				return err
			}

			db, err := openStore(cfg.Store)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := repository.NewChunkRepo(db)
			if err := logCorpus(cmd.Context(), repo); err != nil {
				return err
			}

			var keys llm.KeySource
			if store, err := secrets.Default(); err == nil {
				keys = store
			}
			gen := llm.FromConfig(cfg.LLM, keys)
			if c, ok := gen.(interface{ Close() error }); ok {
				defer c.Close()
			}
			svc := &rag.Service{
				Retriever: &rag.Retriever{Source: repo, TopK: cfg.Retrieval.TopK},
				Generator: gen,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			log.Info().Str("addr", cfg.Server.Addr).Str("llm", gen.Name()).Msg("serving")
			return server.ListenAndServe(ctx, cfg.Server.Addr, server.NewRouter(svc))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func newIngestCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Chunk a documents folder into the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if dir != "" {
				cfg.Documents.Dir = dir
			}
			if _, err := setupLogging(cfg.Log, false); err != nil {
				return err
			}
			return runIngest(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "documents folder (overrides documents.dir)")
	return cmd
}

// logCorpus reports what the backend will answer from.
func logCorpus(ctx context.Context, repo *repository.ChunkRepo) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Warn().Msg("chunk store is empty; run `docqa ingest` first")
		return nil
	}
	docs, err := repo.Documents(ctx)
	if err != nil {
		return err
	}
	for _, d := range docs {
		log.Debug().Str("path", d.Path).Time("ingested_at", d.IngestedAt).Msg("document")
	}
	log.Info().Int("documents", len(docs)).Int("chunks", n).Msg("corpus loaded")
	return nil
}

func openStore(cfg config.StoreConfig) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, errors.Wrap(err, "mkdir store dir")
	}
	if err := database.RunMigrations(cfg.Path); err != nil {
		return nil, errors.Wrap(err, "migrate")
	}
	db, err := database.Open(cfg.Path)
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	return db, nil
}
