package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jask/docqa/internal/config"
	"github.com/jask/docqa/internal/database/repository"
	"github.com/jask/docqa/internal/ingest"
)

func runIngest(ctx context.Context, out io.Writer, cfg config.Config) error {
	db, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := &ingest.Service{Store: repository.NewChunkRepo(db), ChunkSize: cfg.Documents.ChunkSize}
	res, err := svc.Run(ctx, cfg.Documents.Dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "ingested %d documents (%d chunks)", res.Documents, res.Chunks)
	if len(res.Skipped) > 0 {
		fmt.Fprintf(out, ", skipped %d", len(res.Skipped))
	}
	fmt.Fprintln(out)
	return nil
}
