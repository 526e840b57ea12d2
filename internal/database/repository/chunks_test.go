package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/docqa/internal/database"
	"github.com/jask/docqa/internal/database/repository"
)

func openRepo(t *testing.T) *repository.ChunkRepo {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docqa.db")
	require.NoError(t, database.RunMigrations(path))
	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewChunkRepo(db)
}

func TestReplaceAllAndList(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)

	err := repo.ReplaceAll(ctx, []repository.DocumentChunks{
		{
			Document: repository.Document{Path: "b.txt", Title: "b"},
			Chunks:   []repository.Chunk{{Content: "b-0"}, {Content: "b-1"}},
		},
		{
			Document: repository.Document{Path: "a.txt", Title: "a"},
			Chunks:   []repository.Chunk{{Content: "a-0"}},
		},
	})
	require.NoError(t, err)

	chunks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	require.Equal(t, "a-0", chunks[0].Content)
	require.Equal(t, "b-0", chunks[1].Content)
	require.Equal(t, "b-1", chunks[2].Content)
	require.Equal(t, 1, chunks[2].Seq)
	require.NotEmpty(t, chunks[0].ID)

	docs, err := repo.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.False(t, docs[0].IngestedAt.IsZero())
	require.Zero(t, docs[0].IngestedAt.Nanosecond())
	require.Equal(t, "a.txt", docs[0].Path)
}

func TestReplaceAllDropsPreviousCorpus(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)

	require.NoError(t, repo.ReplaceAll(ctx, []repository.DocumentChunks{{
		Document: repository.Document{Path: "old.txt", Title: "old"},
		Chunks:   []repository.Chunk{{Content: "stale"}},
	}}))
	require.NoError(t, repo.ReplaceAll(ctx, []repository.DocumentChunks{{
		Document: repository.Document{Path: "new.txt", Title: "new"},
		Chunks:   []repository.Chunk{{Content: "fresh"}, {Content: "fresher"}},
	}}))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	chunks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "fresh", chunks[0].Content)
}

func TestRunMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docqa.db")
	require.NoError(t, database.RunMigrations(path))
	require.NoError(t, database.RunMigrations(path))
}

func TestReplaceAllDuplicatePathRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	require.NoError(t, repo.ReplaceAll(ctx, []repository.DocumentChunks{{
		Document: repository.Document{Path: "keep.txt", Title: "keep"},
		Chunks:   []repository.Chunk{{Content: "kept"}},
	}}))

	err := repo.ReplaceAll(ctx, []repository.DocumentChunks{
		{Document: repository.Document{Path: "dup.txt"}},
		{Document: repository.Document{Path: "dup.txt"}},
	})
	require.Error(t, err)

	chunks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, "kept", chunks[0].Content)
}
