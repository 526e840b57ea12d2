package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jask/docqa/internal/database"
)

// ChunkRepo handles documents and their chunks.
type ChunkRepo struct {
	db *sql.DB
}

func NewChunkRepo(db *sql.DB) *ChunkRepo { return &ChunkRepo{db: db} }

// ReplaceAll swaps the whole corpus in one transaction. Missing IDs are generated.
func (r *ChunkRepo) ReplaceAll(ctx context.Context, docs []DocumentChunks) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM chunks`); err != nil {
			return errors.Wrap(err, "clear chunks")
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
			return errors.Wrap(err, "clear documents")
		}

		now := database.Now()
		for _, d := range docs {
			doc := d.Document
			if doc.ID == "" {
				doc.ID = uuid.NewString()
			}
			if doc.IngestedAt.IsZero() {
				doc.IngestedAt = now
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO documents(id, path, title, ingested_at) VALUES (?, ?, ?, ?)`,
				doc.ID, doc.Path, doc.Title, doc.IngestedAt,
			); err != nil {
				return errors.Wrapf(err, "insert document %s", doc.Path)
			}
			for i, c := range d.Chunks {
				if c.ID == "" {
					c.ID = uuid.NewString()
				}
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO chunks(id, document_id, seq, content) VALUES (?, ?, ?, ?)`,
					c.ID, doc.ID, i, c.Content,
				); err != nil {
					return errors.Wrapf(err, "insert chunk %d of %s", i, doc.Path)
				}
			}
		}
		return nil
	})
}

// List returns every chunk in document then sequence order.
func (r *ChunkRepo) List(ctx context.Context) ([]Chunk, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT c.id, c.document_id, c.seq, c.content
	FROM chunks c JOIN documents d ON d.id = c.document_id
	ORDER BY d.path, c.seq`)
	if err != nil {
		return nil, errors.Wrap(err, "list chunks")
	}
	defer rows.Close()
	var out []Chunk
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Seq, &c.Content); err != nil {
			return nil, errors.Wrap(err, "scan chunk")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ChunkRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count chunks")
	}
	return n, nil
}

// Documents lists stored documents by path.
func (r *ChunkRepo) Documents(ctx context.Context) ([]Document, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, path, title, ingested_at FROM documents ORDER BY path`)
	if err != nil {
		return nil, errors.Wrap(err, "list documents")
	}
	defer rows.Close()
	var out []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Path, &d.Title, &d.IngestedAt); err != nil {
			return nil, errors.Wrap(err, "scan document")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
