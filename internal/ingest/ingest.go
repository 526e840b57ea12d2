package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/jask/docqa/internal/database/repository"
)

// DefaultChunkSize is the number of characters per chunk.
const DefaultChunkSize = 500

// Document is one source file read into sections (sheets for spreadsheets, the whole
// file for plain text).
type Document struct {
	Path     string
	Title    string
	Sections []string
}

// Store is the persistence the ingester writes to.
type Store interface {
	ReplaceAll(ctx context.Context, docs []repository.DocumentChunks) error
}

// Service reads a directory of documents and replaces the stored corpus with its chunks.
type Service struct {
	Store     Store
	ChunkSize int
}

// Result summarizes an ingest run.
type Result struct {
	Documents int
	Chunks    int
	Skipped   []string
}

func (s *Service) Run(ctx context.Context, dir string) (Result, error) {
	docs, skipped, err := LoadDir(dir)
	if err != nil {
		return Result{}, err
	}
	size := s.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}

	res := Result{Skipped: skipped}
	batch := make([]repository.DocumentChunks, 0, len(docs))
	for _, d := range docs {
		var chunks []repository.Chunk
		for _, section := range d.Sections {
			for _, c := range Split(section, size) {
				chunks = append(chunks, repository.Chunk{Content: c})
			}
		}
		if len(chunks) == 0 {
			res.Skipped = append(res.Skipped, d.Path)
			continue
		}
		batch = append(batch, repository.DocumentChunks{
			Document: repository.Document{Path: d.Path, Title: d.Title},
			Chunks:   chunks,
		})
		res.Documents++
		res.Chunks += len(chunks)
	}
	if err := s.Store.ReplaceAll(ctx, batch); err != nil {
		return Result{}, errors.Wrap(err, "store chunks")
	}
	log.Info().Str("dir", dir).Int("documents", res.Documents).Int("chunks", res.Chunks).
		Strs("skipped", res.Skipped).Msg("ingest complete")
	return res, nil
}

// Split cuts text into consecutive chunks of size characters without overlap.
// Whitespace-only chunks are dropped.
func Split(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	runes := []rune(text)
	var out []string
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := string(runes[i:end])
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		out = append(out, chunk)
	}
	return out
}

// LoadDir reads every supported file directly under dir, sorted by name. Unsupported
// files are reported in skipped.
func LoadDir(dir string) (docs []Document, skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read documents dir %s", dir)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		d, ok, err := Load(path)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			skipped = append(skipped, path)
			continue
		}
		docs = append(docs, d)
	}
	return docs, skipped, nil
}

// Load reads a single file. ok is false for unsupported extensions.
func Load(path string) (Document, bool, error) {
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".text", ".markdown":
		b, err := os.ReadFile(path)
		if err != nil {
			return Document{}, false, errors.Wrapf(err, "read %s", path)
		}
		return Document{Path: path, Title: title, Sections: []string{string(b)}}, true, nil
	case ".pdf":
		sections, err := loadPDF(path)
		if err != nil {
			return Document{}, false, err
		}
		return Document{Path: path, Title: title, Sections: sections}, true, nil
	case ".xlsx", ".xlsm":
		sections, err := loadSpreadsheet(path)
		if err != nil {
			return Document{}, false, err
		}
		return Document{Path: path, Title: title, Sections: sections}, true, nil
	default:
		return Document{}, false, nil
	}
}

// loadPDF extracts the plain text of each page as its own section.
func loadPDF(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open pdf %s", path)
	}
	defer f.Close()

	var sections []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, errors.Wrapf(err, "read page %d of %s", i, path)
		}
		if strings.TrimSpace(text) != "" {
			sections = append(sections, text)
		}
	}
	return sections, nil
}

// loadSpreadsheet renders each sheet as tab-separated rows.
func loadSpreadsheet(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open spreadsheet %s", path)
	}
	defer f.Close()

	var sections []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, errors.Wrapf(err, "read sheet %s of %s", sheet, path)
		}
		var b strings.Builder
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, "\t"))
			if line == "" {
				continue
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
		if b.Len() > 0 {
			sections = append(sections, b.String())
		}
	}
	return sections, nil
}
