package repository

import "time"

// Document represents a source document row.
type Document struct {
	ID         string
	Path       string
	Title      string
	IngestedAt time.Time
}

// Chunk represents a slice of document text used for retrieval.
type Chunk struct {
	ID         string
	DocumentID string
	Seq        int
	Content    string
}

// DocumentChunks pairs a document with its chunks, in order.
type DocumentChunks struct {
	Document Document
	Chunks   []Chunk
}
