// Package report defines the dataset contract between document services
// and report adapters. Services produce a reconciled, sorted Dataset; the
// adapter turns it into a downloadable file.
package report

import (
	"context"
	"time"
)

// Column describes one dataset column
type Column struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Dataset is a flattened, render-ready view of a document list. One row
// per document line, keyed by Column.Key.
type Dataset struct {
	Label    string           `json:"label"`
	FromDate time.Time        `json:"fromDate"`
	ToDate   time.Time        `json:"toDate"`
	Columns  []Column         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
}

// Result is a rendered report file
type Result struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Adapter renders a dataset into a file. Implementations own the output
// format; the dataset carries everything they need.
type Adapter interface {
	Render(ctx context.Context, ds Dataset) (*Result, error)
}
