// Package importer bulk loads the fixture CSV files into the database.
//
// Files are read in dependency order, one table each. A file that fails is
// logged and counted and the run moves on to the next one; nothing is
// rolled back across files.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"reviewhub/internal/metrics"
)

// DefaultBatchSize is the number of rows per INSERT.
const DefaultBatchSize = 500

// Store receives decoded rows. rows is a pointer to a slice of models.
type Store interface {
	InsertBatch(ctx context.Context, table string, rows any, batchSize int) error
	ResetSequence(ctx context.Context, table string) error
}

// Result is the outcome of one file.
type Result struct {
	File     string
	Rows     int
	Err      error
	Duration time.Duration
}

// Report collects the per-file results of a run.
type Report struct {
	Results []Result
}

// Failed returns the results that carry an error.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Rows is the total number of inserted rows.
func (r Report) Rows() int {
	n := 0
	for _, res := range r.Results {
		n += res.Rows
	}
	return n
}

type Importer struct {
	fsys      fs.FS
	store     Store
	logger    *slog.Logger
	batchSize int
	files     []source
}

type Option func(*Importer)

// WithBatchSize overrides DefaultBatchSize.
func WithBatchSize(n int) Option {
	return func(im *Importer) {
		if n > 0 {
			im.batchSize = n
		}
	}
}

// WithLogger sets the logger; slog.Default is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(im *Importer) {
		if l != nil {
			im.logger = l
		}
	}
}

// New builds an importer reading from fsys, typically os.DirFS(dataDir).
func New(fsys fs.FS, store Store, opts ...Option) *Importer {
	im := &Importer{
		fsys:      fsys,
		store:     store,
		logger:    slog.Default(),
		batchSize: DefaultBatchSize,
		files:     sources,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Run loads every file in order. It only returns an error when ctx is
// done; per-file failures are reported in the Report.
func (im *Importer) Run(ctx context.Context) (Report, error) {
	var report Report
	for _, src := range im.files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		start := time.Now()
		rows, err := im.load(ctx, src)
		res := Result{File: src.file, Rows: rows, Err: err, Duration: time.Since(start)}
		report.Results = append(report.Results, res)
		metrics.RecordImport(src.file, rows, err)

		if err != nil {
			im.logger.Error("import failed", "file", src.file, "table", src.table, "error", err)
			continue
		}
		im.logger.Info("imported", "file", src.file, "table", src.table, "rows", rows, "duration", res.Duration)
	}
	return report, nil
}

func (im *Importer) load(ctx context.Context, src source) (int, error) {
	records, err := readCSV(im.fsys, src.file)
	if err != nil {
		return 0, err
	}

	rows, n, err := src.decode(records)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}

	if err := im.store.InsertBatch(ctx, src.table, rows, im.batchSize); err != nil {
		return 0, fmt.Errorf("insert into %s: %w", src.table, err)
	}
	if err := im.store.ResetSequence(ctx, src.table); err != nil {
		return n, fmt.Errorf("reset %s id sequence: %w", src.table, err)
	}
	return n, nil
}

// readCSV returns the data rows of name keyed by header, with foreign key
// columns renamed.
func readCSV(fsys fs.FS, name string) ([]record, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: missing header row", name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		header[i] = foreignKeyColumn(strings.TrimSpace(col))
	}

	var out []record
	for line := 2; ; line++ {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		rec := record{line: line, values: make(map[string]string, len(header))}
		for i, col := range header {
			rec.values[col] = fields[i]
		}
		out = append(out, rec)
	}
	return out, nil
}

// foreignKeyColumn maps the fixture's relation columns to their id columns.
func foreignKeyColumn(col string) string {
	switch col {
	case "category", "author":
		return col + "_id"
	}
	return col
}
