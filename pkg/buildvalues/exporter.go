package buildvalues

import (
	"bytes"
	"fmt"
	"io/fs"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/moby/sys/atomicwriter"
)

// DefaultExporter is an [Exporter] with default settings.
var DefaultExporter = NewExporter()

// Exporter persists build-values documents to files.
//
// Writes are atomic: content is staged to a temporary file in the destination
// directory and renamed into place, so a failed write never leaves a partial
// artifact behind and concurrent readers only ever observe complete
// documents. The destination directory must already exist.
type Exporter struct {
	fileMode fs.FileMode
}

// ExporterOpt configures an [Exporter].
type ExporterOpt func(*Exporter)

// WithFileMode sets the permission bits for created artifacts.
func WithFileMode(mode fs.FileMode) ExporterOpt {
	return func(e *Exporter) {
		e.fileMode = mode
	}
}

// NewExporter creates a new [Exporter].
func NewExporter(opts ...ExporterOpt) *Exporter {
	e := &Exporter{
		fileMode: 0o600,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Write renders items as a build-values document and atomically persists it
// to path. Rewriting unchanged items yields a byte-identical file.
func (e *Exporter) Write(items []NamedValue, path string) error {
	return e.write(items, path, false)
}

// WriteCompressed is like [Exporter.Write] but gzips the document.
func (e *Exporter) WriteCompressed(items []NamedValue, path string) error {
	return e.write(items, path, true)
}

func (e *Exporter) write(items []NamedValue, path string, compress bool) error {
	data, err := NewDocument(items).Bytes()
	if err != nil {
		return err
	}

	if compress {
		data, err = deterministicGzip(data)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
	}

	if err := atomicwriter.WriteFile(path, data, e.fileMode); err != nil {
		return fmt.Errorf("%w: write %q: %w", ErrIO, path, err)
	}

	return nil
}

func deterministicGzip(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}

	zw, err := gzip.NewWriterLevel(buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}

	// Keep the header timestamp zero so identical input yields identical
	// bytes.
	zw.ModTime = time.Time{}

	if _, err := zw.Write(data); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
