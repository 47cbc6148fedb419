package csvwriter

import (
	"compress/gzip"
	"encoding/csv"
	"io"
)

// Writer renders comma separated rows into a stream, optionally gzip compressed.
// Close flushes everything but leaves the underlying stream open for the caller.
type Writer struct {
	gzip   *gzip.Writer
	writer *csv.Writer
}

func New(out io.Writer) *Writer {
	return &Writer{writer: csv.NewWriter(out)}
}

func NewGzip(out io.Writer) *Writer {
	gzipWriter := gzip.NewWriter(out)
	return &Writer{
		gzip:   gzipWriter,
		writer: csv.NewWriter(gzipWriter),
	}
}

func (w *Writer) Write(row []string) error {
	return w.writer.Write(row)
}

func (w *Writer) Flush() error {
	w.writer.Flush()
	return w.writer.Error()
}

func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		if w.gzip != nil {
			// If the writer failed to flush, let's try to close the gzip writer anyway.
			_ = w.gzip.Close()
		}

		return err
	}

	if w.gzip != nil {
		return w.gzip.Close()
	}

	return nil
}
