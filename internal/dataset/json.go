package dataset

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"handspan/internal/utils"
)

// customJSONHandler is a custom slog handler that outputs logs in JSON format
// with time in "2006-01-02 15:04:05" format and without the log level field.
// All attributes are written at the top level of the object.
type customJSONHandler struct {
	opts slog.HandlerOptions // handler options (not actively used, but stored)
	out  io.Writer           // target writer for JSON record output
}

// NewCustomJSONHandler creates a new instance of customJSONHandler.
// Parameters:
// - out: writer where JSON records will be written (e.g., file)
// - opts: slog.HandlerOptions (can be nil)
func NewCustomJSONHandler(out io.Writer, opts *slog.HandlerOptions) *customJSONHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	return &customJSONHandler{
		opts: *opts,
		out:  out,
	}
}

// Handle implements the slog.Handler interface: serializes a record to JSON
// with the required time format and without the log level.
// Each record is written as a separate line (JSONL format).
func (h *customJSONHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]interface{})

	attrs["time"] = r.Time.Format("2006-01-02 15:04:05")

	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "" && a.Value.Any() != nil {
			attrs[a.Key] = a.Value.Any()
		}

		return true
	})

	data, err := json.Marshal(attrs)
	if err != nil {
		return err
	}

	_, err = h.out.Write(append(data, '\n'))
	return err
}

// WithAttrs is not supported
func (h *customJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	panic("WithAttrs is not supported by customJSONHandler")
}

// WithGroup is not supported
func (h *customJSONHandler) WithGroup(name string) slog.Handler {
	panic("WithGroup is not supported by customJSONHandler")
}

// Enabled determines whether the handler should process a record of the given level.
// Always returns true — all levels are allowed.
func (h *customJSONHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// JSONRecorder collects evaluation records into a JSONL file with rotation
// and compression via lumberjack, and keeps the most recent records in
// memory for inspection. Suitable for long-running tuning sessions.
type JSONRecorder struct {
	lumberjack *lumberjack.Logger // rotating file writer
	logger     *slog.Logger       // structured logger with custom output
	recent     *utils.RingBuffer[Record]
}

// NewJSONRecorder creates a recorder writing to the given file.
// Parameters:
// - file: path to the file where records are written
// - maxSize: maximum file size in MB before rotation
// - maxBackups: maximum number of old files to keep
// - recent: number of latest records kept in memory
func NewJSONRecorder(file string, maxSize, maxBackups, recent int) *JSONRecorder {
	recorder := JSONRecorder{}
	recorder.lumberjack = &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   true,
	}

	handler := NewCustomJSONHandler(recorder.lumberjack, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	recorder.logger = slog.New(handler)
	recorder.recent = utils.NewRingBuffer[Record](recent)
	return &recorder
}

// Append writes one evaluation record to the dataset file and remembers it
// in the in-memory window. The method is thread-safe thanks to lumberjack,
// slog and the ring buffer.
func (r *JSONRecorder) Append(record Record) {
	r.logger.Info("",
		"piece", record.Piece,
		"hand", record.Hand,
		"slices", record.Slices,
		"score", record.Score,
	)
	r.recent.Push(record)
}

// Recent returns the latest records, oldest first.
func (r *JSONRecorder) Recent() []Record {
	return r.recent.ToSlice()
}

// Close closes the underlying file. Should be called when shutting down
// to ensure write completion and rotation of the last file.
func (r *JSONRecorder) Close() {
	r.lumberjack.Close()
}
