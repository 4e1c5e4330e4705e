package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

// ViewWriter is the interface for writing board views to output.
// Different implementations handle different output formats (text, JSON).
type ViewWriter interface {
	// WriteView writes a single view to the output.
	WriteView(v *BoardView) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewViewWriter picks the writer matching cfg.JSONFormat. JSON views are
// written as one document on Close.
func NewViewWriter(w io.Writer, cfg *config.OutputConfig) ViewWriter {
	if cfg.JSONFormat {
		return NewJSONWriter(w)
	}
	return NewTextWriter(w)
}

// TextWriter writes the rendered board and a status line for each view.
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteView writes the board followed by the last move and check status.
func (tw *TextWriter) WriteView(v *BoardView) error {
	text := v.Board
	if v.LastMove != nil {
		text += "Last move: " + v.LastMove.Text + "\n"
	}
	if v.Check && v.Winner == "" {
		text += v.Turn.String() + " is in check\n"
	}
	if v.Winner != "" {
		text += v.Winner + " wins!\n"
	}
	_, err := io.WriteString(tw.w, text)
	return err
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes views in JSON format.
// It buffers views and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w     io.Writer
	views []*BoardView
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     w,
		views: make([]*BoardView, 0),
	}
}

// WriteView buffers a view for JSON output.
func (jw *JSONWriter) WriteView(v *BoardView) error {
	jw.views = append(jw.views, v)
	return nil
}

// Flush writes all buffered views as a JSON array.
func (jw *JSONWriter) Flush() error {
	if len(jw.views) == 0 {
		return nil
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&ViewsOutput{Boards: jw.views})

	// Clear buffer after writing
	jw.views = jw.views[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
