// Package output renders command results as JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

const indent = "  "

// Config controls where results go and how they are laid out.
type Config struct {
	// Compact writes one line per result instead of indented JSON.
	Compact bool
	// Output receives results. Nil means stdout.
	Output io.Writer
}

// Writer encodes results, one JSON document per Write.
type Writer struct {
	out    io.Writer
	indent string
}

// New returns a Writer for cfg.
func New(cfg Config) *Writer {
	w := &Writer{out: cfg.Output, indent: indent}
	if w.out == nil {
		w.out = os.Stdout
	}
	if cfg.Compact {
		w.indent = ""
	}
	return w
}

// Write encodes v as a single JSON document followed by a newline.
func (w *Writer) Write(v any) error {
	if err := encoder(w.out, w.indent).Encode(v); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// WriteError writes {"error": "..."} to w on one line. Nil errors write
// nothing.
func WriteError(w io.Writer, err error) {
	if err == nil {
		return
	}
	_ = encoder(w, "").Encode(struct {
		Error string `json:"error"`
	}{err.Error()})
}

// encoder leaves <, > and & unescaped since results carry source code.
func encoder(w io.Writer, indent string) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc
}
