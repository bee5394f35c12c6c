package document

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// header is the first record of a streaming document.
type header struct {
	Type       string    `json:"@type"`
	Context    string    `json:"@context"`
	Version    int       `json:"Version"`
	Created    time.Time `json:"Created"`
	SourceFile string    `json:"SourceFile,omitempty"`
	RenderMode string    `json:"RenderMode"`
	Settings   Settings  `json:"Settings"`
}

// streamFrame is one frame record.
type streamFrame struct {
	Type string `json:"@type"`
	Frame
}

// footer closes a streaming document. IsComplete stays false when the
// writer was dropped before finishing.
type footer struct {
	Type       string `json:"@type"`
	FrameCount int    `json:"FrameCount"`
	IsComplete bool   `json:"IsComplete"`
}

// StreamWriter emits a streaming-form document record by record, so
// an interrupted write still leaves a syntactically valid file.
type StreamWriter struct {
	w        *bufio.Writer
	enc      *json.Encoder
	count    int
	frameW   int
	frameH   int
	finished bool
	closed   bool
}

// NewStreamWriter writes the header record immediately and returns a
// writer accepting frames.
func NewStreamWriter(w io.Writer, renderMode string, settings Settings, sourceFile string) (*StreamWriter, error) {
	bw := bufio.NewWriter(w)
	sw := &StreamWriter{w: bw, enc: json.NewEncoder(bw)}

	h := header{
		Type:       TypeHeader,
		Context:    SchemaContext,
		Version:    SchemaVersion,
		Created:    time.Now().UTC(),
		SourceFile: sourceFile,
		RenderMode: renderMode,
		Settings:   settings,
	}
	if err := sw.enc.Encode(h); err != nil {
		return nil, fmt.Errorf("document: stream header: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("document: stream header: %w", err)
	}
	return sw, nil
}

// WriteFrame appends one frame record and flushes it, enforcing the
// shared-dimensions invariant.
func (sw *StreamWriter) WriteFrame(content string, delayMs, width, height int) error {
	if sw.closed {
		return fmt.Errorf("document: stream writer is closed")
	}
	if sw.count == 0 {
		sw.frameW, sw.frameH = width, height
	} else if width != sw.frameW || height != sw.frameH {
		return fmt.Errorf("%w: got %dx%d, stream is %dx%d",
			ErrFrameSize, width, height, sw.frameW, sw.frameH)
	}

	rec := streamFrame{Type: TypeFrame, Frame: Frame{
		Index:   sw.count,
		Content: content,
		DelayMs: delayMs,
		Width:   width,
		Height:  height,
	}}
	if err := sw.enc.Encode(rec); err != nil {
		return fmt.Errorf("document: stream frame %d: %w", sw.count, err)
	}
	if err := sw.w.Flush(); err != nil {
		return fmt.Errorf("document: stream frame %d: %w", sw.count, err)
	}
	sw.count++
	return nil
}

// Finish writes the footer with IsComplete=true. Call it after the
// last frame of a successful run.
func (sw *StreamWriter) Finish() error {
	if sw.closed {
		return fmt.Errorf("document: stream writer is closed")
	}
	sw.finished = true
	return sw.writeFooter(true)
}

// Close writes a best-effort footer with IsComplete=false when Finish
// was never called, then marks the writer closed. Idempotent.
func (sw *StreamWriter) Close() error {
	if sw.closed {
		return nil
	}
	var err error
	if !sw.finished {
		err = sw.writeFooter(false)
	}
	sw.closed = true
	return err
}

func (sw *StreamWriter) writeFooter(complete bool) error {
	f := footer{Type: TypeFooter, FrameCount: sw.count, IsComplete: complete}
	if err := sw.enc.Encode(f); err != nil {
		return fmt.Errorf("document: stream footer: %w", err)
	}
	if err := sw.w.Flush(); err != nil {
		return fmt.Errorf("document: stream footer: %w", err)
	}
	sw.closed = true
	return nil
}

// loadStreaming parses a streaming-form document from raw bytes. A
// missing footer is tolerated: the document loads with Complete=false
// and every frame read so far.
func loadStreaming(data []byte, path string) (*Document, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 1024*1024), 64*1024*1024)

	var doc *Document
	sawFooter := false
	line := 0

	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		if sawFooter {
			return nil, &ParseError{Line: line, Path: path,
				Err: fmt.Errorf("record after footer")}
		}

		var tag struct {
			Type string `json:"@type"`
		}
		if err := json.Unmarshal(raw, &tag); err != nil {
			return nil, &ParseError{Line: line, Path: path, Err: err}
		}

		switch tag.Type {
		case TypeHeader:
			if doc != nil {
				return nil, &ParseError{Line: line, Path: path,
					Err: fmt.Errorf("duplicate header")}
			}
			var h header
			if err := json.Unmarshal(raw, &h); err != nil {
				return nil, &ParseError{Line: line, Path: path, Err: err}
			}
			if h.RenderMode == "" {
				return nil, &ParseError{Line: line, Path: path,
					Err: fmt.Errorf("%w: RenderMode", ErrMissingField)}
			}
			doc = &Document{
				Context:    SchemaContext,
				Type:       TypeDocument,
				Version:    h.Version,
				Created:    h.Created,
				SourceFile: h.SourceFile,
				RenderMode: h.RenderMode,
				Settings:   h.Settings,
			}

		case TypeFrame:
			if doc == nil {
				return nil, &ParseError{Line: line, Path: path,
					Err: fmt.Errorf("frame before header")}
			}
			var f streamFrame
			if err := json.Unmarshal(raw, &f); err != nil {
				return nil, &ParseError{Line: line, Path: path, Err: err}
			}
			if err := doc.AppendFrame(f.Content, f.DelayMs, f.Width, f.Height); err != nil {
				return nil, &ParseError{Line: line, Path: path, Err: err}
			}

		case TypeFooter:
			if doc == nil {
				return nil, &ParseError{Line: line, Path: path,
					Err: fmt.Errorf("footer before header")}
			}
			var f footer
			if err := json.Unmarshal(raw, &f); err != nil {
				return nil, &ParseError{Line: line, Path: path, Err: err}
			}
			if f.IsComplete && f.FrameCount != len(doc.Frames) {
				return nil, &ParseError{Line: line, Path: path,
					Err: fmt.Errorf("footer frame count %d, stream has %d",
						f.FrameCount, len(doc.Frames))}
			}
			doc.Complete = f.IsComplete
			sawFooter = true

		default:
			return nil, &ParseError{Line: line, Path: path,
				Err: fmt.Errorf("%w %q", ErrUnknownType, tag.Type)}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Line: line, Path: path, Err: err}
	}
	if doc == nil {
		return nil, &ParseError{Line: line, Path: path,
			Err: fmt.Errorf("%w: header record", ErrMissingField)}
	}
	// Writer dropped mid-stream: the frames read remain usable.
	if !sawFooter {
		doc.Complete = false
	}
	return doc, nil
}
