package document

import (
	"encoding/json"
	"fmt"
	"io"
)

// Save writes the standard single-object form: every frame inside one
// structured record.
func (d *Document) Save(w io.Writer) error {
	d.Context = SchemaContext
	d.Type = TypeDocument
	if d.Version == 0 {
		d.Version = SchemaVersion
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("document: save: %w", err)
	}
	return nil
}

// loadStandard parses a standard-form document from raw bytes.
func loadStandard(data []byte, path string) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if d.Type != TypeDocument {
		return nil, &ParseError{Path: path,
			Err: fmt.Errorf("%w %q", ErrUnknownType, d.Type)}
	}
	if d.RenderMode == "" {
		return nil, &ParseError{Path: path,
			Err: fmt.Errorf("%w: RenderMode", ErrMissingField)}
	}
	d.Complete = true
	return &d, nil
}
