package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load reads a document in either encoding. The first record decides:
// a ConsoleImageDocumentHeader on the first line selects the
// streaming form, otherwise the input parses as one standard-form
// object.
func Load(r io.Reader) (*Document, error) {
	return load(r, "")
}

// LoadFile reads a document from disk, attaching the path to any
// parse error.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	defer f.Close()
	return load(f, path)
}

func load(r io.Reader, path string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}

	var tag struct {
		Type string `json:"@type"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(firstLine), &tag); err == nil &&
		tag.Type == TypeHeader {
		return loadStreaming(data, path)
	}
	return loadStandard(data, path)
}
