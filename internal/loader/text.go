// Package loader turns raw sources into rows of cells: tab-delimited text
// and relational query results. Loaders never touch a table; the caller
// replaces its table only when a load succeeds.
package loader

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/mesh-intelligence/tabview/pkg/types"
)

// FieldDelimiter separates fields within a line.
const FieldDelimiter = '\t'

// LoadText splits raw into lines and each line into tab-separated Text
// cells. No type inference is done. A trailing line terminator does not
// produce an empty last row, and empty input yields no rows. LoadText never
// fails: uneven lines give a ragged result.
func LoadText(raw []byte) types.Rows {
	if len(raw) == 0 {
		return types.Rows{}
	}
	text := string(raw)
	text = strings.TrimSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	rows := make(types.Rows, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		rows = append(rows, types.TextRow(strings.Split(line, string(FieldDelimiter))...))
	}
	return rows
}

// DecodeText is LoadText for untrusted input. A leading byte-order mark is
// consumed (UTF-16 input is converted to UTF-8) and the result must be valid
// UTF-8. Returns ErrDecode otherwise.
func DecodeText(raw []byte) (types.Rows, error) {
	decoded, err := decodeUTF(raw)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(decoded) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", types.ErrDecode)
	}
	return LoadText(decoded), nil
}

// LoadFile reads the file at path and decodes it with DecodeText.
func LoadFile(path string) (types.Rows, error) {
	rows, _, err := LoadFileSize(path)
	return rows, err
}

// LoadFileSize is LoadFile that also reports how many bytes were read.
func LoadFileSize(path string) (types.Rows, int64, error) {
	raw, err := ReadFile(path)
	if err != nil {
		return nil, -1, err
	}
	rows, err := DecodeText(raw)
	if err != nil {
		return nil, int64(len(raw)), fmt.Errorf("decoding %s: %w", path, err)
	}
	return rows, int64(len(raw)), nil
}

// ReadFile returns the bytes at path. Returns ErrSourceUnreadable if the
// file cannot be read.
func ReadFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w: %v", path, types.ErrSourceUnreadable, err)
	}
	return raw, nil
}

// utf8BOM is the UTF-8 encoding of U+FEFF.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeUTF strips a byte-order mark. Input without a BOM is returned as is;
// UTF-16 input with a BOM is transcoded to UTF-8.
func decodeUTF(raw []byte) ([]byte, error) {
	if bytes.HasPrefix(raw, utf8BOM) {
		return raw[len(utf8BOM):], nil
	}
	if !hasUTF16BOM(raw) {
		return raw, nil
	}
	// BOMOverride picks the UTF-16 decoder from the mark and drops it.
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrDecode, err)
	}
	return out, nil
}

func hasUTF16BOM(raw []byte) bool {
	return len(raw) >= 2 && ((raw[0] == 0xFF && raw[1] == 0xFE) || (raw[0] == 0xFE && raw[1] == 0xFF))
}
