package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultEncodings is the candidate order tried when the config does not
// override it: UTF-8 first, then the two legacy Korean code pages.
var DefaultEncodings = []string{"utf-8", "euc-kr", "windows-949"}

// DecodeError reports that no candidate encoding produced a well-formed
// table from the file.
type DecodeError struct {
	Path  string
	Tried []string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: no candidate encoding parsed the file (tried %s)",
		e.Path, strings.Join(e.Tried, ", "))
}

// Load reads a delimited text file, trying each candidate encoding in
// order and returning the first attempt that both decodes cleanly and
// parses as a table with a header row. An attempt that decodes with
// substitutions or fails CSV parsing is discarded and the next candidate
// is tried; earlier candidates win on ambiguous input such as pure ASCII.
func Load(path string, encodings []string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}
	delim := sniffDelimiter(path)
	for _, name := range encodings {
		text, ok := decodeAs(data, name)
		if !ok {
			continue
		}
		t, err := parseDelimited(text, delim)
		if err != nil {
			continue
		}
		return t, nil
	}
	return nil, &DecodeError{Path: path, Tried: append([]string(nil), encodings...)}
}

// decodeAs decodes raw bytes as the named encoding. The x/text decoders
// substitute U+FFFD instead of erroring, so a substitution in the output
// counts as a failed attempt; a partial or garbled decode must never
// masquerade as success.
func decodeAs(data []byte, name string) (string, bool) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if isUTF8(name) {
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", false
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", false
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

func parseDelimited(text string, delim rune) (*Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty table")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		// Pad short rows to header width so positional access stays safe.
		if len(rec) < len(cols) {
			tmp := make([]string, len(cols))
			copy(tmp, rec)
			rec = tmp
		}
		row := make([]string, len(rec))
		copy(row, rec)
		rows = append(rows, row)
	}
	return &Table{Columns: cols, Rows: rows}, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
