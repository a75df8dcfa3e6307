package parser

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadRecords decodes every non-blank line of a transcript stream.
// Blank lines produce nothing; oversized lines become opaque
// records tagged TagOversized so the line count stays honest. The
// error is non-nil only when the underlying read fails mid-stream.
func ReadRecords(r io.Reader) ([]Record, error) {
	return readRecords(r, maxRecordBytes)
}

func readRecords(r io.Reader, maxLen int) ([]Record, error) {
	lr := newLineReader(r, maxLen)
	var records []Record
	for {
		line, oversized, ok := lr.next()
		if !ok {
			return records, lr.err
		}
		if oversized {
			records = append(records, Record{
				Kind: KindOpaque,
				Tag:  TagOversized,
			})
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, DecodeRecord(line))
	}
}

// LoadSession reads one transcript file into a Session. The file
// mtime becomes the session's ModifiedAt; in-record timestamps are
// not trusted for ordering.
func LoadSession(path string) (Session, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Session{}, fmt.Errorf("stat %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return Session{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return Session{}, fmt.Errorf("read %s: %w", path, err)
	}

	return BuildSession(path, records, info.ModTime()), nil
}
