package neighborhoods

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// csvReader is a wrapper over csv.Reader which converts each row into
// a map keyed by header names.
type csvReader struct {
	reader *csv.Reader
	header []string
}

func (c *csvReader) Read() (map[string]string, error) {
	row, err := c.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("cannot read a record: %w", err)
	}

	rv := make(map[string]string, len(c.header))

	for i, name := range c.header {
		if i < len(row) {
			rv[name] = strings.TrimSpace(row[i])
		}
	}

	return rv, nil
}

func newCSVReader(src io.Reader) (*csvReader, error) {
	reader := csv.NewReader(src)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read a header: %w", err)
	}

	names := make([]string, len(header))

	for i, v := range header {
		if i == 0 {
			v = strings.TrimPrefix(v, utf8BOM)
		}

		names[i] = strings.TrimSpace(v)
	}

	return &csvReader{
		reader: reader,
		header: names,
	}, nil
}
