package table

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// ReadCSV parses delimited text into a table. The first record is the
// header. Cells are typed on read: empty cells become null, cells that parse
// as floats become numbers, everything else stays a string. Short records
// are padded with nulls and long records truncated, since loosely-exported
// civic data is rarely rectangular.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "table: read csv header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t, err := New(header...)
	if err != nil {
		return nil, eris.Wrap(err, "table: csv header")
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "table: read csv row")
		}

		vals := make([]Value, len(header))
		for i := range header {
			if i < len(record) {
				vals[i] = typeCell(record[i])
			} else {
				vals[i] = Null()
			}
		}
		if err := t.Append(vals...); err != nil {
			return nil, eris.Wrap(err, "table: csv append")
		}
	}

	return t, nil
}

// ReadCSVFile parses a CSV file at path.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	t, err := ReadCSV(f)
	if err != nil {
		return nil, eris.Wrapf(err, "table: parse %s", path)
	}
	return t, nil
}

func typeCell(s string) Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Null()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Number(f)
	}
	return String(trimmed)
}
