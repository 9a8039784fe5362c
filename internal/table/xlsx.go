package table

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions configures the XLSX reader.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads a worksheet into a table. The first row is the header and
// cells are typed the same way as CSV input.
func ReadXLSX(path string, opts XLSXOptions) (*Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open xlsx %s", path)
	}
	return fromSheet(f, opts)
}

func fromSheet(f *xlsx.File, opts XLSXOptions) (*Table, error) {
	sheet, err := pickSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.New("table: xlsx sheet is empty")
	}

	header := rowStrings(sheet.Rows[0])
	t, err := New(header...)
	if err != nil {
		return nil, eris.Wrap(err, "table: xlsx header")
	}

	for _, row := range sheet.Rows[1:] {
		cells := rowStrings(row)
		vals := make([]Value, len(header))
		for i := range header {
			if i < len(cells) {
				vals[i] = typeCell(cells[i])
			} else {
				vals[i] = Null()
			}
		}
		if err := t.Append(vals...); err != nil {
			return nil, eris.Wrap(err, "table: xlsx append")
		}
	}

	return t, nil
}

func pickSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("table: xlsx sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}
	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("table: xlsx sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

func rowStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = cell.String()
	}
	return cells
}
