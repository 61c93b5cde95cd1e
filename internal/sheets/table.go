package sheets

// Table is an in-memory copy of one sheet: a header row plus data rows.
// Rows are always exactly as wide as the header; absent cells are "".
// The schema may grow (columns appended) but never shrinks.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable builds a Table from raw sheet values (header first). Each data row
// is right-padded with empty strings or truncated to the header width.
func NewTable(values [][]string) *Table {
	if len(values) == 0 {
		return &Table{}
	}
	headers := values[0]
	rows := make([][]string, 0, len(values)-1)
	for _, r := range values[1:] {
		row := make([]string, len(headers))
		copy(row, r)
		rows = append(rows, row)
	}
	return &Table{Headers: headers, Rows: rows}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the positional index of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Headers {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// Cell returns the value at (row, column name), or "" if the column is absent.
func (t *Table) Cell(row int, name string) string {
	idx, ok := t.ColumnIndex(name)
	if !ok || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][idx]
}

// SetCell writes a value at (row, column name). Unknown columns are ignored.
func (t *Table) SetCell(row int, name, value string) {
	idx, ok := t.ColumnIndex(name)
	if !ok || row < 0 || row >= len(t.Rows) {
		return
	}
	t.Rows[row][idx] = value
}

// Column returns the full value sequence of a named column, excluding the
// header. Returns nil if the column is absent.
func (t *Table) Column(name string) []string {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values
}

// AddColumn appends a new empty-valued column. No-op if it already exists.
func (t *Table) AddColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Headers = append(t.Headers, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
}

// EnsureColumns appends any of the named columns that are missing.
func (t *Table) EnsureColumns(names ...string) {
	for _, name := range names {
		t.AddColumn(name)
	}
}

// columnLetter converts a 1-based column index to its bijective base-26
// letter form: 1 -> A, 26 -> Z, 27 -> AA.
func columnLetter(n int) string {
	result := ""
	for n > 0 {
		n--
		result = string(rune('A'+n%26)) + result
		n /= 26
	}
	return result
}
