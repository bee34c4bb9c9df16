package truth

import "fmt"

// Bit is a tri-state table cell: on, off, or don't-care. Parsed table rows
// only ever contain On and Off; DontCare exists for displaying merged product
// terms, where a variable has been eliminated.
type Bit int

const (
	Off Bit = iota
	On
	DontCare
)

// BitOf converts a bool to the corresponding definite Bit.
func BitOf(b bool) Bit {
	if b {
		return On
	}
	return Off
}

func (b Bit) String() string {
	switch b {
	case On:
		return "1"
	case Off:
		return "0"
	case DontCare:
		return "x"
	}
	return "?"
}

// Entry is a single truth-table row: an input bit pattern and the output
// vector it maps to.
type Entry struct {
	Input  []Bit
	Output []bool
}

// Table is an ordered truth table. It is treated as immutable once
// Validate has accepted it.
type Table struct {
	Entries []Entry
}

// New builds a table from parallel input/output rows. Mostly a test and
// embedding convenience; CSV ingestion goes through ParseCSV.
func New(inputs, outputs [][]bool) *Table {
	if len(inputs) != len(outputs) {
		panic(fmt.Sprintf("truth.New: %d input rows vs %d output rows", len(inputs), len(outputs)))
	}
	t := &Table{Entries: make([]Entry, len(inputs))}
	for i := range inputs {
		in := make([]Bit, len(inputs[i]))
		for j, b := range inputs[i] {
			in[j] = BitOf(b)
		}
		out := make([]bool, len(outputs[i]))
		copy(out, outputs[i])
		t.Entries[i] = Entry{Input: in, Output: out}
	}
	return t
}

// Inputs returns the number of input bits per row (0 for an empty table).
func (t *Table) Inputs() int {
	if len(t.Entries) == 0 {
		return 0
	}
	return len(t.Entries[0].Input)
}

// Outputs returns the number of output bits per row (0 for an empty table).
func (t *Table) Outputs() int {
	if len(t.Entries) == 0 {
		return 0
	}
	return len(t.Entries[0].Output)
}

// StructuralError reports a table that violates the structural invariants
// required by minimization: complete row count, uniform vector widths,
// unique and fully specified input patterns.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return "truth table: " + e.Reason
}

func structuralf(format string, args ...interface{}) error {
	return &StructuralError{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks that the table is a complete truth table: exactly 2^B
// rows for B input bits, uniform input and output widths, no duplicate
// input patterns, and no don't-care cells in any input row.
func (t *Table) Validate() error {
	if len(t.Entries) == 0 {
		return structuralf("empty table")
	}
	nin := len(t.Entries[0].Input)
	nout := len(t.Entries[0].Output)
	if nin == 0 {
		return structuralf("rows have no input bits")
	}
	if nin > 30 {
		// 2^31 rows will not fit in memory anyway.
		return structuralf("%d input bits is beyond the supported table size", nin)
	}
	seen := make(map[uint64]int, len(t.Entries))
	for i, e := range t.Entries {
		if len(e.Input) != nin {
			return structuralf("row %d has %d input bits, want %d", i, len(e.Input), nin)
		}
		if len(e.Output) != nout {
			return structuralf("row %d has %d output bits, want %d", i, len(e.Output), nout)
		}
		key, err := packInput(e.Input)
		if err != nil {
			return structuralf("row %d: %v", i, err)
		}
		if prev, dup := seen[key]; dup {
			return structuralf("rows %d and %d have the same input pattern %s", prev, i, patternString(e.Input))
		}
		seen[key] = i
	}
	if want := 1 << uint(nin); len(t.Entries) != want {
		return structuralf("%d rows for %d input bits, want %d", len(t.Entries), nin, want)
	}
	return nil
}

// NotFoundError reports a Lookup for an input pattern the table does not
// contain.
type NotFoundError struct {
	Pattern string
}

func (e *NotFoundError) Error() string {
	return "truth table: no entry for input " + e.Pattern
}

// Lookup returns the output vector for an input pattern. Unmatched patterns
// yield a NotFoundError rather than a panic.
func (t *Table) Lookup(input []Bit) ([]bool, error) {
	for _, e := range t.Entries {
		if bitsEqual(e.Input, input) {
			out := make([]bool, len(e.Output))
			copy(out, e.Output)
			return out, nil
		}
	}
	return nil, &NotFoundError{Pattern: patternString(input)}
}

func bitsEqual(a, b []Bit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// packInput encodes a fully specified input row as a bit-packed key.
// Validate has already bounded arity well below 64 via the 2^B row count.
func packInput(input []Bit) (uint64, error) {
	if len(input) > 64 {
		return 0, fmt.Errorf("input width %d exceeds 64 bits", len(input))
	}
	var key uint64
	for i, b := range input {
		switch b {
		case On:
			key |= 1 << uint(i)
		case Off:
		default:
			return 0, fmt.Errorf("don't-care at input bit %d", i)
		}
	}
	return key, nil
}

func patternString(input []Bit) string {
	s := make([]byte, len(input))
	for i, b := range input {
		s[i] = b.String()[0]
	}
	return string(s)
}
