package truth

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ParseOptions controls CSV ingestion.
type ParseOptions struct {
	// HeaderRows is the number of leading rows to skip.
	HeaderRows int
	// Inputs is the number of input columns, taken from the LEFT edge of
	// each record.
	Inputs int
	// Outputs is the number of output columns, taken from the RIGHT edge of
	// each record. Spacer columns between inputs and outputs are ignored.
	Outputs int
	// Log receives warnings about malformed cells. Defaults to the standard
	// logrus logger.
	Log logrus.FieldLogger
}

// ParseCSV reads a truth table from CSV. Each record contributes one Entry:
// the leftmost Inputs columns as input bits and the rightmost Outputs
// columns as output bits. A cell that does not parse as an integer counts
// as 0 and emits a warning; any nonzero integer counts as 1. The result is
// not validated; callers run Table.Validate before minimizing.
func ParseCSV(r io.Reader, opts ParseOptions) (*Table, error) {
	if opts.Inputs <= 0 || opts.Outputs <= 0 {
		return nil, errors.Errorf("csv: need positive input (%d) and output (%d) column counts", opts.Inputs, opts.Outputs)
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1 // width is checked per record below

	line := 0
	for i := 0; i < opts.HeaderRows; i++ {
		if _, err := rd.Read(); err != nil {
			if err == io.EOF {
				return nil, errors.Errorf("csv: table ends inside the %d header rows", opts.HeaderRows)
			}
			return nil, errors.Wrap(err, "csv: header")
		}
		line++
	}

	t := &Table{}
	for {
		record, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "csv: line %d", line+1)
		}
		line++
		if len(record) < opts.Inputs+opts.Outputs {
			return nil, errors.Errorf("csv: line %d has %d columns, need at least %d", line, len(record), opts.Inputs+opts.Outputs)
		}

		ent := Entry{
			Input:  make([]Bit, 0, opts.Inputs),
			Output: make([]bool, 0, opts.Outputs),
		}
		for col := 0; col < opts.Inputs; col++ {
			ent.Input = append(ent.Input, BitOf(parseCell(log, record[col], line, col, "input")))
		}
		// The outputs are the rightmost columns, not the columns adjacent
		// to the inputs: tables often carry spacer columns in between.
		for col := len(record) - opts.Outputs; col < len(record); col++ {
			ent.Output = append(ent.Output, parseCell(log, record[col], line, col, "output"))
		}
		t.Entries = append(t.Entries, ent)
	}
	return t, nil
}

// parseCell interprets one CSV cell as a bit. Non-numeric cells count as 0
// with a warning so a stray comment or blank does not abort the run.
func parseCell(log logrus.FieldLogger, cell string, line, col int, kind string) bool {
	v, err := strconv.Atoi(cell)
	if err != nil {
		log.WithFields(logrus.Fields{
			"line":   line,
			"column": col,
		}).Warnf("ignoring %s cell %q, treating as 0", kind, cell)
		return false
	}
	return v != 0
}
