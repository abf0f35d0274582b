package distribution

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const delimiter = ","

// requiredColumns are matched as substrings of the lowercased header fields.
var requiredColumns = []string{"firstname", "phone", "notes"}

const (
	ParserModeNaive  = "naive"
	ParserModeQuoted = "quoted"
)

// Parser turns delimited text into records.
type Parser interface {
	Parse(content string) ([]Record, error)
}

// NewParser returns the parser for mode. Unknown modes get the naive parser.
func NewParser(mode string) Parser {
	if strings.EqualFold(strings.TrimSpace(mode), ParserModeQuoted) {
		return QuotedParser{}
	}
	return NaiveParser{}
}

// NaiveParser splits every line on the delimiter. A delimiter inside a quoted
// cell is not escaped and splits the cell.
type NaiveParser struct{}

// Parse implements Parser.
func (NaiveParser) Parse(content string) ([]Record, error) {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, formatError("empty input")
	}

	if err := checkHeader(strings.Split(lines[0], delimiter)); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if rec, ok := toRecord(strings.Split(line, delimiter)); ok {
			records = append(records, rec)
		}
	}
	return nonEmpty(records)
}

// QuotedParser tokenizes with encoding/csv so quoted cells may contain the
// delimiter. Header and row rules match NaiveParser.
type QuotedParser struct{}

// Parse implements Parser.
func (QuotedParser) Parse(content string) ([]Record, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, formatError(fmt.Sprintf("malformed csv: %v", err))
		}
		if isBlankLine(row) {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, formatError("empty input")
	}

	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if rec, ok := toRecord(row); ok {
			records = append(records, rec)
		}
	}
	return nonEmpty(records)
}

func checkHeader(fields []string) error {
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = strings.ToLower(strings.TrimSpace(f))
	}

	var missing []string
	for _, col := range requiredColumns {
		found := false
		for _, h := range header {
			if strings.Contains(h, col) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return formatError(fmt.Sprintf("CSV must contain FirstName, Phone, and Notes columns (missing: %s)", strings.Join(missing, ", ")))
	}
	return nil
}

// toRecord maps the first three cells positionally. Rows with fewer than three
// cells are dropped.
func toRecord(fields []string) (Record, bool) {
	if len(fields) < 3 {
		return Record{}, false
	}
	return Record{
		FirstName: cleanCell(fields[0]),
		Phone:     cleanCell(fields[1]),
		Notes:     cleanCell(fields[2]),
	}, true
}

func cleanCell(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), `"`, "")
}

// isBlankLine reports a whitespace-only line. Rows of empty cells such as
// ",," are kept, as NaiveParser keeps them.
func isBlankLine(row []string) bool {
	return len(row) == 1 && strings.TrimSpace(row[0]) == ""
}

func nonEmpty(records []Record) ([]Record, error) {
	if len(records) == 0 {
		return nil, formatError("No valid data found in the file")
	}
	return records, nil
}
