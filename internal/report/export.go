package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"

	"neonspend/internal/core"
)

// ErrNoRows signals that an export was requested for an empty subset.
// Callers surface this instead of producing an empty file.
var ErrNoRows = errors.New("no expenses to export")

// Row is one export line in display form.
type Row struct {
	Title    string `json:"title" yaml:"title"`
	Category string `json:"category" yaml:"category"`
	Date     string `json:"date" yaml:"date"`
	Amount   string `json:"amount" yaml:"amount"`
}

// Encoder serializes export rows into a concrete format.
type Encoder interface {
	EncodeRows(rows []Row) ([]byte, error)
	ContentType() string
	Extension() string
}

// Export converts expenses to display rows and encodes them.
// Returns ErrNoRows when the subset is empty.
func Export(items []core.Expense, enc Encoder) ([]byte, error) {
	if len(items) == 0 {
		return nil, ErrNoRows
	}
	rows := make([]Row, 0, len(items))
	for _, e := range items {
		rows = append(rows, Row{
			Title:    e.Title,
			Category: e.Category.Display(),
			Date:     e.Date.Display(),
			Amount:   e.Amount.Display(),
		})
	}
	return enc.EncodeRows(rows)
}

// CSVEncoder writes the spreadsheet export format. Fields containing
// delimiters get standard RFC 4180 quoting.
type CSVEncoder struct{}

func (CSVEncoder) EncodeRows(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Title", "Category", "Date", "Amount (INR)"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Title, r.Category, r.Date, r.Amount}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (CSVEncoder) ContentType() string { return "text/csv; charset=utf-8" }
func (CSVEncoder) Extension() string   { return "csv" }

// JSONEncoder emits the rows as an indented JSON array.
type JSONEncoder struct{}

func (JSONEncoder) EncodeRows(rows []Row) ([]byte, error) {
	return json.MarshalIndent(rows, "", "  ")
}

func (JSONEncoder) ContentType() string { return "application/json" }
func (JSONEncoder) Extension() string   { return "json" }

// YAMLEncoder emits the rows as a YAML sequence.
type YAMLEncoder struct{}

func (YAMLEncoder) EncodeRows(rows []Row) ([]byte, error) {
	return yaml.Marshal(rows)
}

func (YAMLEncoder) ContentType() string { return "application/yaml" }
func (YAMLEncoder) Extension() string   { return "yaml" }

// EncoderFor maps a format name to its encoder. Unknown formats default
// to CSV.
func EncoderFor(format string) Encoder {
	switch format {
	case "json":
		return JSONEncoder{}
	case "yaml", "yml":
		return YAMLEncoder{}
	default:
		return CSVEncoder{}
	}
}
