// Package export renders transaction lists as downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"financetracker/internal/models"

	"gopkg.in/yaml.v3"
)

// Encoder turns a list of transactions into a file body.
type Encoder interface {
	Encode(list []models.Transaction) ([]byte, error)
	ContentType() string
	Extension() string
}

// row is the flat record shared by every format. Amount keeps two
// decimals as text so no format loses precision.
type row struct {
	ID          int64  `json:"id" yaml:"id"`
	Date        string `json:"date" yaml:"date"`
	Type        string `json:"type" yaml:"type"`
	Category    string `json:"category" yaml:"category"`
	Amount      string `json:"amount" yaml:"amount"`
	Description string `json:"description" yaml:"description"`
}

func toRows(list []models.Transaction) []row {
	out := make([]row, 0, len(list))
	for _, t := range list {
		out = append(out, row{
			ID:          t.ID,
			Date:        t.Date.Format(models.DateLayout),
			Type:        string(t.Type),
			Category:    t.Category,
			Amount:      t.Amount.StringFixed(2),
			Description: t.Description,
		})
	}
	return out
}

// ForFormat picks the encoder for csv, json or yaml.
func ForFormat(format string) (Encoder, error) {
	switch format {
	case "", "csv":
		return CSVEncoder{}, nil
	case "json":
		return JSONEncoder{}, nil
	case "yaml", "yml":
		return YAMLEncoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

var csvHeader = []string{"id", "date", "type", "category", "amount", "description"}

type CSVEncoder struct{}

func (CSVEncoder) Encode(list []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range toRows(list) {
		rec := []string{
			strconv.FormatInt(r.ID, 10),
			r.Date,
			r.Type,
			r.Category,
			r.Amount,
			r.Description,
		}
		if err := w.Write(rec); err != nil {
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

type JSONEncoder struct{}

func (JSONEncoder) Encode(list []models.Transaction) ([]byte, error) {
	return json.MarshalIndent(toRows(list), "", "  ")
}

func (JSONEncoder) ContentType() string { return "application/json" }
func (JSONEncoder) Extension() string   { return "json" }

type YAMLEncoder struct{}

func (YAMLEncoder) Encode(list []models.Transaction) ([]byte, error) {
	return yaml.Marshal(toRows(list))
}

func (YAMLEncoder) ContentType() string { return "application/yaml" }
func (YAMLEncoder) Extension() string   { return "yaml" }
