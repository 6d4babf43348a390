package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/ontax/internal/domain"
)

// CSVFormatter writes one field,value row per breakdown field
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(b *domain.TaxBreakdown) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"field", "value"}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"income", b.Income.StringFixed(2)}); err != nil {
		return nil, err
	}
	for _, f := range domain.AllFields() {
		value := ""
		if v, err := b.Value(f); err == nil {
			if f.IsRate() {
				value = v.StringFixed(4)
			} else {
				value = v.StringFixed(2)
			}
		}
		if err := w.Write([]string{f.String(), value}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
