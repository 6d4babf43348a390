package output

import (
	"encoding/json"

	"github.com/rgehrsitz/ontax/internal/domain"
)

// JSONFormatter formats a breakdown as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (JSONFormatter) Name() string { return "json" }

func (jf JSONFormatter) Format(b *domain.TaxBreakdown) ([]byte, error) {
	if jf.Pretty {
		return json.MarshalIndent(b, "", "  ")
	}
	return json.Marshal(b)
}
