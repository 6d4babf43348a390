package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/ontax/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed rules/ontario_2021.yaml
var defaultRulesYAML []byte

// InputParser handles parsing of tax rules files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadDefault returns the built-in 2021 rules
func (ip *InputParser) LoadDefault() (*domain.TaxRules, error) {
	rules, err := ip.Parse(defaultRulesYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in rules: %w", err)
	}
	return rules, nil
}

// LoadFromFile loads rules from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Load returns the rules in filename, or the built-in rules when filename is empty
func (ip *InputParser) Load(filename string) (*domain.TaxRules, error) {
	if filename == "" {
		return ip.LoadDefault()
	}
	return ip.LoadFromFile(filename)
}

// Parse decodes and validates YAML rules. Unknown keys are rejected.
func (ip *InputParser) Parse(data []byte) (*domain.TaxRules, error) {
	var rules domain.TaxRules
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML: %w: rules document is empty", domain.ErrConfiguration)
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}

	return &rules, nil
}

// ValidateRules validates the loaded rules
func (ip *InputParser) ValidateRules(rules *domain.TaxRules) error {
	if rules.Metadata.DataYear != 0 && (rules.Metadata.DataYear < 1917 || rules.Metadata.DataYear > 2100) {
		return fmt.Errorf("%w: data year %d is out of range", domain.ErrConfiguration, rules.Metadata.DataYear)
	}
	return rules.Validate()
}
