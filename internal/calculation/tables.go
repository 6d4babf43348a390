package calculation

import (
	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
)

// Built-in 2021 tables. These are the fallback when no rules file is supplied.

// FederalBrackets2021 returns the 2021 federal income tax table
func FederalBrackets2021() domain.BracketTable {
	return domain.BracketTable{
		Name: "federal",
		Brackets: []domain.TaxBracket{
			{Min: decimal.NewFromInt(13808), Max: decimalPtr(decimal.NewFromInt(49020)), Rate: decimal.RequireFromString("0.15")},
			{Min: decimal.NewFromInt(49020), Max: decimalPtr(decimal.NewFromInt(98040)), Rate: decimal.RequireFromString("0.205")},
			{Min: decimal.NewFromInt(98040), Max: decimalPtr(decimal.NewFromInt(151978)), Rate: decimal.RequireFromString("0.26")},
			{Min: decimal.NewFromInt(151978), Max: decimalPtr(decimal.NewFromInt(216511)), Rate: decimal.RequireFromString("0.29")},
			{Min: decimal.NewFromInt(216511), Rate: decimal.RequireFromString("0.33")},
		},
	}
}

// OntarioBrackets2021 returns the 2021 Ontario income tax table
func OntarioBrackets2021() domain.BracketTable {
	return domain.BracketTable{
		Name: "ontario",
		Brackets: []domain.TaxBracket{
			{Min: decimal.NewFromInt(10880), Max: decimalPtr(decimal.NewFromInt(45142)), Rate: decimal.RequireFromString("0.0505")},
			{Min: decimal.NewFromInt(45142), Max: decimalPtr(decimal.NewFromInt(90287)), Rate: decimal.RequireFromString("0.0915")},
			{Min: decimal.NewFromInt(90287), Max: decimalPtr(decimal.NewFromInt(150000)), Rate: decimal.RequireFromString("0.1116")},
			{Min: decimal.NewFromInt(150000), Max: decimalPtr(decimal.NewFromInt(220000)), Rate: decimal.RequireFromString("0.1216")},
			{Min: decimal.NewFromInt(220000), Rate: decimal.RequireFromString("0.1316")},
		},
	}
}

// OntarioSurtax2021 returns the 2021 Ontario surtax thresholds
func OntarioSurtax2021() domain.SurtaxTable {
	return domain.SurtaxTable{
		Name: "ontario_surtax",
		Brackets: []domain.SurtaxBracket{
			{Threshold: decimal.NewFromInt(4874), Rate: decimal.RequireFromString("0.20")},
			{Threshold: decimal.NewFromInt(6237), Rate: decimal.RequireFromString("0.36")},
		},
	}
}

// PensionPlan2021 returns the 2021 CPP contribution rule
func PensionPlan2021() domain.DeductionRule {
	return domain.DeductionRule{
		Name:            "canada_pension_plan",
		ExemptionFloor:  decimal.NewFromInt(3500),
		EarningsCeiling: decimal.NewFromInt(61600),
		Rate:            decimal.RequireFromString("0.0545"),
		MaxContribution: decimalPtr(decimal.RequireFromString("3166.45")),
	}
}

// EmploymentInsurance2021 returns the 2021 EI premium rule
func EmploymentInsurance2021() domain.DeductionRule {
	return domain.DeductionRule{
		Name:            "employment_insurance",
		EarningsCeiling: decimal.NewFromInt(56300),
		Rate:            decimal.RequireFromString("0.0158"),
	}
}

// DefaultRules2021 returns the complete built-in 2021 rule set
func DefaultRules2021() domain.TaxRules {
	return domain.TaxRules{
		Metadata: domain.RulesMetadata{
			DataYear:    2021,
			Province:    "ON",
			Description: "Federal and Ontario personal income tax, CPP and EI for 2021",
		},
		Federal:             FederalBrackets2021(),
		Provincial:          OntarioBrackets2021(),
		ProvincialSurtax:    OntarioSurtax2021(),
		PensionPlan:         PensionPlan2021(),
		EmploymentInsurance: EmploymentInsurance2021(),
	}
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
