package underwriting

import "time"

// Impact is the risk contribution level of a single factor.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// FactorName is the fixed enumeration of risk factor categories. Every
// completed analysis contains exactly one factor per name, in this order.
type FactorName string

const (
	FactorDebtToIncome        FactorName = "debt_to_income"
	FactorLoanToValue         FactorName = "loan_to_value"
	FactorCreditScore         FactorName = "credit_score"
	FactorEmploymentStability FactorName = "employment_stability"
	FactorAssetStrength       FactorName = "asset_strength"
)

// FactorOrder is the fixed computation and output order of the five factors.
var FactorOrder = []FactorName{
	FactorDebtToIncome,
	FactorLoanToValue,
	FactorCreditScore,
	FactorEmploymentStability,
	FactorAssetStrength,
}

// RiskFactor is one named, independently computed dimension of underwriting
// risk. Factors are produced fresh per run and only travel inside an
// UnderwritingAnalysis.
type RiskFactor struct {
	Name        FactorName `json:"name"`
	Impact      Impact     `json:"impact"`
	Value       string     `json:"value"`
	Description string     `json:"description"`
	Threshold   string     `json:"threshold,omitempty"`
}

// UnderwritingAnalysis is the complete output of one risk-assessment run.
// The store retains only the latest analysis per application.
type UnderwritingAnalysis struct {
	ApplicationID   string           `json:"applicationId"`
	RiskScore       int              `json:"riskScore"`
	Confidence      int              `json:"confidence"`
	Factors         []RiskFactor     `json:"factors"`
	Recommendations []string         `json:"recommendations"`
	Warnings        []string         `json:"warnings"`
	Conditions      []string         `json:"conditions"`
	Compliance      ComplianceResult `json:"compliance"`
	Timestamp       time.Time        `json:"timestamp"`
}

// HighImpactCount returns the number of high-impact factors.
func (a *UnderwritingAnalysis) HighImpactCount() int {
	n := 0
	for _, f := range a.Factors {
		if f.Impact == ImpactHigh {
			n++
		}
	}
	return n
}
