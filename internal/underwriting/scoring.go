package underwriting

import (
	"fmt"
	"time"

	"mortgage-workers/internal/models"
)

const (
	baseScore      = 100
	highPenalty    = 20
	mediumPenalty  = 10
	baseConfidence = 100
)

// recommendationTable maps each factor to the fixed suggestions appended
// when that factor comes back high impact.
var recommendationTable = map[FactorName][]string{
	FactorDebtToIncome: {
		"Consider debt consolidation to reduce monthly obligations",
		"Look for opportunities to increase documented income",
	},
	FactorLoanToValue: {
		"A larger down payment would reduce the loan-to-value ratio",
		"Consider a lower loan amount or a less expensive property",
	},
	FactorCreditScore: {
		"Work on improving credit score before proceeding",
		"Review credit report for errors or disputable items",
	},
	FactorEmploymentStability: {
		"Provide additional documentation of income stability",
	},
	FactorAssetStrength: {
		"Build liquid reserves before closing",
		"Document any additional assets not yet on the application",
	},
}

// conditionTable maps factors to the conditions appended when that factor is
// medium or high impact.
var conditionTable = map[FactorName][]string{
	FactorDebtToIncome: {
		"Letter of explanation for existing debt obligations",
		"Most recent statements for all debt accounts",
	},
	FactorEmploymentStability: {
		"Written verification of employment covering the last two years",
		"Explanation letter for any employment gaps",
	},
	FactorAssetStrength: {
		"Two months of statements for all asset accounts",
		"Source documentation for any large recent deposits",
	},
}

// baselineConditions are attached to every analysis regardless of risk.
var baselineConditions = []string{
	"Verification of employment required",
	"Verification of assets required",
	"Property appraisal required",
}

// Scorer aggregates risk factors into a scored analysis with
// recommendations, warnings and conditions. It is a pure aggregation over
// the factor list plus the original snapshot.
type Scorer struct {
	now func() time.Time
}

func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// NewScorerAt returns a Scorer with a fixed clock.
func NewScorerAt(now func() time.Time) *Scorer {
	return &Scorer{now: now}
}

// BuildAnalysis derives the complete underwriting output for one run.
func (s *Scorer) BuildAnalysis(snapshot *models.ApplicationSnapshot, factors []RiskFactor) *UnderwritingAnalysis {
	analysis := &UnderwritingAnalysis{
		ApplicationID:   snapshot.ID,
		RiskScore:       s.riskScore(factors),
		Confidence:      s.confidence(snapshot),
		Factors:         factors,
		Recommendations: s.recommendations(factors),
		Warnings:        s.warnings(snapshot, factors),
		Conditions:      s.conditions(factors),
		Timestamp:       s.now().UTC(),
	}
	return analysis
}

func (s *Scorer) riskScore(factors []RiskFactor) int {
	score := baseScore
	for _, f := range factors {
		switch f.Impact {
		case ImpactHigh:
			score -= highPenalty
		case ImpactMedium:
			score -= mediumPenalty
		}
	}
	return clamp(score, 0, 100)
}

// confidence measures completeness of inputs, independent of risk.
func (s *Scorer) confidence(snapshot *models.ApplicationSnapshot) int {
	confidence := baseConfidence
	if snapshot.CreditScore <= 0 {
		confidence -= 20
	}
	if snapshot.MonthlyIncome <= 0 {
		confidence -= 15
	}
	if len(snapshot.EmploymentHistory) == 0 {
		confidence -= 15
	}
	if len(snapshot.Assets) == 0 {
		confidence -= 10
	}
	if len(snapshot.Documents) == 0 {
		confidence -= 10
	}
	return clamp(confidence, 0, 100)
}

func (s *Scorer) recommendations(factors []RiskFactor) []string {
	recommendations := []string{}
	for _, f := range factors {
		if f.Impact != ImpactHigh {
			continue
		}
		recommendations = append(recommendations, recommendationTable[f.Name]...)
	}
	return recommendations
}

func (s *Scorer) warnings(snapshot *models.ApplicationSnapshot, factors []RiskFactor) []string {
	warnings := []string{}
	for _, f := range factors {
		if f.Impact == ImpactHigh {
			warnings = append(warnings, fmt.Sprintf("High risk factor: %s - %s", f.Name, f.Description))
		}
	}
	if len(snapshot.Documents) == 0 {
		warnings = append(warnings, "No supporting documents attached to the application")
	}
	// A missing credit score already surfaces as the high-impact credit
	// factor warning above; the threshold warning only applies to a score
	// that is present and low.
	if snapshot.CreditScore > 0 && snapshot.CreditScore < MinimumCreditScore {
		warnings = append(warnings, fmt.Sprintf("Credit score %d is below the minimum underwriting threshold of %d",
			snapshot.CreditScore, MinimumCreditScore))
	}
	return warnings
}

func (s *Scorer) conditions(factors []RiskFactor) []string {
	conditions := make([]string, 0, len(baselineConditions))
	conditions = append(conditions, baselineConditions...)

	for _, f := range factors {
		if f.Impact == ImpactLow {
			continue
		}
		conditions = append(conditions, conditionTable[f.Name]...)
	}
	return conditions
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
