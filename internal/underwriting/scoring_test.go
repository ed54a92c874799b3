package underwriting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mortgage-workers/internal/models"
)

func newTestScorer() *Scorer {
	return NewScorerAt(fixedClock)
}

func TestScorer_BuildAnalysis_StrongApplicant(t *testing.T) {
	calc := newTestCalculator()
	scorer := newTestScorer()
	snapshot := createStrongSnapshot()

	analysis := scorer.BuildAnalysis(snapshot, calc.ComputeFactors(snapshot))

	assert.Equal(t, "app-001", analysis.ApplicationID)
	assert.Equal(t, 100, analysis.RiskScore)
	assert.Equal(t, 100, analysis.Confidence)
	assert.Len(t, analysis.Factors, 5)
	assert.Empty(t, analysis.Recommendations)
	assert.Empty(t, analysis.Warnings)
	assert.Equal(t, baselineConditions, analysis.Conditions)
	assert.Equal(t, testNow, analysis.Timestamp)
}

func TestScorer_BuildAnalysis_WeakApplicant(t *testing.T) {
	calc := newTestCalculator()
	scorer := newTestScorer()
	snapshot := createWeakSnapshot()

	analysis := scorer.BuildAnalysis(snapshot, calc.ComputeFactors(snapshot))

	// Five high-impact factors exhaust the score.
	assert.Equal(t, 0, analysis.RiskScore)

	// Credit and income are present; employment, assets and documents are not.
	assert.Equal(t, 65, analysis.Confidence)

	assert.NotEmpty(t, analysis.Recommendations)
	assert.Contains(t, analysis.Recommendations, "Consider debt consolidation to reduce monthly obligations")
	assert.Contains(t, analysis.Recommendations, "Work on improving credit score before proceeding")

	assert.Len(t, analysis.Warnings, 7)
	assert.Contains(t, analysis.Warnings, "No supporting documents attached to the application")
	assert.Contains(t, analysis.Warnings, "Credit score 580 is below the minimum underwriting threshold of 620")
}

func TestScorer_RiskScore_Penalties(t *testing.T) {
	scorer := newTestScorer()

	tests := []struct {
		name     string
		impacts  []Impact
		expected int
	}{
		{"all low", []Impact{ImpactLow, ImpactLow, ImpactLow, ImpactLow, ImpactLow}, 100},
		{"one medium", []Impact{ImpactMedium, ImpactLow, ImpactLow, ImpactLow, ImpactLow}, 90},
		{"one high", []Impact{ImpactHigh, ImpactLow, ImpactLow, ImpactLow, ImpactLow}, 80},
		{"mixed", []Impact{ImpactHigh, ImpactMedium, ImpactMedium, ImpactLow, ImpactLow}, 60},
		{"all high clamps at zero", []Impact{ImpactHigh, ImpactHigh, ImpactHigh, ImpactHigh, ImpactHigh}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factors := make([]RiskFactor, len(tt.impacts))
			for i, impact := range tt.impacts {
				factors[i] = RiskFactor{Name: FactorOrder[i], Impact: impact}
			}
			assert.Equal(t, tt.expected, scorer.riskScore(factors))
		})
	}
}

func TestScorer_Confidence_Deductions(t *testing.T) {
	scorer := newTestScorer()

	tests := []struct {
		name     string
		mutate   func(s *models.ApplicationSnapshot)
		expected int
	}{
		{"complete snapshot", func(s *models.ApplicationSnapshot) {}, 100},
		{"missing credit score", func(s *models.ApplicationSnapshot) { s.CreditScore = 0 }, 80},
		{"missing income", func(s *models.ApplicationSnapshot) { s.MonthlyIncome = 0 }, 85},
		{"missing employment", func(s *models.ApplicationSnapshot) { s.EmploymentHistory = nil }, 85},
		{"missing assets", func(s *models.ApplicationSnapshot) { s.Assets = nil }, 90},
		{"missing documents", func(s *models.ApplicationSnapshot) { s.Documents = nil }, 90},
		{
			name: "everything missing",
			mutate: func(s *models.ApplicationSnapshot) {
				s.CreditScore = 0
				s.MonthlyIncome = 0
				s.EmploymentHistory = nil
				s.Assets = nil
				s.Documents = nil
			},
			expected: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := createStrongSnapshot()
			tt.mutate(snapshot)
			assert.Equal(t, tt.expected, scorer.confidence(snapshot))
		})
	}
}

func TestScorer_Conditions_AccumulateForElevatedFactors(t *testing.T) {
	scorer := newTestScorer()

	factors := []RiskFactor{
		{Name: FactorDebtToIncome, Impact: ImpactMedium},
		{Name: FactorLoanToValue, Impact: ImpactHigh},
		{Name: FactorCreditScore, Impact: ImpactLow},
		{Name: FactorEmploymentStability, Impact: ImpactHigh},
		{Name: FactorAssetStrength, Impact: ImpactLow},
	}

	conditions := scorer.conditions(factors)

	// Baseline plus DTI and employment conditions; LTV and credit carry none.
	assert.Len(t, conditions, len(baselineConditions)+4)
	assert.Contains(t, conditions, "Verification of employment required")
	assert.Contains(t, conditions, "Letter of explanation for existing debt obligations")
	assert.Contains(t, conditions, "Written verification of employment covering the last two years")
}

func TestScorer_Warnings_HighFactorFormat(t *testing.T) {
	scorer := newTestScorer()
	snapshot := createStrongSnapshot()

	factors := []RiskFactor{
		{Name: FactorCreditScore, Impact: ImpactHigh, Description: "Credit score is 600"},
	}

	warnings := scorer.warnings(snapshot, factors)

	assert.Equal(t, []string{"High risk factor: credit_score - Credit score is 600"}, warnings)
}

func TestScorer_Warnings_MissingCreditScoreSkipsThresholdWarning(t *testing.T) {
	calc := newTestCalculator()
	scorer := newTestScorer()
	snapshot := createStrongSnapshot()
	snapshot.CreditScore = 0

	analysis := scorer.BuildAnalysis(snapshot, calc.ComputeFactors(snapshot))

	// The absent score is reported through the high-impact credit factor,
	// not the below-threshold message.
	assert.Contains(t, analysis.Warnings, "High risk factor: credit_score - No credit score on file")
	for _, w := range analysis.Warnings {
		assert.NotContains(t, w, "below the minimum underwriting threshold")
	}
}
