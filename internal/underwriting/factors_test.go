package underwriting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mortgage-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

var testNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

func newTestCalculator() *Calculator {
	return NewCalculatorAt(DefaultScoringThresholds(), fixedClock)
}

func createStrongSnapshot() *models.ApplicationSnapshot {
	return &models.ApplicationSnapshot{
		ID:                  "app-001",
		ApplicantID:         "applicant-001",
		CreditScore:         750,
		MonthlyIncome:       10000,
		MonthlyDebtPayments: 2000,
		LoanAmount:          375000,
		PropertyValue:       500000,
		EmploymentHistory: []models.EmploymentRecord{
			{
				Employer:  "Acme Corp",
				Position:  "Engineer",
				StartDate: testNow.AddDate(-6, 0, 0),
				Current:   true,
			},
		},
		Assets: []models.Asset{
			{Type: "checking", Value: 25000},
			{Type: "savings", Value: 35000},
		},
		Documents: []models.DocumentRef{
			{ID: "doc-001", Status: models.DocumentStatusVerified},
		},
	}
}

func createWeakSnapshot() *models.ApplicationSnapshot {
	return &models.ApplicationSnapshot{
		ID:                  "app-002",
		ApplicantID:         "applicant-002",
		CreditScore:         580,
		MonthlyIncome:       4000,
		MonthlyDebtPayments: 1800,
		LoanAmount:          388000,
		PropertyValue:       400000,
		EmploymentHistory:   nil,
		Assets:              nil,
		Documents:           nil,
	}
}

func impactByName(t *testing.T, factors []RiskFactor, name FactorName) Impact {
	t.Helper()
	for _, f := range factors {
		if f.Name == name {
			return f.Impact
		}
	}
	t.Fatalf("factor %s not found", name)
	return ""
}

// ==========================
// Core Functionality Tests
// ==========================

func TestCalculator_ComputeFactors_FixedOrder(t *testing.T) {
	calc := newTestCalculator()

	factors := calc.ComputeFactors(createStrongSnapshot())

	assert.Len(t, factors, len(FactorOrder))
	for i, name := range FactorOrder {
		assert.Equal(t, name, factors[i].Name)
	}
}

func TestCalculator_ComputeFactors_StrongApplicant(t *testing.T) {
	calc := newTestCalculator()

	factors := calc.ComputeFactors(createStrongSnapshot())

	for _, f := range factors {
		assert.Equal(t, ImpactLow, f.Impact, "factor %s", f.Name)
		assert.NotEmpty(t, f.Value)
		assert.NotEmpty(t, f.Description)
	}
}

func TestCalculator_ComputeFactors_WeakApplicant(t *testing.T) {
	calc := newTestCalculator()

	factors := calc.ComputeFactors(createWeakSnapshot())

	assert.Len(t, factors, 5)
	for _, f := range factors {
		assert.Equal(t, ImpactHigh, f.Impact, "factor %s", f.Name)
	}
}

func TestCalculator_ComputeFactors_MissingDataSurfacesAsHigh(t *testing.T) {
	calc := newTestCalculator()

	snapshot := createStrongSnapshot()
	snapshot.CreditScore = 0
	snapshot.EmploymentHistory = nil

	factors := calc.ComputeFactors(snapshot)

	credit := factors[2]
	assert.Equal(t, FactorCreditScore, credit.Name)
	assert.Equal(t, ImpactHigh, credit.Impact)
	assert.Equal(t, "0", credit.Value)
	assert.Equal(t, "No credit score on file", credit.Description)

	employment := factors[3]
	assert.Equal(t, FactorEmploymentStability, employment.Name)
	assert.Equal(t, ImpactHigh, employment.Impact)
	assert.Equal(t, "0 years", employment.Value)
}

// ==========================
// Ratio Tests
// ==========================

func TestCalculator_DebtToIncomeRatio(t *testing.T) {
	calc := newTestCalculator()

	tests := []struct {
		name     string
		income   float64
		debt     float64
		expected float64
	}{
		{"typical ratio", 10000, 2000, 20},
		{"zero income is worst case", 0, 2000, 100},
		{"negative income is worst case", -1, 2000, 100},
		{"zero debt", 10000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := &models.ApplicationSnapshot{
				MonthlyIncome:       tt.income,
				MonthlyDebtPayments: tt.debt,
			}
			assert.InDelta(t, tt.expected, calc.DebtToIncomeRatio(snapshot), 0.001)
		})
	}
}

func TestCalculator_LoanToValueRatio(t *testing.T) {
	calc := newTestCalculator()

	tests := []struct {
		name     string
		loan     float64
		property float64
		expected float64
	}{
		{"typical ratio", 375000, 500000, 75},
		{"zero property value is worst case", 375000, 0, 100},
		{"loan above value", 110000, 100000, 110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := &models.ApplicationSnapshot{
				LoanAmount:    tt.loan,
				PropertyValue: tt.property,
			}
			assert.InDelta(t, tt.expected, calc.LoanToValueRatio(snapshot), 0.001)
		})
	}
}

func TestCalculator_ReserveRatio_ZeroLoanDoesNotDivideByZero(t *testing.T) {
	calc := newTestCalculator()

	snapshot := &models.ApplicationSnapshot{
		LoanAmount: 0,
		Assets:     []models.Asset{{Type: "savings", Value: 500}},
	}

	assert.InDelta(t, 500, calc.ReserveRatio(snapshot), 0.001)
}

func TestCalculator_EmploymentYears(t *testing.T) {
	calc := newTestCalculator()

	snapshot := &models.ApplicationSnapshot{
		EmploymentHistory: []models.EmploymentRecord{
			{Employer: "Current Corp", StartDate: testNow.Add(-3 * 365 * 24 * time.Hour)},
			{Employer: "Former Corp", StartDate: testNow.Add(-10 * 365 * 24 * time.Hour)},
		},
	}

	// Only the most recent employer counts.
	assert.InDelta(t, 3, calc.EmploymentYears(snapshot), 0.001)
}

// ==========================
// Threshold Boundary Tests
// ==========================

func TestCalculator_ImpactBoundaries(t *testing.T) {
	calc := newTestCalculator()

	tests := []struct {
		name     string
		mutate   func(s *models.ApplicationSnapshot)
		factor   FactorName
		expected Impact
	}{
		{
			name: "DTI exactly at high threshold stays medium",
			mutate: func(s *models.ApplicationSnapshot) {
				s.MonthlyIncome = 10000
				s.MonthlyDebtPayments = 4000
			},
			factor:   FactorDebtToIncome,
			expected: ImpactMedium,
		},
		{
			name: "DTI just above high threshold",
			mutate: func(s *models.ApplicationSnapshot) {
				s.MonthlyIncome = 10000
				s.MonthlyDebtPayments = 4050
			},
			factor:   FactorDebtToIncome,
			expected: ImpactHigh,
		},
		{
			name: "DTI exactly at medium threshold stays low",
			mutate: func(s *models.ApplicationSnapshot) {
				s.MonthlyIncome = 10000
				s.MonthlyDebtPayments = 3600
			},
			factor:   FactorDebtToIncome,
			expected: ImpactLow,
		},
		{
			name: "LTV exactly at high threshold stays medium",
			mutate: func(s *models.ApplicationSnapshot) {
				s.LoanAmount = 450000
				s.PropertyValue = 500000
			},
			factor:   FactorLoanToValue,
			expected: ImpactMedium,
		},
		{
			name: "credit at high threshold is medium",
			mutate: func(s *models.ApplicationSnapshot) {
				s.CreditScore = 660
			},
			factor:   FactorCreditScore,
			expected: ImpactMedium,
		},
		{
			name: "credit at medium threshold is low",
			mutate: func(s *models.ApplicationSnapshot) {
				s.CreditScore = 720
			},
			factor:   FactorCreditScore,
			expected: ImpactLow,
		},
		{
			name: "credit below high threshold",
			mutate: func(s *models.ApplicationSnapshot) {
				s.CreditScore = 659
			},
			factor:   FactorCreditScore,
			expected: ImpactHigh,
		},
		{
			name: "short tenure is high impact",
			mutate: func(s *models.ApplicationSnapshot) {
				s.EmploymentHistory = []models.EmploymentRecord{
					{Employer: "New Corp", StartDate: testNow.Add(-365 * 24 * time.Hour)},
				}
			},
			factor:   FactorEmploymentStability,
			expected: ImpactHigh,
		},
		{
			name: "mid tenure is medium impact",
			mutate: func(s *models.ApplicationSnapshot) {
				s.EmploymentHistory = []models.EmploymentRecord{
					{Employer: "Mid Corp", StartDate: testNow.Add(-3 * 365 * 24 * time.Hour)},
				}
			},
			factor:   FactorEmploymentStability,
			expected: ImpactMedium,
		},
		{
			name: "thin reserves are high impact",
			mutate: func(s *models.ApplicationSnapshot) {
				s.LoanAmount = 375000
				s.Assets = []models.Asset{{Type: "checking", Value: 9000}}
			},
			factor:   FactorAssetStrength,
			expected: ImpactHigh,
		},
		{
			name: "moderate reserves are medium impact",
			mutate: func(s *models.ApplicationSnapshot) {
				s.LoanAmount = 375000
				s.Assets = []models.Asset{{Type: "checking", Value: 15000}}
			},
			factor:   FactorAssetStrength,
			expected: ImpactMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := createStrongSnapshot()
			tt.mutate(snapshot)

			factors := calc.ComputeFactors(snapshot)
			assert.Equal(t, tt.expected, impactByName(t, factors, tt.factor))
		})
	}
}
