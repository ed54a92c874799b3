package underwriting

import (
	"fmt"

	"mortgage-workers/internal/models"
)

// ComplianceResult is the outcome of the eligibility gate. It is a
// pass/fail check over hard limits, separate from risk scoring.
type ComplianceResult struct {
	Eligible   bool     `json:"eligible"`
	Violations []string `json:"violations"`
	Advisories []string `json:"advisories"`
}

// ComplianceChecker applies the standalone compliance rule set. Its
// thresholds intentionally differ from the scoring thresholds; the two sets
// must never be merged.
type ComplianceChecker struct {
	thresholds ComplianceThresholds
	calculator *Calculator
}

func NewComplianceChecker(thresholds ComplianceThresholds, calculator *Calculator) *ComplianceChecker {
	return &ComplianceChecker{thresholds: thresholds, calculator: calculator}
}

// Evaluate runs the hard eligibility rules against a snapshot.
func (c *ComplianceChecker) Evaluate(snapshot *models.ApplicationSnapshot) ComplianceResult {
	result := ComplianceResult{Eligible: true, Violations: []string{}, Advisories: []string{}}

	dti := c.calculator.DebtToIncomeRatio(snapshot)
	if dti > c.thresholds.MaxDTI {
		result.Eligible = false
		result.Violations = append(result.Violations,
			fmt.Sprintf("DTI %.1f%% exceeds the maximum of %.0f%%", dti, c.thresholds.MaxDTI))
	} else if dti > c.thresholds.PreferredDTI {
		result.Advisories = append(result.Advisories,
			fmt.Sprintf("DTI %.1f%% exceeds the preferred limit of %.0f%%; compensating factors required", dti, c.thresholds.PreferredDTI))
	}

	if snapshot.CreditScore < c.thresholds.MinCreditScore {
		result.Eligible = false
		result.Violations = append(result.Violations,
			fmt.Sprintf("Credit score %d is below the minimum of %d", snapshot.CreditScore, c.thresholds.MinCreditScore))
	}

	reserves := c.calculator.ReserveRatio(snapshot)
	if reserves < c.thresholds.MinReserves {
		result.Advisories = append(result.Advisories,
			fmt.Sprintf("Reserves cover %.0f%% of the loan; the program floor is %.0f%%", reserves*100, c.thresholds.MinReserves*100))
	} else if reserves < c.thresholds.GoodReserves {
		result.Advisories = append(result.Advisories,
			fmt.Sprintf("Reserves cover %.0f%% of the loan; %.0f%% is considered adequate", reserves*100, c.thresholds.GoodReserves*100))
	}

	return result
}
