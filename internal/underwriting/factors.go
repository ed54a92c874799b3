package underwriting

import (
	"fmt"
	"time"

	"mortgage-workers/internal/models"
)

const hoursPerYear = 365 * 24

// Calculator computes the five risk factors from an application snapshot.
// It is deterministic and performs no I/O; the clock is injected so tests
// can pin employment tenure.
type Calculator struct {
	thresholds ScoringThresholds
	now        func() time.Time
}

func NewCalculator(thresholds ScoringThresholds) *Calculator {
	return &Calculator{
		thresholds: thresholds,
		now:        time.Now,
	}
}

// NewCalculatorAt returns a Calculator with a fixed clock.
func NewCalculatorAt(thresholds ScoringThresholds, now func() time.Time) *Calculator {
	return &Calculator{thresholds: thresholds, now: now}
}

// ComputeFactors returns exactly five factors in the fixed order:
// DTI, LTV, credit score, employment stability, asset strength.
// Missing input never aborts a factor; it surfaces as high impact.
func (c *Calculator) ComputeFactors(snapshot *models.ApplicationSnapshot) []RiskFactor {
	return []RiskFactor{
		c.debtToIncome(snapshot),
		c.loanToValue(snapshot),
		c.creditScore(snapshot),
		c.employmentStability(snapshot),
		c.assetStrength(snapshot),
	}
}

// DebtToIncomeRatio returns the DTI percentage. Zero or missing income is
// defined as 100, the worst case, not a division error.
func (c *Calculator) DebtToIncomeRatio(snapshot *models.ApplicationSnapshot) float64 {
	if snapshot.MonthlyIncome <= 0 {
		return 100
	}
	return snapshot.MonthlyDebtPayments / snapshot.MonthlyIncome * 100
}

func (c *Calculator) debtToIncome(snapshot *models.ApplicationSnapshot) RiskFactor {
	dti := c.DebtToIncomeRatio(snapshot)

	impact := ImpactLow
	if dti > c.thresholds.DTIHigh {
		impact = ImpactHigh
	} else if dti > c.thresholds.DTIMedium {
		impact = ImpactMedium
	}

	return RiskFactor{
		Name:        FactorDebtToIncome,
		Impact:      impact,
		Value:       fmt.Sprintf("%.1f%%", dti),
		Description: fmt.Sprintf("Debt-to-income ratio is %.1f%% of monthly income", dti),
		Threshold:   fmt.Sprintf("%.0f%%", c.thresholds.DTIHigh),
	}
}

// LoanToValueRatio returns the LTV percentage. Zero or missing property
// value is defined as 100.
func (c *Calculator) LoanToValueRatio(snapshot *models.ApplicationSnapshot) float64 {
	if snapshot.PropertyValue <= 0 {
		return 100
	}
	return snapshot.LoanAmount / snapshot.PropertyValue * 100
}

func (c *Calculator) loanToValue(snapshot *models.ApplicationSnapshot) RiskFactor {
	ltv := c.LoanToValueRatio(snapshot)

	impact := ImpactLow
	if ltv > c.thresholds.LTVHigh {
		impact = ImpactHigh
	} else if ltv > c.thresholds.LTVMedium {
		impact = ImpactMedium
	}

	return RiskFactor{
		Name:        FactorLoanToValue,
		Impact:      impact,
		Value:       fmt.Sprintf("%.1f%%", ltv),
		Description: fmt.Sprintf("Loan amount is %.1f%% of property value", ltv),
		Threshold:   fmt.Sprintf("%.0f%%", c.thresholds.LTVHigh),
	}
}

func (c *Calculator) creditScore(snapshot *models.ApplicationSnapshot) RiskFactor {
	score := snapshot.CreditScore

	if score <= 0 {
		return RiskFactor{
			Name:        FactorCreditScore,
			Impact:      ImpactHigh,
			Value:       "0",
			Description: "No credit score on file",
			Threshold:   fmt.Sprintf("%d", c.thresholds.CreditHigh),
		}
	}

	impact := ImpactLow
	if score < c.thresholds.CreditHigh {
		impact = ImpactHigh
	} else if score < c.thresholds.CreditMedium {
		impact = ImpactMedium
	}

	return RiskFactor{
		Name:        FactorCreditScore,
		Impact:      impact,
		Value:       fmt.Sprintf("%d", score),
		Description: fmt.Sprintf("Credit score is %d", score),
		Threshold:   fmt.Sprintf("%d", c.thresholds.CreditHigh),
	}
}

// EmploymentYears returns the tenure at the most recent employer, in
// 365-day years.
func (c *Calculator) EmploymentYears(snapshot *models.ApplicationSnapshot) float64 {
	if len(snapshot.EmploymentHistory) == 0 {
		return 0
	}
	current := snapshot.EmploymentHistory[0]
	return c.now().Sub(current.StartDate).Hours() / hoursPerYear
}

func (c *Calculator) employmentStability(snapshot *models.ApplicationSnapshot) RiskFactor {
	if len(snapshot.EmploymentHistory) == 0 {
		return RiskFactor{
			Name:        FactorEmploymentStability,
			Impact:      ImpactHigh,
			Value:       "0 years",
			Description: "No employment history on file",
			Threshold:   fmt.Sprintf("%.0f years", c.thresholds.EmploymentHighYears),
		}
	}

	years := c.EmploymentYears(snapshot)

	impact := ImpactLow
	if years < c.thresholds.EmploymentHighYears {
		impact = ImpactHigh
	} else if years < c.thresholds.EmploymentMediumYears {
		impact = ImpactMedium
	}

	return RiskFactor{
		Name:        FactorEmploymentStability,
		Impact:      impact,
		Value:       fmt.Sprintf("%.1f years", years),
		Description: fmt.Sprintf("%.1f years at current employer", years),
		Threshold:   fmt.Sprintf("%.0f years", c.thresholds.EmploymentHighYears),
	}
}

// ReserveRatio returns total asset value relative to the loan amount.
func (c *Calculator) ReserveRatio(snapshot *models.ApplicationSnapshot) float64 {
	loan := snapshot.LoanAmount
	if loan < 1 {
		loan = 1
	}
	return snapshot.TotalAssetValue() / loan
}

func (c *Calculator) assetStrength(snapshot *models.ApplicationSnapshot) RiskFactor {
	ratio := c.ReserveRatio(snapshot)

	impact := ImpactLow
	if ratio < c.thresholds.ReserveHigh {
		impact = ImpactHigh
	} else if ratio < c.thresholds.ReserveMedium {
		impact = ImpactMedium
	}

	return RiskFactor{
		Name:        FactorAssetStrength,
		Impact:      impact,
		Value:       fmt.Sprintf("%.2f", ratio),
		Description: fmt.Sprintf("Liquid reserves cover %.0f%% of the loan amount", ratio*100),
		Threshold:   fmt.Sprintf("%.2f", c.thresholds.ReserveHigh),
	}
}
