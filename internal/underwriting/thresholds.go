package underwriting

// ScoringThresholds are the boundaries the risk engine uses when bucketing
// factors into impact levels. These are deliberately distinct from
// ComplianceThresholds: scoring and compliance gating serve different
// purposes and must not share constants.
type ScoringThresholds struct {
	DTIHigh   float64 // DTI above this is high impact
	DTIMedium float64 // DTI above this is medium impact

	LTVHigh   float64
	LTVMedium float64

	CreditHigh   int // credit below this is high impact
	CreditMedium int // credit below this is medium impact

	EmploymentHighYears   float64 // tenure below this is high impact
	EmploymentMediumYears float64 // tenure below this is medium impact

	ReserveHigh   float64 // reserve ratio below this is high impact
	ReserveMedium float64 // reserve ratio below this is medium impact
}

// DefaultScoringThresholds returns the risk engine's own threshold set.
func DefaultScoringThresholds() ScoringThresholds {
	return ScoringThresholds{
		DTIHigh:   40,
		DTIMedium: 36,

		LTVHigh:   90,
		LTVMedium: 80,

		CreditHigh:   660,
		CreditMedium: 720,

		EmploymentHighYears:   2,
		EmploymentMediumYears: 5,

		ReserveHigh:   0.03,
		ReserveMedium: 0.06,
	}
}

// ComplianceThresholds are the boundaries used by the standalone compliance
// rule set for eligibility gating. Keep separate from ScoringThresholds.
type ComplianceThresholds struct {
	MaxDTI         float64 // hard eligibility cap
	PreferredDTI   float64 // above this requires compensating factors
	MinCreditScore int
	MinReserves    float64 // reserve ratio floor
	GoodReserves   float64 // reserve ratio considered adequate
}

// DefaultComplianceThresholds returns the compliance gating threshold set.
func DefaultComplianceThresholds() ComplianceThresholds {
	return ComplianceThresholds{
		MaxDTI:         43,
		PreferredDTI:   36,
		MinCreditScore: 620,
		MinReserves:    0.1,
		GoodReserves:   0.25,
	}
}

// MinimumCreditScore is the underwriting floor below which a warning is
// always raised.
const MinimumCreditScore = 620
