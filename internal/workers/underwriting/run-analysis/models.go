package runanalysis

import "mortgage-workers/internal/underwriting"

type Input struct {
	ApplicationID string `json:"applicationId"`
}

type Output struct {
	ApplicationID   string                        `json:"applicationId"`
	RiskScore       int                           `json:"riskScore"`
	Confidence      int                           `json:"confidence"`
	Factors         []underwriting.RiskFactor     `json:"factors"`
	Recommendations []string                      `json:"recommendations"`
	Warnings        []string                      `json:"warnings"`
	Conditions      []string                      `json:"conditions"`
	Compliance      underwriting.ComplianceResult `json:"compliance"`
	AnalyzedAt      string                        `json:"analyzedAt"`
}
