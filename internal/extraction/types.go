package extraction

// DocumentType classifies a supporting document by content.
type DocumentType string

const (
	DocTypeWageStatement DocumentType = "WAGE_STATEMENT"
	DocTypePayStub       DocumentType = "PAY_STUB"
	DocTypeBankStatement DocumentType = "BANK_STATEMENT"
	DocTypeUnknown       DocumentType = "UNKNOWN"
)

// Fields is the tagged union of type-specific extracted records. One
// concrete type exists per document kind so new kinds force exhaustive
// handling.
type Fields interface {
	DocumentType() DocumentType
}

// WageStatementFields is the structured record for a W-2 style wage and
// tax statement.
type WageStatementFields struct {
	EmployerID         string  `json:"employerId"`
	EmployerName       string  `json:"employerName"`
	EmployeeSSN        string  `json:"employeeSsn"`
	EmployeeName       string  `json:"employeeName"`
	WagesTips          float64 `json:"wagesTips"`
	FederalTaxWithheld float64 `json:"federalTaxWithheld"`
	SocialSecurityWages float64 `json:"socialSecurityWages"`
	MedicareWages      float64 `json:"medicareWages"`
	StateWages         float64 `json:"stateWages"`
	StateTaxWithheld   float64 `json:"stateTaxWithheld"`
	TaxYear            int     `json:"taxYear"`
}

func (WageStatementFields) DocumentType() DocumentType { return DocTypeWageStatement }

// Deduction is one repeated deduction line on a pay stub.
type Deduction struct {
	Label     string  `json:"label"`
	Amount    float64 `json:"amount"`
	YTDAmount float64 `json:"ytdAmount"`
}

// PayStubFields is the structured record for a pay stub.
type PayStubFields struct {
	EmployerName   string      `json:"employerName"`
	EmployeeName   string      `json:"employeeName"`
	PayPeriodStart string      `json:"payPeriodStart"`
	PayPeriodEnd   string      `json:"payPeriodEnd"`
	GrossPay       float64     `json:"grossPay"`
	NetPay         float64     `json:"netPay"`
	YTDGrossPay    float64     `json:"ytdGrossPay"`
	Deductions     []Deduction `json:"deductions"`
}

func (PayStubFields) DocumentType() DocumentType { return DocTypePayStub }

// Transaction is one repeated deposit or withdrawal line on a bank
// statement.
type Transaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// BankStatementFields is the structured record for a bank statement.
type BankStatementFields struct {
	BankName         string        `json:"bankName"`
	AccountHolder    string        `json:"accountHolder"`
	AccountLast4     string        `json:"accountLast4"`
	PeriodStart      string        `json:"periodStart"`
	PeriodEnd        string        `json:"periodEnd"`
	BeginningBalance float64       `json:"beginningBalance"`
	EndingBalance    float64       `json:"endingBalance"`
	Deposits         []Transaction `json:"deposits"`
	Withdrawals      []Transaction `json:"withdrawals"`
}

func (BankStatementFields) DocumentType() DocumentType { return DocTypeBankStatement }

// UnknownFields carries the raw text of a document the classifier could
// not identify.
type UnknownFields struct {
	RawText string `json:"rawText"`
}

func (UnknownFields) DocumentType() DocumentType { return DocTypeUnknown }
