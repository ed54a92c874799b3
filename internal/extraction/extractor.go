package extraction

import "strings"

// Extractor turns OCR text lines into typed records. Extraction is total:
// absent or unparsable fields default to zero values instead of aborting
// the record, so partial data never blocks the rest of the pipeline.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract classifies the lines and returns the matching typed record.
func (e *Extractor) Extract(lines []string) Fields {
	docType := Classify(lines)
	text := strings.Join(lines, "\n")

	switch docType {
	case DocTypeWageStatement:
		return e.extractWageStatement(text)
	case DocTypePayStub:
		return e.extractPayStub(text)
	case DocTypeBankStatement:
		return e.extractBankStatement(text)
	default:
		return UnknownFields{RawText: text}
	}
}

func (e *Extractor) extractWageStatement(text string) WageStatementFields {
	return WageStatementFields{
		EmployerID:          matchString(text, wagePatterns["employerId"]),
		EmployerName:        matchString(text, wagePatterns["employerName"]),
		EmployeeSSN:         matchString(text, wagePatterns["employeeSsn"]),
		EmployeeName:        matchString(text, wagePatterns["employeeName"]),
		WagesTips:           matchMoney(text, wagePatterns["wagesTips"]),
		FederalTaxWithheld:  matchMoney(text, wagePatterns["federalTaxWithheld"]),
		SocialSecurityWages: matchMoney(text, wagePatterns["socialSecurityWages"]),
		MedicareWages:       matchMoney(text, wagePatterns["medicareWages"]),
		StateWages:          matchMoney(text, wagePatterns["stateWages"]),
		StateTaxWithheld:    matchMoney(text, wagePatterns["stateTaxWithheld"]),
		TaxYear:             matchYear(text, wagePatterns["taxYear"]),
	}
}

func (e *Extractor) extractPayStub(text string) PayStubFields {
	start, end := matchPeriod(text, payStubPatterns["payPeriod"])

	fields := PayStubFields{
		EmployerName:   matchString(text, payStubPatterns["employerName"]),
		EmployeeName:   matchString(text, payStubPatterns["employeeName"]),
		PayPeriodStart: start,
		PayPeriodEnd:   end,
		GrossPay:       matchMoney(text, payStubPatterns["grossPay"]),
		NetPay:         matchMoney(text, payStubPatterns["netPay"]),
		YTDGrossPay:    matchMoney(text, payStubPatterns["ytdGrossPay"]),
		Deductions:     []Deduction{},
	}

	// All non-overlapping deduction lines, in order of appearance.
	for _, m := range deductionPattern.FindAllStringSubmatch(text, -1) {
		fields.Deductions = append(fields.Deductions, Deduction{
			Label:     strings.TrimSpace(m[1]),
			Amount:    parseAmount(m[2]),
			YTDAmount: parseAmount(m[3]),
		})
	}

	return fields
}

func (e *Extractor) extractBankStatement(text string) BankStatementFields {
	start, end := matchPeriod(text, bankPatterns["statementPeriod"])

	fields := BankStatementFields{
		BankName:         matchString(text, bankPatterns["bankName"]),
		AccountHolder:    matchString(text, bankPatterns["accountHolder"]),
		AccountLast4:     matchString(text, bankPatterns["accountLast4"]),
		PeriodStart:      start,
		PeriodEnd:        end,
		BeginningBalance: matchMoney(text, bankPatterns["beginningBalance"]),
		EndingBalance:    matchMoney(text, bankPatterns["endingBalance"]),
		Deposits:         []Transaction{},
		Withdrawals:      []Transaction{},
	}

	for _, m := range transactionPattern.FindAllStringSubmatch(text, -1) {
		tx := Transaction{
			Date:        strings.TrimSpace(m[1]),
			Description: strings.TrimSpace(m[2]),
			Amount:      parseAmount(m[3]),
		}
		if strings.EqualFold(m[4], "CR") {
			fields.Deposits = append(fields.Deposits, tx)
		} else {
			fields.Withdrawals = append(fields.Withdrawals, tx)
		}
	}

	return fields
}
