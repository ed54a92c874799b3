package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// Field extraction runs against the full joined text, one compiled pattern
// per labeled field. Keeping the tables here, separate from the extraction
// flow, lets each field be tested in isolation.

const money = `\$?\s*(-?[0-9][0-9,]*(?:\.[0-9]+)?)`
const date = `([0-9]{1,2}[/.-][0-9]{1,2}(?:[/.-][0-9]{2,4})?)`

var wagePatterns = map[string]*regexp.Regexp{
	"employerId":          regexp.MustCompile(`(?i)employer(?:'s)?\s+(?:id|identification)(?:\s+number)?(?:\s*\(EIN\))?\s*[:#]?\s*([0-9][0-9-]*)`),
	"employerName":        regexp.MustCompile(`(?i)employer(?:'s)?\s+name(?:[^:\n]*)?:\s*([^\n]+)`),
	"employeeSsn":         regexp.MustCompile(`(?i)(?:employee(?:'s)?\s+)?(?:ssn|social\s+security\s+number)\s*[:#]?\s*([0-9][0-9-]*)`),
	"employeeName":        regexp.MustCompile(`(?i)employee(?:'s)?\s+name\s*:?\s*([^\n]+)`),
	"wagesTips":           regexp.MustCompile(`(?i)wages,?\s+tips,?\s+other\s+comp(?:ensation)?\.?\s*:?\s*` + money),
	"federalTaxWithheld":  regexp.MustCompile(`(?i)federal\s+(?:income\s+)?tax\s+withheld\s*:?\s*` + money),
	"socialSecurityWages": regexp.MustCompile(`(?i)social\s+security\s+wages\s*:?\s*` + money),
	"medicareWages":       regexp.MustCompile(`(?i)medicare\s+wages(?:\s+and\s+tips)?\s*:?\s*` + money),
	"stateWages":          regexp.MustCompile(`(?i)state\s+wages(?:,?\s+tips,?\s+etc\.?)?\s*:?\s*` + money),
	"stateTaxWithheld":    regexp.MustCompile(`(?i)state\s+(?:income\s+)?tax(?:\s+withheld)?\s*:?\s*` + money),
	"taxYear":             regexp.MustCompile(`(?i)(?:tax\s+year|for\s+year)\s*:?\s*((?:19|20)[0-9]{2})`),
}

var payStubPatterns = map[string]*regexp.Regexp{
	"employerName": regexp.MustCompile(`(?i)employer(?:\s+name)?\s*:?\s*([^\n]+)`),
	"employeeName": regexp.MustCompile(`(?i)employee(?:\s+name)?\s*:?\s*([^\n]+)`),
	"payPeriod":    regexp.MustCompile(`(?i)pay\s+period\s*:?\s*` + date + `\s*(?:-|–|to|through)\s*` + date),
	"grossPay":     regexp.MustCompile(`(?i)gross\s+pay\s*:?\s*` + money),
	"netPay":       regexp.MustCompile(`(?i)net\s+pay\s*:?\s*` + money),
	"ytdGrossPay":  regexp.MustCompile(`(?i)(?:ytd|year[\s-]?to[\s-]?date)\s+gross(?:\s+pay)?\s*:?\s*` + money),
}

// deductionPattern matches repeated `<label> $<amount> $<ytd-amount>` lines.
var deductionPattern = regexp.MustCompile(`(?im)^\s*([A-Za-z][A-Za-z0-9 /()&.-]*?)\s+\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s+\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*$`)

var bankPatterns = map[string]*regexp.Regexp{
	"bankName":         regexp.MustCompile(`(?im)^([^\n]*\bbank\b[^\n]*)$`),
	"accountHolder":    regexp.MustCompile(`(?i)account\s+holder\s*:?\s*([^\n]+)`),
	"accountLast4":     regexp.MustCompile(`(?i)account(?:\s+number)?\s*[:#]?\s*(?:[x*]+[\s-]*)?([0-9]{4})\b`),
	"statementPeriod":  regexp.MustCompile(`(?i)statement\s+period\s*:?\s*` + date + `\s*(?:-|–|to|through)\s*` + date),
	"beginningBalance": regexp.MustCompile(`(?i)beginning\s+balance\s*:?\s*` + money),
	"endingBalance":    regexp.MustCompile(`(?i)ending\s+balance\s*:?\s*` + money),
}

// transactionPattern matches repeated `<date> <description> <amount> CR|DR`
// lines; CR marks deposits, DR withdrawals.
var transactionPattern = regexp.MustCompile(`(?im)^\s*` + date + `\s+([^\n]+?)\s+` + money + `\s+(CR|DR)\s*$`)

// matchString returns the first capture group, trimmed, or "".
func matchString(text string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// matchMoney returns the first capture group parsed as an amount, or 0.
// Thousands separators and currency symbols are stripped first.
func matchMoney(text string, re *regexp.Regexp) float64 {
	return parseAmount(matchString(text, re))
}

// matchPeriod returns the two capture groups of a date-range pattern.
func matchPeriod(text string, re *regexp.Regexp) (string, string) {
	m := re.FindStringSubmatch(text)
	if len(m) < 3 {
		return "", ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

// matchYear returns the first capture group parsed as a year, or 0.
func matchYear(text string, re *regexp.Regexp) int {
	year, err := strconv.Atoi(matchString(text, re))
	if err != nil {
		return 0
	}
	return year
}

func parseAmount(raw string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}
