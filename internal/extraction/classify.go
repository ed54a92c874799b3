package extraction

import "strings"

// Classify determines the document type from its text lines. Rules are
// checked in order; the first match wins.
func Classify(lines []string) DocumentType {
	text := strings.ToLower(strings.Join(lines, "\n"))

	switch {
	case strings.Contains(text, "w-2"),
		strings.Contains(text, "wage"),
		strings.Contains(text, "tax statement"):
		return DocTypeWageStatement

	case strings.Contains(text, "pay") &&
		(strings.Contains(text, "stub") || strings.Contains(text, "statement")):
		return DocTypePayStub

	case strings.Contains(text, "bank") && strings.Contains(text, "statement"):
		return DocTypeBankStatement

	default:
		return DocTypeUnknown
	}
}
