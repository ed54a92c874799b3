package processdocument

type Input struct {
	DocumentID    string `json:"documentId"`
	ContentBase64 string `json:"contentBase64"`
}

type Output struct {
	DocumentID       string  `json:"documentId"`
	DocumentType     string  `json:"documentType"`
	Confidence       float64 `json:"confidence"`
	SelectedEngine   string  `json:"selectedEngine"`
	ProcessingStatus string  `json:"processingStatus"`
}
