package dto

// HTMLEmailDTO - тело /send-html-email/.
type HTMLEmailDTO struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}
