package contact

import "strings"

// DefaultRecipient receives fallback emails when the page has no email link.
const DefaultRecipient = "gksrikar9@gmail.com"

// Submission is one contact message. It is never stored.
type Submission struct {
	Name    string `json:"name" form:"name" binding:"required"`
	From    string `json:"from" form:"email" binding:"required"`
	Message string `json:"message" form:"message" binding:"required"`
}

func (s Submission) Trimmed() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		From:    strings.TrimSpace(s.From),
		Message: strings.TrimSpace(s.Message),
	}
}

// Complete reports whether all three fields are non-empty.
func (s Submission) Complete() bool {
	return s.Name != "" && s.From != "" && s.Message != ""
}
