package contact

import (
	"net/url"
	"strings"
)

const mailtoScheme = "mailto:"

// MailtoURI builds the pre-filled email link used when sending fails.
func MailtoURI(to string, s Submission) string {
	subject := "Portfolio contact from " + s.Name
	body := s.Message + "\n\nReply-to: " + s.From

	return mailtoScheme + to + "?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body)
}

// FallbackAddress derives the destination from a page's email link href.
// Anything other than a non-empty mailto link yields DefaultRecipient.
func FallbackAddress(emailLink string) string {
	link := strings.TrimSpace(emailLink)
	if !strings.HasPrefix(link, mailtoScheme) {
		return DefaultRecipient
	}

	to := strings.TrimSpace(strings.TrimPrefix(link, mailtoScheme))
	if to == "" {
		return DefaultRecipient
	}

	return to
}

// componentUnescaper restores the characters encodeURIComponent leaves alone
// but QueryEscape encodes. Spaces become %20 so mail clients do not show
// literal plus signs.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes s the way encodeURIComponent does.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
