package leads

import (
	"strings"

	"github.com/jimezsa/creatorleads/internal/models"
)

// ContactLink returns a mailto: link when the lead has an email, otherwise a
// WhatsApp link built from the phone digits. Empty when neither is usable.
func ContactLink(lead models.CreatorLead) string {
	if email := strings.TrimSpace(lead.Email); strings.Contains(email, "@") {
		return "mailto:" + email
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, lead.Phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}
