package utils

import (
	"regexp"
	"strings"
)

// Field limits shared by server-side validation and client display. Keeping
// them in one place avoids drift between the two.
const (
	TitleMinLen           = 2
	TitleMaxLen           = 100
	BriefMinLen           = 10
	BriefMaxLen           = 2000
	OtherNeedsMaxLen      = 500
	ContactHintMaxLen     = 200
	MessageMinLen         = 10
	MessageMaxLen         = 500
	ContactForOwnerMinLen = 5
	ContactForOwnerMaxLen = 200
	MaxRoles              = 10
	RoleLabelMaxLen       = 30
)

// piiPattern is one detection category. Patterns are checked in order and the
// first hit wins. Detection is deterministic regex matching; spelled-out or
// otherwise obfuscated contact info will slip through, which is an accepted
// trade-off over an ML filter.
type piiPattern struct {
	label string
	re    *regexp.Regexp
}

var piiPatterns = []piiPattern{
	{
		label: "contains an email address",
		re:    regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
	},
	{
		label: "contains a phone number",
		re:    regexp.MustCompile(`\+?\d[\d\-\. ]{7,}\d`),
	},
	{
		label: "contains a messaging app handle or link",
		re: regexp.MustCompile(`(?i)(t\.me/|wa\.me/|discord\.(gg|com)/|open\.kakao\.com/|line\.me/|\b(telegram|whatsapp|discord|kakao(talk)?|wechat|line)\b\s*(id|@|:)\s*\S+)`),
	},
	{
		label: "contains a social media handle",
		re: regexp.MustCompile(`(?i)((instagram|facebook|twitter|x|tiktok|linkedin)\.com/\S+|\b(insta|ig|dm)\s*[:@]\s*\S+|(^|\s)@[A-Za-z0-9_.]{3,})`),
	},
}

// ValidatePublicField scans free text destined for a public-facing field and
// rejects it when it carries contact-enabling content. The returned reason is
// a human-readable category label.
func ValidatePublicField(text string) (bool, string) {
	for _, p := range piiPatterns {
		if p.re.MatchString(text) {
			return false, p.label
		}
	}
	return true, ""
}

// sensitiveKeywords flags content for moderation review. Matching never blocks
// a submission.
var sensitiveKeywords = []string{
	"guaranteed profit",
	"guaranteed returns",
	"investment opportunity",
	"crypto giveaway",
	"quick money",
	"easy money",
	"get rich",
	"multi-level marketing",
	"pyramid scheme",
	"wire transfer",
	"gift card",
	"casino",
	"betting",
	"gambling",
	"escort",
	"adult content",
	"kill yourself",
	"kys",
}

// CheckSensitiveContent does a case-insensitive substring scan against the
// keyword list and returns every keyword that matched.
func CheckSensitiveContent(text string) (bool, []string) {
	lower := strings.ToLower(text)
	var matched []string
	for _, kw := range sensitiveKeywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return len(matched) > 0, matched
}

// FlagReason joins matched keywords into the stored flag_reason value.
func FlagReason(matched []string) string {
	if len(matched) == 0 {
		return ""
	}
	return "sensitive keywords: " + strings.Join(matched, ", ")
}
