// Package intent maps free chat text to one of a closed set of intents.
package intent

import (
	"regexp"
	"strings"

	"github.com/spec-kit/support-desk/internal/domain"
)

// Kind is the classified purpose of a chat message.
type Kind string

const (
	KindFAQ      Kind = "faq"
	KindAgent    Kind = "agent"
	KindBook     Kind = "book"
	KindFallback Kind = "fallback"
)

// Canned answers.
const (
	HoursAnswer    = "Support hours: Mon–Fri, 8:00–18:00."
	LocationAnswer = "1 Main Street, Pakenham VIC 3810 (Main Wing, Level 2)."
	FallbackAnswer = "Try asking about hours, location, or say 'agent' to open a ticket. Quick book: book mental 2025-10-12 15:00"
)

// Intent is the result of Detect. Answer is set for faq and fallback; Type
// and Slot for book.
type Intent struct {
	Kind   Kind
	Answer string
	Type   domain.AppointmentType
	Slot   string
}

// The boundary only anchors the first and last alternative.
var (
	hoursPattern    = regexp.MustCompile(`\bhour|open|time\b`)
	locationPattern = regexp.MustCompile(`\blocation|where|address\b`)
	agentPattern    = regexp.MustCompile(`\bhelp|agent|human\b`)
	bookPattern     = regexp.MustCompile(`book\s+(mental|career)\s+(\d{4}-\d{2}-\d{2})\s+(\d{2}:\d{2})`)
)

// Detect classifies text. Matching is case-insensitive and the first rule
// that matches wins.
func Detect(text string) Intent {
	t := strings.ToLower(text)
	switch {
	case hoursPattern.MatchString(t):
		return Intent{Kind: KindFAQ, Answer: HoursAnswer}
	case locationPattern.MatchString(t):
		return Intent{Kind: KindFAQ, Answer: LocationAnswer}
	case agentPattern.MatchString(t):
		return Intent{Kind: KindAgent}
	}
	if m := bookPattern.FindStringSubmatch(t); m != nil {
		return Intent{
			Kind: KindBook,
			Type: domain.AppointmentType(m[1]),
			Slot: m[2] + "T" + m[3],
		}
	}
	return Intent{Kind: KindFallback, Answer: FallbackAnswer}
}
