package validate

import "strings"

// failureSignatures are known phrases that mean the agent talked about the
// artifact instead of producing it. Matching is case-insensitive. All
// patterns are checked so the error list is complete for retry feedback.
var failureSignatures = []struct {
	phrase  string
	message string
}{
	{"waiting for permission", "agent stalled waiting for permission instead of producing output"},
	{"need permission", "agent asked for permission instead of producing output"},
	{"could you grant", "agent asked for a capability grant instead of producing output"},
	{"i've created", `conversational preamble ("I've created") instead of the raw artifact`},
	{"here's the", `conversational preamble ("here's the") instead of the raw artifact`},
	{"the design system includes", "summary of the design system instead of the artifact itself"},
	{"## summary", "summary section instead of the artifact itself"},
}

// detectSignatures scans content for every known failure phrase and returns
// one error per match. No short-circuiting.
func detectSignatures(content string) []string {
	lower := strings.ToLower(content)
	var errs []string
	for _, sig := range failureSignatures {
		if strings.Contains(lower, sig.phrase) {
			errs = append(errs, sig.message)
		}
	}
	return errs
}
