// Package validate inspects raw agent output and decides whether it is an
// acceptable artifact. Pure functions, no I/O.
package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Kind selects the structural check applied to an artifact.
type Kind string

const (
	HTML     Kind = "html"
	Markdown Kind = "markdown"
	JSON     Kind = "json"
)

// Outcome is the verdict for one raw output. Content is meaningful only
// when Valid is true. Extracted signals that the artifact had to be pulled
// out of surrounding noise (or mechanically repaired), which is worth a
// warning even on success.
type Outcome struct {
	Valid     bool
	Content   string
	Errors    []string
	Extracted bool
}

var openFenceRe = regexp.MustCompile("^```[a-zA-Z0-9+-]*$")

// stripFences removes a leading triple-backtick fence line (optionally
// annotated with a language tag) and a trailing closing fence, when present.
// Agents wrap output in fences despite instructions; the wrapping is not an
// error by itself.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 && openFenceRe.MatchString(strings.TrimSpace(s[:i])) {
		s = s[i+1:]
	}
	if j := strings.LastIndexByte(s, '\n'); j >= 0 && strings.TrimSpace(s[j+1:]) == "```" {
		s = s[:j]
	}
	return strings.TrimSpace(s)
}

// Run executes the full pipeline for one raw output.
func Run(raw string, kind Kind) Outcome {
	content := stripFences(raw)

	if kind == JSON {
		return validateJSON(content)
	}

	sigErrs := detectSignatures(content)
	structErrs := structural(content, kind)

	if len(sigErrs) == 0 && len(structErrs) == 0 {
		return Outcome{Valid: true, Content: content}
	}

	// Extraction fallback: the artifact may be embedded in conversational
	// noise. Signatures are re-checked against the extracted slice only, so
	// noise outside the document cannot fail an otherwise clean result.
	if kind == HTML && len(structErrs) > 0 {
		if slice, ok := extractHTML(content); ok {
			if sliceSigs := detectSignatures(slice); len(sliceSigs) == 0 {
				return Outcome{Valid: true, Content: slice, Extracted: true}
			} else {
				return Outcome{Errors: sliceSigs}
			}
		}
	}

	return Outcome{Errors: append(sigErrs, structErrs...)}
}

// structural returns the structural errors for content of the given kind.
func structural(content string, kind Kind) []string {
	lower := strings.ToLower(content)
	switch kind {
	case HTML:
		// Strict prefix/suffix: a document preceded or followed by prose is
		// not well-formed here, it is a candidate for extraction.
		var errs []string
		if !strings.HasPrefix(lower, "<!doctype") && !strings.HasPrefix(lower, "<html") {
			errs = append(errs, "output does not begin with <!DOCTYPE or <html>")
		}
		if !strings.HasSuffix(lower, "</html>") {
			errs = append(errs, "output does not end with </html>")
		}
		return errs
	case Markdown:
		for _, line := range strings.Split(content, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "#") {
				return nil
			}
		}
		return []string{"no heading found; expected a markdown document"}
	}
	return []string{fmt.Sprintf("unknown artifact kind %q", kind)}
}

// extractHTML locates an embedded well-formed HTML document inside noisy text.
func extractHTML(s string) (string, bool) {
	lower := strings.ToLower(s)
	start := strings.Index(lower, "<!doctype")
	if start < 0 {
		start = strings.Index(lower, "<html")
	}
	end := strings.LastIndex(lower, "</html>")
	if start < 0 || end < 0 || end < start {
		return "", false
	}
	return s[start : end+len("</html>")], true
}

// validateJSON accepts well-formed JSON, and falls back to mechanical repair
// for the almost-JSON agents frequently emit (trailing commas, single
// quotes). A repaired document is flagged like an extracted one.
func validateJSON(content string) Outcome {
	if json.Valid([]byte(content)) {
		return Outcome{Valid: true, Content: content}
	}
	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil || !json.Valid([]byte(repaired)) {
		return Outcome{Errors: []string{"output is not valid JSON and could not be repaired"}}
	}
	return Outcome{Valid: true, Content: repaired, Extracted: true}
}
