// Package prompt composes agent prompts from externally loaded template text.
package prompt

import (
	"fmt"
	"os"
	"strings"
)

// separator joins the system role text and the per-task skill text.
const separator = "\n\n---\n\n"

// disciplineReminder is repeated in retry feedback so the agent re-reads the
// output contract even when the original instructions scrolled out of focus.
const disciplineReminder = "Output ONLY the artifact body. No explanations, no markdown fences, no summaries."

// Compose joins the system role description and the task skill description
// with the fixed separator. Both parts are used as loaded; callers expand
// variables first if needed.
func Compose(system, skill string) string {
	return strings.TrimSpace(system) + separator + strings.TrimSpace(skill)
}

// ExpandVars substitutes $VAR references in template using the vars map,
// falling back to environment variables.
func ExpandVars(template string, vars map[string]string) string {
	return os.Expand(template, func(key string) string {
		if v, ok := vars[key]; ok {
			return v
		}
		return os.Getenv(key)
	})
}

// FeedbackBlock builds the corrective prefix for a retry attempt. It restates
// the concrete validation errors from the previous attempt and repeats the
// output discipline, then is followed by the original prompt verbatim.
func FeedbackBlock(attempt int, errs []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Previous attempt %d was rejected\n\n", attempt)
	b.WriteString("Your last output failed these checks:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e)
		b.WriteByte('\n')
	}
	b.WriteString("\nFix every issue above. ")
	b.WriteString(disciplineReminder)
	b.WriteString("\n\n---\n\n")
	return b.String()
}

// WithFeedback prefixes prompt with a feedback block when errs is non-empty.
// Attempt 1 (no prior errors) uses the prompt verbatim.
func WithFeedback(prompt string, attempt int, errs []string) string {
	if len(errs) == 0 {
		return prompt
	}
	return FeedbackBlock(attempt, errs) + prompt
}
