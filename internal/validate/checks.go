package validate

import (
	"fmt"
	"strings"
)

// Check is a domain-specific post-check composed on top of the base
// pipeline. Each failure message doubles as retry feedback.
type Check func(content string) (ok bool, msg string)

// RunChecks applies every check and collects the failures.
func RunChecks(content string, checks ...Check) []string {
	var errs []string
	for _, c := range checks {
		if ok, msg := c(content); !ok {
			errs = append(errs, msg)
		}
	}
	return errs
}

// DesignTokens requires a CSS variables block and an embedded style block,
// the two structural anchors of a generated design-system page.
func DesignTokens() Check {
	return func(content string) (bool, string) {
		lower := strings.ToLower(content)
		hasVars := strings.Contains(lower, ":root")
		hasStyle := strings.Contains(lower, "<style")
		switch {
		case !hasVars && !hasStyle:
			return false, "missing :root variables block and <style> block"
		case !hasVars:
			return false, "missing :root variables block"
		case !hasStyle:
			return false, "missing <style> block"
		}
		return true, ""
	}
}

// Components requires at least minPercent of the named component markers to
// appear in the content.
func Components(names []string, minPercent int) Check {
	return func(content string) (bool, string) {
		if len(names) == 0 {
			return true, ""
		}
		lower := strings.ToLower(content)
		var missing []string
		for _, n := range names {
			if !strings.Contains(lower, strings.ToLower(n)) {
				missing = append(missing, n)
			}
		}
		used := len(names) - len(missing)
		percent := used * 100 / len(names)
		if percent < minPercent {
			return false, fmt.Sprintf("component coverage %d%% (%d/%d), below %d%%; missing: %s",
				percent, used, len(names), minPercent, strings.Join(missing, ", "))
		}
		return true, ""
	}
}

// MinLength rejects output shorter than n bytes as likely truncated.
func MinLength(n int) Check {
	return func(content string) (bool, string) {
		if len(content) < n {
			return false, fmt.Sprintf("output is %d bytes, below the %d byte minimum; likely truncated", len(content), n)
		}
		return true, ""
	}
}
