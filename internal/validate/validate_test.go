package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const goodHTML = `<!DOCTYPE html>
<html>
<head><title>Login</title></head>
<body><main>form</main></body>
</html>`

func TestRun_CleanHTML(t *testing.T) {
	out := Run(goodHTML, HTML)
	require.True(t, out.Valid)
	require.False(t, out.Extracted)
	require.Empty(t, out.Errors)
	require.Equal(t, goodHTML, out.Content)
}

func TestRun_Idempotent(t *testing.T) {
	first := Run("```html\n"+goodHTML+"\n```", HTML)
	require.True(t, first.Valid)
	second := Run(first.Content, HTML)
	require.True(t, second.Valid)
	require.Equal(t, first.Content, second.Content)
	require.False(t, second.Extracted)
}

func TestRun_FenceRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"tagged fence", "```html\n" + goodHTML + "\n```"},
		{"bare fence", "```\n" + goodHTML + "\n```"},
		{"opening only", "```html\n" + goodHTML},
		{"closing only", goodHTML + "\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Run(tt.raw, HTML)
			require.True(t, out.Valid, "errors: %v", out.Errors)
			require.False(t, out.Extracted)
			require.Equal(t, goodHTML, out.Content)
		})
	}
}

func TestRun_ExtractionFromNoise(t *testing.T) {
	raw := "Sure thing! Below is what you asked for.\n\n" + goodHTML + "\n\nLet me know about tweaks."
	out := Run(raw, HTML)
	require.True(t, out.Valid, "errors: %v", out.Errors)
	require.True(t, out.Extracted)
	require.Equal(t, goodHTML, out.Content)
}

func TestRun_ExtractionIgnoresNoiseSignatures(t *testing.T) {
	// The signature sits outside the document slice and must not fail it.
	raw := "Here's the page you wanted:\n\n" + goodHTML
	out := Run(raw, HTML)
	require.True(t, out.Valid, "errors: %v", out.Errors)
	require.True(t, out.Extracted)
	require.Equal(t, goodHTML, out.Content)
}

func TestRun_SignatureInsideDocumentFails(t *testing.T) {
	doc := strings.Replace(goodHTML, "form", "I've created the form", 1)
	out := Run(doc, HTML)
	require.False(t, out.Valid)
	require.Len(t, out.Errors, 1)
	require.Contains(t, out.Errors[0], "I've created")
}

func TestRun_AllSignaturesReported(t *testing.T) {
	raw := "I've created the page. Here's the summary.\n## Summary\nThe design system includes buttons."
	out := Run(raw, HTML)
	require.False(t, out.Valid)
	// Every matched phrase appears; detection does not short-circuit.
	joined := strings.Join(out.Errors, "\n")
	require.Contains(t, joined, "I've created")
	require.Contains(t, joined, "here's the")
	require.Contains(t, joined, "summary section")
	require.Contains(t, joined, "design system")
}

func TestRun_PermissionStall(t *testing.T) {
	out := Run("I'm waiting for permission to write files.", HTML)
	require.False(t, out.Valid)
	require.Contains(t, strings.Join(out.Errors, " "), "permission")
}

func TestRun_MissingCloseMarker(t *testing.T) {
	out := Run("<!DOCTYPE html>\n<html><body>truncat", HTML)
	require.False(t, out.Valid)
	require.Contains(t, strings.Join(out.Errors, " "), "</html>")
}

func TestRun_Markdown(t *testing.T) {
	out := Run("# Release Notes\n\ntext", Markdown)
	require.True(t, out.Valid)

	out = Run("just prose, no headings", Markdown)
	require.False(t, out.Valid)
	require.Contains(t, out.Errors[0], "heading")
}

func TestRun_JSONValid(t *testing.T) {
	out := Run(`{"components": ["card", "nav-bar"]}`, JSON)
	require.True(t, out.Valid)
	require.False(t, out.Extracted)
}

func TestRun_JSONRepaired(t *testing.T) {
	// Trailing comma: invalid JSON, mechanically repairable.
	out := Run("{\"components\": [\"card\", \"nav-bar\",]}", JSON)
	require.True(t, out.Valid, "errors: %v", out.Errors)
	require.True(t, out.Extracted)
	require.Contains(t, out.Content, "nav-bar")
}

func TestRun_JSONUnrepairable(t *testing.T) {
	out := Run("I couldn't produce the manifest.", JSON)
	require.False(t, out.Valid)
	require.NotEmpty(t, out.Errors)
}

func TestStripFences_NoFence(t *testing.T) {
	require.Equal(t, "plain", stripFences("  plain\n"))
}

func TestDesignTokens(t *testing.T) {
	tests := []struct {
		name    string
		content string
		ok      bool
		msg     string
	}{
		{"both present", "<style>:root { --c: red; }</style>", true, ""},
		{"missing vars", "<style>.a{}</style>", false, ":root"},
		{"missing style", ":root { --c: red; }", false, "<style>"},
		{"missing both", "<p>hi</p>", false, ":root variables block and <style>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := DesignTokens()(tt.content)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				require.Contains(t, msg, tt.msg)
			}
		})
	}
}

func TestComponents(t *testing.T) {
	names := []string{"nav-bar", "card", "button", "footer"}
	content := `<div class="nav-bar"></div><div class="card"></div>`

	ok, msg := Components(names, 50)(content)
	require.True(t, ok, msg)

	ok, msg = Components(names, 75)(content)
	require.False(t, ok)
	require.Contains(t, msg, "50%")
	require.Contains(t, msg, "button")
	require.Contains(t, msg, "footer")

	ok, _ = Components(nil, 100)(content)
	require.True(t, ok)
}

func TestMinLength(t *testing.T) {
	ok, _ := MinLength(5)("123456")
	require.True(t, ok)
	ok, msg := MinLength(50)("short")
	require.False(t, ok)
	require.Contains(t, msg, "truncated")
}

func TestRunChecks_CollectsAllFailures(t *testing.T) {
	errs := RunChecks("tiny", DesignTokens(), MinLength(100))
	require.Len(t, errs, 2)
}
