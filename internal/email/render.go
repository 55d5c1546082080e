// Package email renders failure notifications shared by the sender backends.
package email

import (
	"fmt"
	"html"
	"strings"

	"narrabridge/internal/domain"
)

// RunFailedSubject returns the subject line for a failed run.
func RunFailedSubject(run *domain.DispatchRun) string {
	return fmt.Sprintf("[narrabridge] %s dispatch %s (%d/%d failed)",
		run.Variant, run.Status, run.ErrorCount, run.ItemCount)
}

// RunFailedText renders the plain-text body for a failed run.
func RunFailedText(run *domain.DispatchRun) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (%s) finished with status %s.\n\n", run.ID, run.Variant, run.Status)
	fmt.Fprintf(&b, "Endpoint: %s\n", run.BaseURL)
	fmt.Fprintf(&b, "Items: %d, results: %d, errors: %d\n", run.ItemCount, run.ResultCount, run.ErrorCount)
	if run.RequestID != "" {
		fmt.Fprintf(&b, "Request ID: %s\n", run.RequestID)
	}
	if run.ErrorMessage != "" {
		fmt.Fprintf(&b, "\nFirst error:\n%s\n", run.ErrorMessage)
	}
	return b.String()
}

// RunFailedHTML renders the HTML body for a failed run.
func RunFailedHTML(run *domain.DispatchRun) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Dispatch run %s</h2>
  <p>Run <code>%s</code> (%s) sent to <code>%s</code>.</p>
  <p>Items: %d &middot; results: %d &middot; errors: %d</p>
  <pre style="background: #f6f6f6; padding: 12px; white-space: pre-wrap;">%s</pre>
</body>
</html>`,
		html.EscapeString(string(run.Status)),
		run.ID, html.EscapeString(string(run.Variant)), html.EscapeString(run.BaseURL),
		run.ItemCount, run.ResultCount, run.ErrorCount,
		html.EscapeString(run.ErrorMessage))
}
