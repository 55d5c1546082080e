package email_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"narrabridge/internal/domain"
	"narrabridge/internal/email"
)

func TestRunFailedTemplates(t *testing.T) {
	run := &domain.DispatchRun{
		ID:           uuid.New(),
		RequestID:    "req-7",
		Variant:      domain.VariantDocument,
		Status:       domain.RunStatusPartial,
		BaseURL:      domain.RegionEurope,
		ItemCount:    3,
		ResultCount:  2,
		ErrorCount:   1,
		ErrorMessage: "item 2: transport error: <timeout>",
	}

	assert.Equal(t, "[narrabridge] document dispatch partial (1/3 failed)", email.RunFailedSubject(run))

	text := email.RunFailedText(run)
	assert.Contains(t, text, run.ID.String())
	assert.Contains(t, text, "Request ID: req-7")
	assert.Contains(t, text, "<timeout>")

	html := email.RunFailedHTML(run)
	assert.Contains(t, html, "&lt;timeout&gt;")
	assert.NotContains(t, html, "<timeout>")
}
