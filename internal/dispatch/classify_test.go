package dispatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"narrabridge/internal/dispatch"
	"narrabridge/internal/domain"
)

func TestClassify_BinaryWinsOverEverything(t *testing.T) {
	item := &domain.WorkItem{
		JSON: map[string]any{"body": "some text"},
		Binary: map[string]*domain.BinaryAttachment{
			"data": {Data: "aGVsbG8=", Encoding: "base64", FileName: "a.pdf", MimeType: "application/pdf"},
		},
	}

	mode := dispatch.Classify(item, "data", []string{"https://x"}, dispatch.FieldText("body", ""))

	bin, ok := mode.(domain.ModeBinary)
	assert.True(t, ok)
	assert.Equal(t, "a.pdf", bin.FileName)
	assert.Equal(t, "application/pdf", bin.MimeType)
	assert.Equal(t, "base64", bin.Encoding)
}

func TestClassify_URLListBeforeText(t *testing.T) {
	item := &domain.WorkItem{JSON: map[string]any{"body": "hello"}}

	mode := dispatch.Classify(item, "data", []string{"https://a", "https://b"}, dispatch.FieldText("body", ""))

	assert.Equal(t, domain.ModeURLList{URLs: []string{"https://a", "https://b"}}, mode)
}

func TestClassify_URLListIsCopied(t *testing.T) {
	urls := []string{"https://a"}
	mode := dispatch.Classify(&domain.WorkItem{}, "", urls, dispatch.TextSource{})
	urls[0] = "https://changed"

	assert.Equal(t, []string{"https://a"}, mode.(domain.ModeURLList).URLs)
}

func TestClassify_TextFromField(t *testing.T) {
	item := &domain.WorkItem{JSON: map[string]any{"body": "hello"}}

	mode := dispatch.Classify(item, "data", nil, dispatch.FieldText("body", "notes"))

	assert.Equal(t, domain.ModeText{Content: "hello", FileName: "notes"}, mode)
}

func TestClassify_LiteralText(t *testing.T) {
	mode := dispatch.Classify(&domain.WorkItem{}, "", nil, dispatch.LiteralText("meeting notes", ""))

	assert.Equal(t, domain.ModeText{Content: "meeting notes"}, mode)
}

func TestClassify_None(t *testing.T) {
	tests := []struct {
		name string
		item *domain.WorkItem
		text dispatch.TextSource
	}{
		{"empty item", &domain.WorkItem{}, dispatch.TextSource{}},
		{"blank text", &domain.WorkItem{JSON: map[string]any{"body": "  \n\t"}}, dispatch.FieldText("body", "")},
		{"non-string field", &domain.WorkItem{JSON: map[string]any{"body": 42}}, dispatch.FieldText("body", "")},
		{"missing field", &domain.WorkItem{JSON: map[string]any{"other": "x"}}, dispatch.FieldText("body", "")},
		{"nil attachment", &domain.WorkItem{Binary: map[string]*domain.BinaryAttachment{"data": nil}}, dispatch.TextSource{}},
		{"attachment under other name", &domain.WorkItem{Binary: map[string]*domain.BinaryAttachment{"file": {Data: "x"}}}, dispatch.TextSource{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode := dispatch.Classify(tt.item, "data", nil, tt.text)
			assert.Equal(t, domain.ModeNone{}, mode)
		})
	}
}

func TestClassify_EmptyURLListFallsThrough(t *testing.T) {
	item := &domain.WorkItem{JSON: map[string]any{"body": "hello"}}

	mode := dispatch.Classify(item, "", []string{}, dispatch.FieldText("body", ""))

	_, ok := mode.(domain.ModeText)
	assert.True(t, ok)
}

func TestResolveBaseURL(t *testing.T) {
	assert.Equal(t, "https://custom", dispatch.ResolveBaseURL(true, "https://custom", domain.RegionEurope))
	assert.Equal(t, domain.RegionEurope, dispatch.ResolveBaseURL(false, "https://custom", domain.RegionEurope))
	assert.Equal(t, "", dispatch.ResolveBaseURL(true, "", domain.RegionCanada))
}
