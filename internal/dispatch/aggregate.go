package dispatch

import (
	"encoding/json"

	"narrabridge/internal/domain"
)

// StatusFor returns the result label for a mode dispatched by variant. The
// text entry point labels its uploads as dynamic content.
func StatusFor(variant domain.Variant, mode domain.InputMode) domain.UploadStatus {
	switch mode.(type) {
	case domain.ModeBinary:
		return domain.StatusUploadedBinary
	case domain.ModeText:
		if variant == domain.VariantText {
			return domain.StatusUploadedDynamicText
		}
		return domain.StatusUploadedText
	case domain.ModeURLList:
		return domain.StatusUploadedURLs
	default:
		return ""
	}
}

// Aggregator accumulates results in dispatch order. It is append-only.
type Aggregator struct {
	variant domain.Variant
	results []domain.UploadResult
}

// NewAggregator creates an Aggregator sized for n items dispatched by variant.
func NewAggregator(variant domain.Variant, n int) *Aggregator {
	return &Aggregator{variant: variant, results: make([]domain.UploadResult, 0, n)}
}

// Append records the response for the item at index. fileName is kept only
// for text uploads, where it was derived rather than supplied.
func (a *Aggregator) Append(index int, mode domain.InputMode, fileName string, response json.RawMessage) {
	res := domain.UploadResult{
		Index:    index,
		Status:   StatusFor(a.variant, mode),
		Response: response,
	}
	if _, ok := mode.(domain.ModeText); ok {
		res.FileName = fileName
	}
	a.results = append(a.results, res)
}

// AppendBatch records the single trailing result of a batch URL dispatch.
func (a *Aggregator) AppendBatch(urls []string, response json.RawMessage) {
	a.results = append(a.results, domain.UploadResult{
		Index:    domain.BatchIndex,
		Status:   domain.StatusUploadedURLs,
		SentURLs: urls,
		Response: response,
	})
}

// Results returns the accumulated results.
func (a *Aggregator) Results() []domain.UploadResult {
	return a.results
}

// Len returns the number of results so far.
func (a *Aggregator) Len() int {
	return len(a.results)
}
