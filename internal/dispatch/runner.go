// Package dispatch resolves each workflow item to a single upload request
// and sends the batch to the document service one item at a time.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"narrabridge/internal/domain"
	"narrabridge/internal/logging"
	"narrabridge/internal/port"
)

// Batch is one execution request. Params holds one resolved entry per item.
type Batch struct {
	Variant domain.Variant
	Policy  domain.Policy
	Items   []domain.WorkItem
	Params  []domain.ItemParams
}

// Outcome is the result of processing one item: exactly one field is set.
type Outcome struct {
	Result *domain.UploadResult
	Err    *domain.DispatchError
}

// AttachmentResolver materializes an attachment whose bytes live outside the
// item. It is called just before the item at index is classified.
type AttachmentResolver func(ctx context.Context, index int, name string, att *domain.BinaryAttachment) (*domain.BinaryAttachment, *domain.DispatchError)

// Runner processes batches sequentially through a DocumentClient.
type Runner struct {
	client  port.DocumentClient
	resolve AttachmentResolver
}

// NewRunner creates a Runner.
func NewRunner(client port.DocumentClient) *Runner {
	return &Runner{client: client}
}

// WithResolver sets the hook used for attachments that need fetching.
func (r *Runner) WithResolver(fn AttachmentResolver) *Runner {
	r.resolve = fn
	return r
}

// Run executes the batch. The returned BatchResult is never nil and holds
// every result accumulated before a fail-fast stop. The error is the first
// DispatchError under fail-fast, or all of them joined under collect-all.
func (r *Runner) Run(ctx context.Context, batch Batch) (*domain.BatchResult, error) {
	if len(batch.Params) != len(batch.Items) {
		return &domain.BatchResult{}, fmt.Errorf("batch has %d items but %d param sets", len(batch.Items), len(batch.Params))
	}

	if batch.Variant == domain.VariantURLBatch {
		return r.runURLBatch(ctx, batch)
	}

	agg := NewAggregator(batch.Variant, len(batch.Items))
	result := &domain.BatchResult{}

	for i := range batch.Items {
		sent, derr := r.processItem(ctx, batch.Variant, i, &batch.Items[i], batch.Params[i])
		if derr != nil {
			logging.Warnf("dispatch.Run: %v", derr)
			result.Errors = append(result.Errors, derr)
			if batch.Policy != domain.PolicyCollectAll {
				break
			}
			continue
		}
		agg.Append(i, sent.mode, sent.fileName, sent.response)
	}

	result.Results = agg.Results()
	return result, batchError(result.Errors, batch.Policy)
}

// ProcessItem runs classify, build and send for a single item.
func (r *Runner) ProcessItem(ctx context.Context, variant domain.Variant, index int, item *domain.WorkItem, params domain.ItemParams) Outcome {
	sent, derr := r.processItem(ctx, variant, index, item, params)
	if derr != nil {
		return Outcome{Err: derr}
	}
	agg := NewAggregator(variant, 1)
	agg.Append(index, sent.mode, sent.fileName, sent.response)
	return Outcome{Result: &agg.Results()[0]}
}

type sentItem struct {
	mode     domain.InputMode
	fileName string
	response json.RawMessage
}

func (r *Runner) processItem(ctx context.Context, variant domain.Variant, index int, item *domain.WorkItem, params domain.ItemParams) (*sentItem, *domain.DispatchError) {
	sent, derr := r.sendItem(ctx, variant, index, item, params)
	if derr != nil && variant == domain.VariantText {
		derr.Message = fmt.Sprintf("request failed for item %d: %s", index+1, derr.Message)
	}
	return sent, derr
}

func (r *Runner) sendItem(ctx context.Context, variant domain.Variant, index int, item *domain.WorkItem, params domain.ItemParams) (*sentItem, *domain.DispatchError) {
	item, derr := r.materialize(ctx, variant, index, item, params)
	if derr != nil {
		return nil, derr
	}

	mode, derr := selectMode(variant, index, item, params)
	if derr != nil {
		return nil, derr
	}

	payload, err := BuildPayload(mode, params.Token, index)
	if err != nil {
		return nil, domain.NewDispatchError(index, domain.KindMalformedInput, err)
	}

	baseURL := ResolveBaseURL(params.UseCustomURL, params.CustomURL, params.PredefinedURL)
	logging.Debugf("dispatch.sendItem: item %d -> %s %s", index, baseURL, payload.Path)

	resp, err := r.client.Send(ctx, baseURL, payload)
	if err != nil {
		return nil, domain.NewDispatchError(index, domain.KindTransport, err)
	}
	return &sentItem{mode: mode, fileName: payload.FileName, response: resp}, nil
}

// materialize resolves the one attachment the variant reads. Other
// attachments are left as they are. The caller's item is never modified.
func (r *Runner) materialize(ctx context.Context, variant domain.Variant, index int, item *domain.WorkItem, params domain.ItemParams) (*domain.WorkItem, *domain.DispatchError) {
	if variant != domain.VariantDocument && variant != domain.VariantFile {
		return item, nil
	}
	name := params.BinaryPropertyName
	att := item.Attachment(name)
	if !att.NeedsFetch() {
		return item, nil
	}
	if r.resolve == nil {
		err := fmt.Errorf("attachment %q references s3://%s/%s but object storage is not configured", name, att.S3Bucket, att.S3Key)
		return nil, domain.NewDispatchError(index, domain.KindMalformedInput, err)
	}

	fetched, derr := r.resolve(ctx, index, name, att)
	if derr != nil {
		return nil, derr
	}

	binary := make(map[string]*domain.BinaryAttachment, len(item.Binary))
	for k, v := range item.Binary {
		binary[k] = v
	}
	binary[name] = fetched
	return &domain.WorkItem{JSON: item.JSON, Binary: binary}, nil
}

// selectMode applies the variant's view of an item's inputs.
func selectMode(variant domain.Variant, index int, item *domain.WorkItem, params domain.ItemParams) (domain.InputMode, *domain.DispatchError) {
	var mode domain.InputMode
	var missing error

	switch variant {
	case domain.VariantDocument:
		mode = Classify(item, params.BinaryPropertyName, params.URLList,
			FieldText(params.TextContentField, params.Filename))
		missing = domain.ErrNoInput
	case domain.VariantFile:
		mode = Classify(item, params.BinaryPropertyName, nil, TextSource{})
		if _, ok := mode.(domain.ModeNone); ok {
			err := fmt.Errorf("%w: %q", domain.ErrBinaryMissing, params.BinaryPropertyName)
			return nil, domain.NewDispatchError(index, domain.KindMalformedInput, err)
		}
	case domain.VariantText:
		mode = Classify(item, "", nil, LiteralText(params.TextContent, params.Filename))
		missing = domain.ErrEmptyText
	case domain.VariantURLs:
		mode = Classify(item, "", params.URLList, TextSource{})
		missing = domain.ErrNoURLs
	default:
		return nil, domain.NewDispatchError(index, domain.KindClassification, domain.ErrUnknownVariant)
	}

	if _, ok := mode.(domain.ModeNone); ok {
		return nil, domain.NewDispatchError(index, domain.KindClassification, missing)
	}
	return mode, nil
}

// runURLBatch gathers the string field named by the first item's params
// across all items and sends them in a single request.
func (r *Runner) runURLBatch(ctx context.Context, batch Batch) (*domain.BatchResult, error) {
	result := &domain.BatchResult{}
	var params domain.ItemParams
	if len(batch.Params) > 0 {
		params = batch.Params[0]
	}

	var urls []string
	for i := range batch.Items {
		if u, ok := batch.Items[i].StringField(params.InputFieldName); ok {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		err := fmt.Errorf("%w %q", domain.ErrNoURLs, params.InputFieldName)
		derr := domain.NewDispatchError(domain.BatchIndex, domain.KindClassification, err)
		result.Errors = append(result.Errors, derr)
		return result, derr
	}

	payload, err := BuildPayload(domain.ModeURLList{URLs: urls}, params.Token, 0)
	if err != nil {
		derr := domain.NewDispatchError(domain.BatchIndex, domain.KindMalformedInput, err)
		result.Errors = append(result.Errors, derr)
		return result, derr
	}

	baseURL := ResolveBaseURL(params.UseCustomURL, params.CustomURL, params.PredefinedURL)
	logging.Debugf("dispatch.runURLBatch: %d urls -> %s", len(urls), baseURL)

	resp, err := r.client.Send(ctx, baseURL, payload)
	if err != nil {
		derr := domain.NewDispatchError(domain.BatchIndex, domain.KindTransport, err)
		result.Errors = append(result.Errors, derr)
		return result, derr
	}

	agg := NewAggregator(batch.Variant, 1)
	agg.AppendBatch(urls, resp)
	result.Results = agg.Results()
	return result, nil
}

func batchError(errs []*domain.DispatchError, policy domain.Policy) error {
	if len(errs) == 0 {
		return nil
	}
	if policy != domain.PolicyCollectAll || len(errs) == 1 {
		return errs[0]
	}
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}
