package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/google/uuid"

	"narrabridge/internal/auth"
	"narrabridge/internal/config"
	"narrabridge/internal/dispatch"
	"narrabridge/internal/domain"
	"narrabridge/internal/port"
)

// BatchItem is one work item as received from the host, with optional
// parameter overrides evaluated for that item.
type BatchItem struct {
	JSON   map[string]any                      `json:"json,omitempty"`
	Binary map[string]*domain.BinaryAttachment `json:"binary,omitempty"`
	Params *Params                             `json:"params,omitempty"`
}

// BatchRequest is the DTO for a batch execution.
type BatchRequest struct {
	RequestID string         `json:"-"`
	Subject   string         `json:"-"`
	Variant   domain.Variant `json:"-"`
	Policy    string         `json:"policy,omitempty" example:"fail_fast"`
	Params    Params         `json:"params"`
	Items     []BatchItem    `json:"items"`
}

// BatchResponse reports every result and error of a batch execution.
type BatchResponse struct {
	RunID   uuid.UUID               `json:"run_id"`
	Variant domain.Variant          `json:"variant"`
	Status  domain.RunStatus        `json:"status"`
	Results []domain.UploadResult   `json:"results"`
	Errors  []*domain.DispatchError `json:"errors,omitempty"`
}

// DispatchService defines the batch dispatch contract.
type DispatchService interface {
	Execute(ctx context.Context, req BatchRequest) (*BatchResponse, error)
	GetRun(ctx context.Context, id uuid.UUID) (*domain.DispatchRun, error)
	ListRuns(ctx context.Context, offset, limit int) ([]domain.DispatchRun, int, error)
}

type dispatchService struct {
	runner   *dispatch.Runner
	storage  port.ObjectStorage
	runs     port.RunRepository
	notifier port.FailureNotifier
	cfg      *config.Config
	now      func() time.Time
}

// NewDispatchService creates a new DispatchService implementation. storage,
// runs and notifier may be nil to disable attachment fetches and archives,
// run auditing and failure notification respectively.
func NewDispatchService(
	client port.DocumentClient,
	storage port.ObjectStorage,
	runs port.RunRepository,
	notifier port.FailureNotifier,
	cfg *config.Config,
) DispatchService {
	s := &dispatchService{
		runner:   dispatch.NewRunner(client),
		storage:  storage,
		runs:     runs,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
	}
	if storage != nil {
		s.runner.WithResolver(s.fetchAttachment)
	}
	return s
}

func (s *dispatchService) Execute(ctx context.Context, req BatchRequest) (*BatchResponse, error) {
	if _, err := domain.ParseVariant(string(req.Variant)); err != nil {
		return nil, err
	}
	policyName := req.Policy
	if policyName == "" {
		policyName = s.cfg.Dispatch.Policy
	}
	policy, err := domain.ParsePolicy(policyName)
	if err != nil {
		return nil, err
	}

	started := s.now().UTC()
	run := &domain.DispatchRun{
		ID:        uuid.New(),
		RequestID: req.RequestID,
		Subject:   req.Subject,
		Variant:   req.Variant,
		Policy:    policy,
		ItemCount: len(req.Items),
		StartedAt: started,
	}

	batch := dispatch.Batch{
		Variant: req.Variant,
		Policy:  policy,
		Items:   make([]domain.WorkItem, len(req.Items)),
		Params:  make([]domain.ItemParams, len(req.Items)),
	}
	for i := range req.Items {
		batch.Items[i] = domain.WorkItem{JSON: req.Items[i].JSON, Binary: req.Items[i].Binary}
		batch.Params[i] = req.Params.Merge(req.Items[i].Params).Resolve(req.Variant, s.cfg)
	}
	if len(batch.Params) > 0 {
		p := batch.Params[0]
		run.BaseURL = dispatch.ResolveBaseURL(p.UseCustomURL, p.CustomURL, p.PredefinedURL)
		run.TokenFingerprint = auth.Fingerprint(s.cfg.Auth.FingerprintKey, p.Token)
	}

	log.Printf("dispatchService.Execute: run %s variant=%s items=%d policy=%s",
		run.ID, req.Variant, len(req.Items), policy)

	result, runErr := s.runner.Run(ctx, batch)

	resp := &BatchResponse{
		RunID:   run.ID,
		Variant: req.Variant,
		Status:  runStatus(result),
		Results: result.Results,
		Errors:  result.Errors,
	}
	if resp.Results == nil {
		resp.Results = []domain.UploadResult{}
	}

	run.ResultCount = len(result.Results)
	run.ErrorCount = len(result.Errors)
	run.Status = resp.Status
	if len(result.Errors) > 0 {
		run.ErrorMessage = result.Errors[0].Error()
	}
	run.ArchiveKey = s.archive(ctx, run.ID, resp)
	run.FinishedAt = s.now().UTC()

	s.record(ctx, run)
	if run.Status != domain.RunStatusSucceeded {
		s.notify(ctx, run)
	}

	return resp, runErr
}

// fetchAttachment downloads an attachment held in object storage. It runs
// inside the item pipeline, so a failure belongs to that item alone.
func (s *dispatchService) fetchAttachment(ctx context.Context, index int, name string, att *domain.BinaryAttachment) (*domain.BinaryAttachment, *domain.DispatchError) {
	data, err := s.storage.Download(ctx, att.S3Bucket, att.S3Key)
	if err != nil {
		return nil, domain.NewDispatchError(index, domain.KindTransport, fmt.Errorf("fetching attachment %q: %w", name, err))
	}
	fetched := *att
	fetched.Data = base64.StdEncoding.EncodeToString(data)
	fetched.Encoding = "base64"
	if fetched.FileName == "" {
		fetched.FileName = path.Base(att.S3Key)
	}
	return &fetched, nil
}

func (s *dispatchService) archive(ctx context.Context, runID uuid.UUID, resp *BatchResponse) string {
	if s.storage == nil || s.cfg.S3.ArchiveBucket == "" {
		return ""
	}
	body, err := json.Marshal(resp)
	if err != nil {
		log.Printf("dispatchService.archive: marshal run %s: %v", runID, err)
		return ""
	}
	key := path.Join(s.cfg.S3.ArchivePrefix, runID.String(), "results.json")
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.S3.ArchiveBucket,
		Key:         key,
		Body:        bytes.NewReader(body),
		ContentType: "application/json",
	})
	if err != nil {
		log.Printf("dispatchService.archive: upload run %s: %v", runID, err)
		return ""
	}
	return key
}

func (s *dispatchService) record(ctx context.Context, run *domain.DispatchRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Create(ctx, run); err != nil {
		log.Printf("dispatchService.record: failed to store run %s: %v", run.ID, err)
	}
}

func (s *dispatchService) notify(ctx context.Context, run *domain.DispatchRun) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyRunFailed(ctx, run); err != nil {
		log.Printf("dispatchService.notify: run %s: %v", run.ID, err)
	}
}

func (s *dispatchService) GetRun(ctx context.Context, id uuid.UUID) (*domain.DispatchRun, error) {
	if s.runs == nil {
		return nil, domain.ErrAuditDisabled
	}
	return s.runs.GetByID(ctx, id)
}

func (s *dispatchService) ListRuns(ctx context.Context, offset, limit int) ([]domain.DispatchRun, int, error) {
	if s.runs == nil {
		return nil, 0, domain.ErrAuditDisabled
	}
	return s.runs.List(ctx, offset, limit)
}

func runStatus(result *domain.BatchResult) domain.RunStatus {
	switch {
	case len(result.Errors) == 0:
		return domain.RunStatusSucceeded
	case len(result.Results) > 0:
		return domain.RunStatusPartial
	default:
		return domain.RunStatusFailed
	}
}

// IsDispatchFailure reports whether err came from processing items rather
// than from validating the request.
func IsDispatchFailure(err error) bool {
	if _, ok := domain.AsDispatchError(err); ok {
		return true
	}
	var joined interface{ Unwrap() []error }
	return errors.As(err, &joined)
}
