package domain

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// WorkItem is one unit of an upstream workflow batch. The core never mutates it.
type WorkItem struct {
	JSON   map[string]any               `json:"json,omitempty"`
	Binary map[string]*BinaryAttachment `json:"binary,omitempty"`
}

// BinaryAttachment is a named file attached to a work item. Data is the
// attachment encoded as declared by Encoding. When S3Key is set and Data is
// empty, the attachment is fetched from object storage before dispatch.
type BinaryAttachment struct {
	Data     string `json:"data,omitempty"`
	FileName string `json:"fileName,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	S3Bucket string `json:"s3Bucket,omitempty"`
	S3Key    string `json:"s3Key,omitempty"`
}

// NeedsFetch reports whether the attachment bytes live in object storage.
func (a *BinaryAttachment) NeedsFetch() bool {
	return a != nil && a.Data == "" && a.S3Key != ""
}

// StringField returns item.JSON[name] when it is a string.
func (w *WorkItem) StringField(name string) (string, bool) {
	if w == nil || w.JSON == nil || name == "" {
		return "", false
	}
	s, ok := w.JSON[name].(string)
	return s, ok
}

// Attachment returns the named attachment or nil.
func (w *WorkItem) Attachment(name string) *BinaryAttachment {
	if w == nil || w.Binary == nil {
		return nil
	}
	return w.Binary[name]
}

// InputMode is the closed set of payload shapes an item can produce.
type InputMode interface {
	inputMode()
}

// ModeBinary carries an attachment still in its declared encoding.
type ModeBinary struct {
	Data     string
	Encoding string
	FileName string
	MimeType string
}

// ModeURLList carries a non-empty ordered list of URLs.
type ModeURLList struct {
	URLs []string
}

// ModeText carries non-blank text and an optional user-supplied filename.
type ModeText struct {
	Content  string
	FileName string
}

// ModeNone means the item has no usable input.
type ModeNone struct{}

func (ModeBinary) inputMode()  {}
func (ModeURLList) inputMode() {}
func (ModeText) inputMode()    {}
func (ModeNone) inputMode()    {}

// Payload is a fully built outbound request, ready for the document client.
type Payload struct {
	Path     EndpointPath
	Body     []byte
	Header   http.Header
	FileName string
}

// ItemParams is the per-item configuration after all host-side binding has
// been resolved.
type ItemParams struct {
	UseCustomURL       bool     `json:"useCustomUrl"`
	CustomURL          string   `json:"customUrl"`
	PredefinedURL      string   `json:"predefinedUrl"`
	Token              string   `json:"-"`
	BinaryPropertyName string   `json:"binaryPropertyName"`
	URLList            []string `json:"urlList"`
	TextContentField   string   `json:"textContentField"`
	TextContent        string   `json:"textContent"`
	Filename           string   `json:"filename"`
	InputFieldName     string   `json:"inputFieldName"`
}

// UploadResult is the normalized record produced for one dispatched request.
type UploadResult struct {
	Index    int             `json:"index"`
	Status   UploadStatus    `json:"status"`
	FileName string          `json:"filename,omitempty"`
	SentURLs []string        `json:"sentUrls,omitempty"`
	Response json.RawMessage `json:"response"`
}

// BatchResult holds everything produced by one batch execution.
type BatchResult struct {
	Results []UploadResult
	Errors  []*DispatchError
}

// Failed reports whether any item failed.
func (b *BatchResult) Failed() bool {
	return len(b.Errors) > 0
}

// DispatchRun is the audit record of one batch execution. It never stores the
// bearer token, only a keyed fingerprint of it.
type DispatchRun struct {
	ID               uuid.UUID `db:"id" json:"id"`
	RequestID        string    `db:"request_id" json:"request_id"`
	Subject          string    `db:"subject" json:"subject,omitempty"`
	Variant          Variant   `db:"variant" json:"variant"`
	Policy           Policy    `db:"policy" json:"policy"`
	BaseURL          string    `db:"base_url" json:"base_url"`
	TokenFingerprint string    `db:"token_fingerprint" json:"token_fingerprint"`
	ItemCount        int       `db:"item_count" json:"item_count"`
	ResultCount      int       `db:"result_count" json:"result_count"`
	ErrorCount       int       `db:"error_count" json:"error_count"`
	Status           RunStatus `db:"status" json:"status"`
	ErrorMessage     string    `db:"error_message" json:"error_message,omitempty"`
	ArchiveKey       string    `db:"archive_key" json:"archive_key,omitempty"`
	StartedAt        time.Time `db:"started_at" json:"started_at"`
	FinishedAt       time.Time `db:"finished_at" json:"finished_at"`
}
