package domain

// Variant names a dispatch entry point. Each variant considers a different
// subset of inputs and sources its token differently.
type Variant string

const (
	VariantDocument Variant = "document"
	VariantFile     Variant = "file"
	VariantText     Variant = "text"
	VariantURLs     Variant = "urls"
	VariantURLBatch Variant = "url-batch"
)

// Variants lists every supported entry point.
var Variants = []Variant{VariantDocument, VariantFile, VariantText, VariantURLs, VariantURLBatch}

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", ErrUnknownVariant
}

// EndpointPath is the path segment under /api/app on the document service.
type EndpointPath string

const (
	PathDocuments         EndpointPath = "documents-jwt"
	PathDocumentsFromURLs EndpointPath = "documents-jwt-from-urls"
)

// Region URLs of the hosted document service.
const (
	RegionEurope = "https://api.narratheque.io"
	RegionCanada = "https://api.narratheque.ca"
)

// Regions maps region names to their base URL.
var Regions = map[string]string{
	"europe": RegionEurope,
	"canada": RegionCanada,
}

// RegionURL returns the base URL for a region name. Values that are not a
// known region name are returned unchanged so a literal URL can be configured.
func RegionURL(name string) string {
	if u, ok := Regions[name]; ok {
		return u
	}
	return name
}

// UploadStatus labels how an item reached the document service.
type UploadStatus string

const (
	StatusUploadedBinary      UploadStatus = "uploaded via binary"
	StatusUploadedText        UploadStatus = "uploaded via generated text file"
	StatusUploadedDynamicText UploadStatus = "uploaded via dynamic text content"
	StatusUploadedURLs        UploadStatus = "uploaded via urls"
)

// ErrorKind classifies a DispatchError.
type ErrorKind string

const (
	KindClassification ErrorKind = "classification"
	KindTransport      ErrorKind = "transport"
	KindMalformedInput ErrorKind = "malformed_input"
)

// Policy decides what a batch does after a per-item error.
type Policy string

const (
	PolicyFailFast   Policy = "fail_fast"
	PolicyCollectAll Policy = "collect_all"
)

// ParsePolicy validates a policy name. Empty selects fail-fast.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyFailFast:
		return PolicyFailFast, nil
	case PolicyCollectAll:
		return PolicyCollectAll, nil
	default:
		return "", ErrUnknownPolicy
	}
}

// RunStatus is the outcome of a recorded batch execution.
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusPartial   RunStatus = "partial"
	RunStatusFailed    RunStatus = "failed"
)

// Default values applied to attachments and generated text files.
const (
	DefaultFileName       = "file"
	DefaultBinaryMIME     = "application/octet-stream"
	TextMIME              = "text/plain"
	DefaultBinaryProperty = "data"
	GeneratedTextPrefix   = "import-text-n8n"
)
