package dispatch_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"narrabridge/internal/dispatch"
	"narrabridge/internal/domain"
)

type formPart struct {
	fileName    string
	contentType string
	data        []byte
}

// readForm parses a multipart payload into its parts keyed by form name.
func readForm(t *testing.T, p *domain.Payload) map[string]formPart {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(p.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	parts := map[string]formPart{}
	r := multipart.NewReader(bytes.NewReader(p.Body), params["boundary"])
	for {
		part, err := r.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		parts[part.FormName()] = formPart{
			fileName:    part.FileName(),
			contentType: part.Header.Get("Content-Type"),
			data:        data,
		}
	}
	return parts
}

func TestBuildPayload_Binary(t *testing.T) {
	mode := domain.ModeBinary{Data: "JVBERi0=", Encoding: "base64", FileName: "a.pdf", MimeType: "application/pdf"}

	p, err := dispatch.BuildPayload(mode, "tok", 0)
	require.NoError(t, err)

	assert.Equal(t, domain.PathDocuments, p.Path)
	assert.Equal(t, "Bearer tok", p.Header.Get("Authorization"))
	assert.Equal(t, "a.pdf", p.FileName)

	parts := readForm(t, p)
	assert.Equal(t, "a.pdf", parts["file"].fileName)
	assert.Equal(t, "application/pdf", parts["file"].contentType)
	assert.Equal(t, []byte("%PDF-"), parts["file"].data)
	assert.Equal(t, "a.pdf", string(parts["filename"].data))
	assert.Equal(t, "application/pdf", string(parts["contentType"].data))
}

func TestBuildPayload_BinaryDefaults(t *testing.T) {
	p, err := dispatch.BuildPayload(domain.ModeBinary{Data: "raw"}, "tok", 3)
	require.NoError(t, err)

	parts := readForm(t, p)
	assert.Equal(t, domain.DefaultFileName, parts["file"].fileName)
	assert.Equal(t, domain.DefaultBinaryMIME, parts["file"].contentType)
	assert.Equal(t, []byte("raw"), parts["file"].data)
	assert.Equal(t, "", string(parts["contentType"].data))
}

func TestBuildPayload_BinaryBadEncoding(t *testing.T) {
	_, err := dispatch.BuildPayload(domain.ModeBinary{Data: "x", Encoding: "ebcdic"}, "tok", 0)
	assert.ErrorIs(t, err, domain.ErrUnknownEncoding)
}

func TestBuildPayload_Text(t *testing.T) {
	p, err := dispatch.BuildPayload(domain.ModeText{Content: "hello"}, "tok", 0)
	require.NoError(t, err)

	assert.Equal(t, "import-text-n8n-1.txt", p.FileName)
	parts := readForm(t, p)
	assert.Equal(t, "import-text-n8n-1.txt", parts["file"].fileName)
	assert.Equal(t, domain.TextMIME, parts["file"].contentType)
	assert.Equal(t, "hello", string(parts["file"].data))
	assert.Equal(t, domain.TextMIME, string(parts["contentType"].data))
}

func TestBuildPayload_URLList(t *testing.T) {
	p, err := dispatch.BuildPayload(domain.ModeURLList{URLs: []string{"https://a", "https://b"}}, "tok", 0)
	require.NoError(t, err)

	assert.Equal(t, domain.PathDocumentsFromURLs, p.Path)
	assert.Equal(t, "application/json", p.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer tok", p.Header.Get("Authorization"))
	assert.JSONEq(t, `{"urls":["https://a","https://b"]}`, string(p.Body))
}

func TestBuildPayload_None(t *testing.T) {
	_, err := dispatch.BuildPayload(domain.ModeNone{}, "tok", 0)
	assert.ErrorIs(t, err, domain.ErrNoInput)
}

func TestBuildPayload_QuotedFileName(t *testing.T) {
	p, err := dispatch.BuildPayload(domain.ModeBinary{Data: "x", FileName: `q"uote.pdf`}, "tok", 0)
	require.NoError(t, err)

	parts := readForm(t, p)
	assert.Equal(t, `q"uote.pdf`, parts["file"].fileName)
}

func TestTextFileName(t *testing.T) {
	tests := []struct {
		in    string
		index int
		want  string
	}{
		{"", 0, "import-text-n8n-1.txt"},
		{"   ", 4, "import-text-n8n-5.txt"},
		{"report", 0, "report-1.txt"},
		{"report.txt", 0, "report-1.txt"},
		{"Report.TXT", 1, "Report-2.txt"},
		{" notes ", 2, "notes-3.txt"},
		{"archive.tar", 0, "archive.tar-1.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dispatch.TextFileName(tt.in, tt.index), "input %q", tt.in)
	}
}

func TestDecodeAttachment(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		encoding string
		want     []byte
	}{
		{"default utf8", "héllo", "", []byte("héllo")},
		{"utf-8", "abc", "utf-8", []byte("abc")},
		{"base64", "aGVsbG8=", "base64", []byte("hello")},
		{"base64 unpadded", "aGVsbG8", "base64", []byte("hello")},
		{"hex", "68690a", "hex", []byte("hi\n")},
		{"latin1", "é", "latin1", []byte{0xe9}},
		{"binary", "ÿ\u0000", "binary", []byte{0xff, 0x00}},
		{"utf16le", "hi", "utf16le", []byte{'h', 0, 'i', 0}},
		{"case insensitive", "aGk=", "BASE64", []byte("hi")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dispatch.DecodeAttachment(tt.data, tt.encoding)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeAttachment_Errors(t *testing.T) {
	_, err := dispatch.DecodeAttachment("zz", "hex")
	assert.Error(t, err)

	_, err = dispatch.DecodeAttachment("!!!", "base64")
	assert.Error(t, err)

	_, err = dispatch.DecodeAttachment("x", "rot13")
	assert.ErrorIs(t, err, domain.ErrUnknownEncoding)
}

func TestAggregator(t *testing.T) {
	agg := dispatch.NewAggregator(domain.VariantDocument, 3)
	agg.Append(0, domain.ModeBinary{}, "a.pdf", json.RawMessage(`{"id":1}`))
	agg.Append(1, domain.ModeText{}, "notes-2.txt", json.RawMessage(`{"id":2}`))
	agg.AppendBatch([]string{"https://a"}, json.RawMessage(`null`))

	results := agg.Results()
	require.Len(t, results, 3)
	assert.Equal(t, 3, agg.Len())

	assert.Equal(t, domain.StatusUploadedBinary, results[0].Status)
	assert.Empty(t, results[0].FileName)
	assert.Equal(t, domain.StatusUploadedText, results[1].Status)
	assert.Equal(t, "notes-2.txt", results[1].FileName)
	assert.Equal(t, domain.BatchIndex, results[2].Index)
	assert.Equal(t, domain.StatusUploadedURLs, results[2].Status)
	assert.Equal(t, []string{"https://a"}, results[2].SentURLs)
}

func TestStatusFor_TextVariant(t *testing.T) {
	assert.Equal(t, domain.StatusUploadedDynamicText, dispatch.StatusFor(domain.VariantText, domain.ModeText{}))
	assert.Equal(t, domain.StatusUploadedText, dispatch.StatusFor(domain.VariantDocument, domain.ModeText{}))
	assert.Equal(t, domain.StatusUploadedBinary, dispatch.StatusFor(domain.VariantText, domain.ModeBinary{}))
	assert.Empty(t, dispatch.StatusFor(domain.VariantURLs, domain.ModeNone{}))
}
