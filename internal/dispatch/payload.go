package dispatch

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"unicode/utf16"

	"narrabridge/internal/domain"
)

// BuildPayload turns a selected input mode into an outbound request for the
// item at index. ModeNone is rejected; callers divert it to an error first.
func BuildPayload(mode domain.InputMode, token string, index int) (*domain.Payload, error) {
	switch m := mode.(type) {
	case domain.ModeBinary:
		data, err := DecodeAttachment(m.Data, m.Encoding)
		if err != nil {
			return nil, err
		}
		fileName := m.FileName
		if fileName == "" {
			fileName = domain.DefaultFileName
		}
		partType := m.MimeType
		if partType == "" {
			partType = domain.DefaultBinaryMIME
		}
		return buildMultipart(data, fileName, partType, m.MimeType, token)
	case domain.ModeText:
		fileName := TextFileName(m.FileName, index)
		return buildMultipart([]byte(m.Content), fileName, domain.TextMIME, domain.TextMIME, token)
	case domain.ModeURLList:
		return buildURLList(m.URLs, token)
	case domain.ModeNone:
		return nil, domain.ErrNoInput
	default:
		return nil, fmt.Errorf("unsupported input mode %T", mode)
	}
}

// TextFileName derives a per-item filename for generated text files. A
// trailing ".txt" is stripped before the positional suffix so "report" and
// "report.txt" both become "report-1.txt" at index 0.
func TextFileName(userFileName string, index int) string {
	suffix := fmt.Sprintf("-%d", index+1)
	name := strings.TrimSpace(userFileName)
	if name == "" {
		return domain.GeneratedTextPrefix + suffix + ".txt"
	}
	if strings.HasSuffix(strings.ToLower(name), ".txt") {
		name = name[:len(name)-len(".txt")]
	}
	return name + suffix + ".txt"
}

// DecodeAttachment converts attachment data from its declared encoding into
// raw bytes. An empty encoding means utf8.
func DecodeAttachment(data, encoding string) ([]byte, error) {
	switch strings.ToLower(encoding) {
	case "", "utf8", "utf-8":
		return []byte(data), nil
	case "binary", "latin1", "ascii":
		out := make([]byte, 0, len(data))
		for _, r := range data {
			out = append(out, byte(r))
		}
		return out, nil
	case "base64":
		out, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			out, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
		}
		if err != nil {
			return nil, fmt.Errorf("decoding base64 attachment: %w", err)
		}
		return out, nil
	case "hex":
		out, err := hex.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("decoding hex attachment: %w", err)
		}
		return out, nil
	case "ucs2", "ucs-2", "utf16le", "utf-16le":
		units := utf16.Encode([]rune(data))
		out := make([]byte, 0, len(units)*2)
		for _, u := range units {
			out = append(out, byte(u), byte(u>>8))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEncoding, encoding)
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// buildMultipart writes the file part plus the scalar filename and
// contentType parts the document service also reads.
func buildMultipart(data []byte, fileName, partType, declaredType, token string) (*domain.Payload, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(fileName)))
	h.Set("Content-Type", partType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("writing file part: %w", err)
	}
	if err := w.WriteField("filename", fileName); err != nil {
		return nil, fmt.Errorf("writing filename field: %w", err)
	}
	if err := w.WriteField("contentType", declaredType); err != nil {
		return nil, fmt.Errorf("writing contentType field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	header := make(http.Header)
	header.Set("Content-Type", w.FormDataContentType())
	header.Set("Authorization", "Bearer "+token)

	return &domain.Payload{
		Path:     domain.PathDocuments,
		Body:     body.Bytes(),
		Header:   header,
		FileName: fileName,
	}, nil
}

type urlListBody struct {
	URLs []string `json:"urls"`
}

func buildURLList(urls []string, token string) (*domain.Payload, error) {
	body, err := json.Marshal(urlListBody{URLs: urls})
	if err != nil {
		return nil, fmt.Errorf("marshaling url list: %w", err)
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	header.Set("Authorization", "Bearer "+token)

	return &domain.Payload{
		Path:   domain.PathDocumentsFromURLs,
		Body:   body,
		Header: header,
	}, nil
}
