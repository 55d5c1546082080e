package dispatch

import (
	"strings"

	"narrabridge/internal/domain"
)

// TextSource says where an item's text comes from: a field of the item's
// JSON (Field) or a value that was already resolved by the host (Value).
type TextSource struct {
	Field    string
	Value    string
	FileName string
}

// FieldText reads text from the named JSON field of each item.
func FieldText(field, fileName string) TextSource {
	return TextSource{Field: field, FileName: fileName}
}

// LiteralText uses value as the text content.
func LiteralText(value, fileName string) TextSource {
	return TextSource{Value: value, FileName: fileName}
}

func (s TextSource) resolve(item *domain.WorkItem) string {
	if s.Field != "" {
		v, _ := item.StringField(s.Field)
		return v
	}
	return s.Value
}

// Classify selects exactly one input mode for item. The first match wins:
// binary attachment, then non-empty URL list, then non-blank text.
func Classify(item *domain.WorkItem, binaryProperty string, urlList []string, text TextSource) domain.InputMode {
	if binaryProperty != "" {
		if att := item.Attachment(binaryProperty); att != nil {
			return domain.ModeBinary{
				Data:     att.Data,
				Encoding: att.Encoding,
				FileName: att.FileName,
				MimeType: att.MimeType,
			}
		}
	}

	if len(urlList) > 0 {
		urls := make([]string, len(urlList))
		copy(urls, urlList)
		return domain.ModeURLList{URLs: urls}
	}

	if content := text.resolve(item); strings.TrimSpace(content) != "" {
		return domain.ModeText{Content: content, FileName: text.FileName}
	}

	return domain.ModeNone{}
}
