package service

import (
	"narrabridge/internal/config"
	"narrabridge/internal/domain"
)

// Params are the host-supplied node parameters. Nil fields are unset, so a
// per-item Params can override only the fields it names.
type Params struct {
	UseCustomURL       *bool    `json:"useCustomUrl,omitempty"`
	CustomURL          *string  `json:"customUrl,omitempty"`
	PredefinedURL      *string  `json:"predefinedUrl,omitempty" example:"europe"`
	Token              *string  `json:"token,omitempty"`
	BinaryPropertyName *string  `json:"binaryPropertyName,omitempty" example:"data"`
	URLList            []string `json:"urlList,omitempty"`
	TextContentField   *string  `json:"textContentField,omitempty"`
	TextContent        *string  `json:"textContent,omitempty"`
	Filename           *string  `json:"filename,omitempty"`
	InputFieldName     *string  `json:"inputFieldName,omitempty" example:"url"`
}

// Merge returns p with every field set in o taking precedence.
func (p Params) Merge(o *Params) Params {
	if o == nil {
		return p
	}
	out := p
	if o.UseCustomURL != nil {
		out.UseCustomURL = o.UseCustomURL
	}
	if o.CustomURL != nil {
		out.CustomURL = o.CustomURL
	}
	if o.PredefinedURL != nil {
		out.PredefinedURL = o.PredefinedURL
	}
	if o.Token != nil {
		out.Token = o.Token
	}
	if o.BinaryPropertyName != nil {
		out.BinaryPropertyName = o.BinaryPropertyName
	}
	if o.URLList != nil {
		out.URLList = o.URLList
	}
	if o.TextContentField != nil {
		out.TextContentField = o.TextContentField
	}
	if o.TextContent != nil {
		out.TextContent = o.TextContent
	}
	if o.Filename != nil {
		out.Filename = o.Filename
	}
	if o.InputFieldName != nil {
		out.InputFieldName = o.InputFieldName
	}
	return out
}

// Resolve materializes p into the fully resolved form the dispatcher uses,
// filling unset fields from configuration.
func (p Params) Resolve(variant domain.Variant, cfg *config.Config) domain.ItemParams {
	out := domain.ItemParams{
		UseCustomURL:       cfg.Narratheque.UseCustomURL,
		CustomURL:          cfg.Narratheque.CustomURL,
		PredefinedURL:      cfg.Narratheque.PredefinedURL(),
		BinaryPropertyName: cfg.Dispatch.BinaryProperty,
		InputFieldName:     cfg.Dispatch.InputFieldName,
		URLList:            p.URLList,
		TextContentField:   deref(p.TextContentField),
		TextContent:        deref(p.TextContent),
		Filename:           deref(p.Filename),
	}
	if p.UseCustomURL != nil {
		out.UseCustomURL = *p.UseCustomURL
	}
	if p.CustomURL != nil {
		out.CustomURL = *p.CustomURL
	}
	if p.PredefinedURL != nil {
		out.PredefinedURL = domain.RegionURL(*p.PredefinedURL)
	}
	if p.BinaryPropertyName != nil {
		out.BinaryPropertyName = *p.BinaryPropertyName
	}
	if p.InputFieldName != nil {
		out.InputFieldName = *p.InputFieldName
	}
	out.Token = TokenFor(variant, deref(p.Token), cfg.Narratheque.Token)
	return out
}

// TokenFor picks the bearer token for a variant. The file and url-batch
// entry points use the stored credential first; the others prefer the
// token passed as a parameter.
func TokenFor(variant domain.Variant, param, stored string) string {
	switch variant {
	case domain.VariantFile, domain.VariantURLBatch:
		if stored != "" {
			return stored
		}
		return param
	default:
		if param != "" {
			return param
		}
		return stored
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
