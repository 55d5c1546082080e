package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"narrabridge/internal/domain"
	"narrabridge/internal/service"
)

func TestParams_Merge(t *testing.T) {
	base := service.Params{
		PredefinedURL: strPtr("europe"),
		Token:         strPtr("batch"),
		URLList:       []string{"https://a"},
	}
	over := &service.Params{Token: strPtr("item"), Filename: strPtr("f")}

	got := base.Merge(over)

	assert.Equal(t, "europe", *got.PredefinedURL)
	assert.Equal(t, "item", *got.Token)
	assert.Equal(t, "f", *got.Filename)
	assert.Equal(t, []string{"https://a"}, got.URLList)
	assert.Equal(t, "batch", *base.Token)

	assert.Equal(t, base, base.Merge(nil))
}

func TestParams_ResolveDefaults(t *testing.T) {
	got := service.Params{}.Resolve(domain.VariantDocument, testConfig())

	assert.False(t, got.UseCustomURL)
	assert.Equal(t, domain.RegionEurope, got.PredefinedURL)
	assert.Equal(t, domain.DefaultBinaryProperty, got.BinaryPropertyName)
	assert.Equal(t, "url", got.InputFieldName)
	assert.Equal(t, "stored-token", got.Token)
}

func TestParams_ResolveOverrides(t *testing.T) {
	yes := true
	p := service.Params{
		UseCustomURL:       &yes,
		CustomURL:          strPtr("https://self-hosted"),
		PredefinedURL:      strPtr("https://literal"),
		BinaryPropertyName: strPtr("attachment"),
		InputFieldName:     strPtr("link"),
		TextContent:        strPtr("hi"),
	}

	got := p.Resolve(domain.VariantText, testConfig())

	assert.True(t, got.UseCustomURL)
	assert.Equal(t, "https://self-hosted", got.CustomURL)
	assert.Equal(t, "https://literal", got.PredefinedURL)
	assert.Equal(t, "attachment", got.BinaryPropertyName)
	assert.Equal(t, "link", got.InputFieldName)
	assert.Equal(t, "hi", got.TextContent)
}

func TestTokenFor(t *testing.T) {
	tests := []struct {
		variant domain.Variant
		param   string
		stored  string
		want    string
	}{
		{domain.VariantDocument, "p", "s", "p"},
		{domain.VariantDocument, "", "s", "s"},
		{domain.VariantText, "p", "s", "p"},
		{domain.VariantURLs, "p", "", "p"},
		{domain.VariantFile, "p", "s", "s"},
		{domain.VariantFile, "p", "", "p"},
		{domain.VariantURLBatch, "p", "s", "s"},
		{domain.VariantURLBatch, "", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, service.TokenFor(tt.variant, tt.param, tt.stored), "%s param=%q stored=%q", tt.variant, tt.param, tt.stored)
	}
}
