package dispatch

// ResolveBaseURL picks the document service base URL. A custom URL is
// returned verbatim, even when empty; the resulting request then fails in
// transport rather than silently falling back to a region.
func ResolveBaseURL(useCustom bool, customURL, predefinedURL string) string {
	if useCustom {
		return customURL
	}
	return predefinedURL
}

