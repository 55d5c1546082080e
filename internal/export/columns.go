// Package export writes dispatch results as CSV or XLSX and reads work items
// from spreadsheets.
package export

import (
	"strconv"
	"strings"

	"narrabridge/internal/domain"
)

// columns defines the header row shared by the CSV and XLSX writers.
var columns = []string{
	"Index",
	"Status",
	"Filename",
	"Sent URLs",
	"Response",
}

func resultToRow(r *domain.UploadResult) []string {
	index := strconv.Itoa(r.Index)
	if r.Index == domain.BatchIndex {
		index = "batch"
	}
	return []string{
		index,
		string(r.Status),
		r.FileName,
		strings.Join(r.SentURLs, " "),
		string(r.Response),
	}
}
