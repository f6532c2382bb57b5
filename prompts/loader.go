package prompts

import (
	_ "embed"
	"strconv"
	"strings"
)

//go:embed business_search.txt
var BusinessSearch string

// RenderBusinessSearch fills the business search prompt for one query
func RenderBusinessSearch(query string, minResults, maxResults int) string {
	r := strings.NewReplacer(
		"{{QUERY}}", strconv.Quote(query),
		"{{MIN_RESULTS}}", strconv.Itoa(minResults),
		"{{MAX_RESULTS}}", strconv.Itoa(maxResults),
	)
	return r.Replace(BusinessSearch)
}
