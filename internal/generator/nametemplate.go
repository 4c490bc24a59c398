package generator

import (
	"fmt"
	"strings"
	"time"
)

// Literal date examples recognized in name templates. Each example doubles
// as a format picker: its occurrence is replaced with the campaign start
// date rendered in the matching layout.
var dateExamples = []struct {
	example string
	layout  string
}{
	{"250423", "020106"},
	{"04/23/2025", "01/02/2006"},
	{"23-04-2025", "02-01-2006"},
	{"Apr 23, 2025", "Jan 02, 2006"},
}

// RenderName expands a campaign or ad-group name template. The identifier
// may be a combined group identifier (SKUs joined by underscores); grouped
// identifiers are shortened to "<first>+<count-1>" to keep names within
// Amazon's length limits. Replacements are applied sequentially: date
// examples first, then placeholder tokens. Free text passes through.
func RenderName(template, identifier string, matchType string, startDate time.Time) string {
	display := identifier
	if parts := strings.Split(identifier, "_"); len(parts) > 1 {
		display = fmt.Sprintf("%s+%d", parts[0], len(parts)-1)
	}

	for _, d := range dateExamples {
		if strings.Contains(template, d.example) {
			template = strings.ReplaceAll(template, d.example, startDate.Format(d.layout))
		}
	}

	replacements := [][2]string{
		{"[SKU]", display},
		{"SP", "SP"},
		{"match_type", strings.ToLower(matchType)},
		{"[Root]", "[Root]"},
		{"[KW]", "[KW]"},
	}
	for _, r := range replacements {
		template = strings.ReplaceAll(template, r[0], r[1])
	}
	return template
}
