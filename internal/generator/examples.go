package generator

import (
	"strings"
	"time"

	"bulkgen/internal/models"
)

// ExampleRequest returns the demo inputs the form is pre-filled with.
func ExampleRequest() models.GenerateRequest {
	return models.GenerateRequest{
		Keywords:             []string{"gaming keyboard", "wireless mouse", "laptop stand"},
		SKUs:                 []string{"SKU001", "SKU002"},
		MatchTypes:           []string{"exact"},
		DailyBudget:          "10.00",
		Bids:                 map[string]string{"exact": "0.75"},
		CampaignNameTemplate: models.DefaultCampaignNameTemplate,
		AdGroupNameTemplate:  models.DefaultAdGroupNameTemplate,
		StartDate:            time.Now().Format(RequestDateLayout),
	}
}

// TemplatePart couples a builder display label with the token it expands to.
type TemplatePart struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// TemplateCatalog lists the parts the name-template builder offers for one
// template kind, in display order, plus the default arrangement.
type TemplateCatalog struct {
	Kind      string         `json:"kind"`
	Available []TemplatePart `json:"available"`
	Default   []string       `json:"default"`
}

var partTokens = map[string]string{
	"SKU":        "[SKU]",
	"AD TYPE":    "SP",
	"MATCH TYPE": "match_type",
	"START DATE": "250423",
	"ROOT GROUP": "[Root]",
	"KEYWORD":    "[KW]",
	"AG":         "AG",
}

func catalog(kind string, labels, defaults []string) TemplateCatalog {
	parts := make([]TemplatePart, len(labels))
	for i, label := range labels {
		parts[i] = TemplatePart{Label: label, Token: partTokens[label]}
	}
	return TemplateCatalog{Kind: kind, Available: parts, Default: defaults}
}

// TemplateCatalogs returns the builder catalogs for campaign and ad-group
// name templates.
func TemplateCatalogs() []TemplateCatalog {
	return []TemplateCatalog{
		catalog(TemplateCampaign,
			[]string{"SKU", "AD TYPE", "MATCH TYPE", "START DATE", "ROOT GROUP", "KEYWORD"},
			[]string{"SKU", "AD TYPE", "MATCH TYPE"}),
		catalog(TemplateAdGroup,
			[]string{"AG", "SKU", "MATCH TYPE", "START DATE", "ROOT GROUP", "KEYWORD"},
			[]string{"AG", "MATCH TYPE", "SKU"}),
	}
}

// BuildTemplate joins builder part labels into a template string, passing
// unknown labels through as custom text.
func BuildTemplate(labels []string) string {
	tokens := make([]string, len(labels))
	for i, label := range labels {
		if tok, ok := partTokens[label]; ok {
			tokens[i] = tok
		} else {
			tokens[i] = label
		}
	}
	return strings.Join(tokens, "_")
}

// PreviewName renders a template against fixed example values so the builder
// can echo a live preview.
func PreviewName(template string) string {
	name := RenderName(template, "ABC123", "exact", time.Now())
	return strings.ReplaceAll(name, "[KW]", "keyword")
}
