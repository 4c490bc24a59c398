package generator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bulkgen/internal/models"
)

// Validation limits from Amazon's bulk-upload format contract.
const (
	MaxKeywordLength  = 80
	MaxSKULength      = 40
	MaxTemplateLength = 128
	MinDailyBudget    = 1.0
	MinBidAmount      = 0.02
	MinBidAdjustment  = 0
	MaxBidAdjustment  = 900
)

// Code classifies a validation failure.
type Code string

const (
	CodeEmptyInput                 Code = "empty_input"
	CodeEmptyItem                  Code = "empty_item"
	CodeLengthExceeded             Code = "length_exceeded"
	CodeInvalidCharacters          Code = "invalid_characters"
	CodeInvalidNumber              Code = "invalid_number"
	CodeBelowMinimum               Code = "below_minimum"
	CodePastDate                   Code = "past_date"
	CodeInvalidPlacement           Code = "invalid_placement"
	CodeInvalidPercentageFormat    Code = "invalid_percentage_format"
	CodePercentageOutOfRange       Code = "percentage_out_of_range"
	CodeMissingTemplatePlaceholder Code = "missing_template_placeholder"
	CodeInvalidTemplateCharacters  Code = "invalid_template_characters"
)

// Check is a recoverable validation failure. A nil *Check means the input
// passed. Failures are values, not errors: the caller is expected to surface
// the message and re-prompt.
type Check struct {
	Code    Code   `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func fail(code Code, field, message string) *Check {
	return &Check{Code: code, Field: field, Message: message}
}

var (
	keywordPattern = regexp.MustCompile(`^[\w\s\-']+$`)
	skuPattern     = regexp.MustCompile(`^[a-zA-Z0-9_\-.,></":;+=]+$`)
	// Literal date examples are recognized by prefix, mirroring the
	// template builder's live format pickers.
	datePartPattern   = regexp.MustCompile(`^(\d{6}|\d{2}-\d{2}-\d{4}|\d{2}/\d{2}/\d{4}|[A-Za-z]{3}\s\d{2},\s\d{4})`)
	customTextPattern = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)
)

// Template kinds accepted by CheckNameTemplate.
const (
	TemplateCampaign = "campaign"
	TemplateAdGroup  = "ad group"
)

// Synonyms accepted as standalone template segments.
var templateSynonyms = map[string]bool{
	"type": true, "kw": true, "[kw]": true, "match": true, "keyword": true,
	"sp": true, "sponsored": true, "products": true,
	"root": true, "group": true, "category": true,
	"ag": true,
}

// Canonical placeholder tokens a template segment may carry.
var templateTokens = []string{"[SKU]", "match_type", "SP", "[Root]", "[KW]", "AG"}

// CheckKeywords validates a keyword list, failing on the first offending
// item.
func CheckKeywords(keywords []string) *Check {
	if len(keywords) == 0 {
		return fail(CodeEmptyInput, "keywords", "No keyword provided")
	}
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			return fail(CodeEmptyItem, "keywords", "Empty value found in keywords")
		}
		if len(kw) > MaxKeywordLength {
			return fail(CodeLengthExceeded, "keywords",
				fmt.Sprintf("Invalid length for Keyword: '%s' exceeds maximum length of %d", kw, MaxKeywordLength))
		}
		if !keywordPattern.MatchString(kw) {
			return fail(CodeInvalidCharacters, "keywords",
				fmt.Sprintf("Invalid characters in Keyword: %s", kw))
		}
	}
	return nil
}

// CheckSKUs validates a SKU list, failing on the first offending item.
func CheckSKUs(skus []string) *Check {
	if len(skus) == 0 {
		return fail(CodeEmptyInput, "skus", "No SKU provided")
	}
	for _, sku := range skus {
		if strings.TrimSpace(sku) == "" {
			return fail(CodeEmptyItem, "skus", "Empty value found in SKUs")
		}
		if len(sku) > MaxSKULength {
			return fail(CodeLengthExceeded, "skus",
				fmt.Sprintf("Invalid length for SKU: '%s' exceeds maximum length of %d", sku, MaxSKULength))
		}
		if !skuPattern.MatchString(sku) {
			return fail(CodeInvalidCharacters, "skus",
				fmt.Sprintf("Invalid characters in SKU: %s", sku))
		}
	}
	return nil
}

// CheckMatchTypes validates that every entry is one of exact, phrase or
// broad, case-insensitively.
func CheckMatchTypes(matchTypes []string) *Check {
	if len(matchTypes) == 0 {
		return fail(CodeEmptyInput, "match_types", "No Match type provided")
	}
	var invalid []string
	seen := map[string]bool{}
	for _, mt := range matchTypes {
		lower := strings.ToLower(mt)
		if models.MatchType(lower).Valid() || seen[lower] {
			continue
		}
		seen[lower] = true
		invalid = append(invalid, lower)
	}
	if len(invalid) > 0 {
		return fail(CodeInvalidCharacters, "match_types",
			fmt.Sprintf("Invalid characters in Match type: %s", strings.Join(invalid, ", ")))
	}
	return nil
}

// CheckNumericInput validates a raw text field that should hold a decimal
// strictly greater than min.
func CheckNumericInput(value, field string, min float64) *Check {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fail(CodeInvalidNumber, field, fmt.Sprintf("Invalid numeric value for %s", field))
	}
	return CheckAmount(v, field, min)
}

// CheckAmount validates an already-parsed amount against a strict minimum.
func CheckAmount(value float64, field string, min float64) *Check {
	if value <= min {
		return fail(CodeBelowMinimum, field,
			fmt.Sprintf("Invalid value for %s: must be greater than %v", field, min))
	}
	return nil
}

// CheckDate rejects start dates before today. Comparison ignores the time of
// day.
func CheckDate(d time.Time) *Check {
	if d.Format(models.StartDateLayout) < time.Now().Format(models.StartDateLayout) {
		return fail(CodePastDate, "start_date", "Start date cannot be in the past")
	}
	return nil
}

// CheckBidAdjustment validates a placement/percentage pair. The percentage
// must be an integer 0..900 carrying a "%" suffix; the only supported
// placement is top-of-search.
func CheckBidAdjustment(value, placement string) *Check {
	if placement != models.PlacementTopOfSearch {
		return fail(CodeInvalidPlacement, "placement",
			fmt.Sprintf(`Invalid value: "%s" for column: "Placement"`, placement))
	}
	if !strings.HasSuffix(value, "%") {
		return fail(CodeInvalidPercentageFormat, "bid_adjustment",
			fmt.Sprintf(`Invalid value: "%s" for column: "Percentage"`, value))
	}
	pct, err := strconv.Atoi(strings.TrimSpace(strings.TrimRight(value, "%")))
	if err != nil {
		return fail(CodeInvalidNumber, "bid_adjustment",
			fmt.Sprintf(`Invalid value: "%s" for column: "Percentage"`, value))
	}
	if pct < MinBidAdjustment || pct > MaxBidAdjustment {
		return fail(CodePercentageOutOfRange, "bid_adjustment",
			fmt.Sprintf("Bid adjustment must be between %d%% and %d%%", MinBidAdjustment, MaxBidAdjustment))
	}
	return nil
}

// CheckNameTemplate validates a campaign or ad-group name template. The
// template is split on underscores; every segment must be a placeholder
// token, a literal date-format example, a known synonym, or plain custom
// text. The SKU and match-type placeholders are mandatory.
func CheckNameTemplate(template, kind string) *Check {
	label := kind + " name template"
	if template == "" {
		return fail(CodeEmptyItem, kind, fmt.Sprintf("Empty value found in %s", label))
	}
	if len(template) > MaxTemplateLength {
		return fail(CodeLengthExceeded, kind, fmt.Sprintf("%s exceeds maximum length", label))
	}

	hasSKU := false
	hasMatchType := false
	for _, part := range strings.Split(template, "_") {
		if part == "" {
			continue
		}
		lower := strings.ToLower(part)
		if strings.Contains(lower, "[sku]") {
			hasSKU = true
		}
		if strings.Contains(lower, "match_type") || strings.Contains(lower, "match") {
			hasMatchType = true
		}
		if isTemplateToken(part) {
			continue
		}
		if datePartPattern.MatchString(part) {
			continue
		}
		if templateSynonyms[lower] {
			continue
		}
		if !customTextPattern.MatchString(part) {
			return fail(CodeInvalidTemplateCharacters, kind,
				fmt.Sprintf("Invalid characters in custom text: %s. Only letters, numbers, hyphens, and underscores are allowed.", part))
		}
	}

	var missing []string
	if !hasSKU {
		missing = append(missing, "[SKU]")
	}
	if !hasMatchType {
		missing = append(missing, "match_type")
	}
	if len(missing) > 0 {
		return fail(CodeMissingTemplatePlaceholder, kind,
			fmt.Sprintf("Missing required parts in %s template: %s", kind, strings.Join(missing, ", ")))
	}
	return nil
}

func isTemplateToken(part string) bool {
	lower := strings.ToLower(part)
	for _, tok := range templateTokens {
		if part == tok || lower == strings.ToLower(tok) {
			return true
		}
	}
	return false
}

// CheckSettings runs the ordered settings gate: match types, daily budget,
// per-match-type bids, bid adjustment with placement when both are set,
// start date, then both name templates. The first failure wins.
func CheckSettings(s models.CampaignSettings) *Check {
	raw := make([]string, len(s.MatchTypes))
	for i, mt := range s.MatchTypes {
		raw[i] = string(mt)
	}
	if c := CheckMatchTypes(raw); c != nil {
		return c
	}
	if c := CheckAmount(s.DailyBudget, "Daily budget", MinDailyBudget); c != nil {
		return c
	}
	for _, mt := range s.MatchTypes {
		bid := s.Bids[models.MatchType(strings.ToLower(string(mt)))]
		if c := CheckAmount(bid, fmt.Sprintf("Bid for %s", strings.ToLower(string(mt))), MinBidAmount); c != nil {
			return c
		}
	}
	if s.BidAdjustment != "" && s.Placement != "" {
		if c := CheckBidAdjustment(s.BidAdjustment, s.Placement); c != nil {
			return c
		}
	}
	if c := CheckDate(s.StartDate); c != nil {
		return c
	}
	if c := CheckNameTemplate(s.CampaignNameTemplate, TemplateCampaign); c != nil {
		return c
	}
	if c := CheckNameTemplate(s.AdGroupNameTemplate, TemplateAdGroup); c != nil {
		return c
	}
	return nil
}
