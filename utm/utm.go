// Package utm composes campaign-tagged URLs.
package utm

import (
	"net/url"
	"regexp"
	"strings"

	"utmkit/apperrors"
	"utmkit/validator"
)

// OtherSource is the source value that defers to the custom source field.
const OtherSource = "other"

var whitespace = regexp.MustCompile(`\s+`)

// Params are the raw fields of one build request.
type Params struct {
	BaseURL      string `form:"base_url" json:"base_url" validate:"required,weburl"`
	CampaignName string `form:"campaign_name" json:"campaign_name" validate:"required"`
	Medium       string `form:"medium" json:"medium" validate:"required"`
	Source       string `form:"source" json:"source" validate:"required"`
	CustomSource string `form:"custom_source" json:"custom_source"`
	Content      string `form:"content" json:"content"`
}

type Options struct {
	RequireContent bool
}

type Result struct {
	// BaseURL is the input URL without query, fragment or trailing slashes.
	BaseURL  string
	FinalURL string
	// Params holds the values that went into the query, after trimming,
	// custom source substitution and campaign normalization.
	Params Params
}

// Build validates p and returns the tagged URL.
func Build(p Params, opts Options) (*Result, error) {
	p.BaseURL = strings.TrimSpace(p.BaseURL)
	p.CampaignName = strings.TrimSpace(p.CampaignName)
	p.Medium = strings.TrimSpace(p.Medium)
	p.Source = strings.TrimSpace(p.Source)
	p.CustomSource = strings.TrimSpace(p.CustomSource)
	p.Content = strings.TrimSpace(p.Content)

	if p.Source == OtherSource {
		if p.CustomSource == "" {
			return nil, apperrors.MissingField("custom_source")
		}
		p.Source = p.CustomSource
	}
	if err := validator.Struct(p); err != nil {
		return nil, err
	}
	if opts.RequireContent && p.Content == "" {
		return nil, apperrors.MissingField("content")
	}

	base := StripQuery(p.BaseURL)
	p.CampaignName = NormalizeCampaign(p.CampaignName)

	var query strings.Builder
	add := func(key, value string) {
		if query.Len() > 0 {
			query.WriteByte('&')
		}
		query.WriteString(key)
		query.WriteByte('=')
		query.WriteString(url.QueryEscape(value))
	}
	add("utm_campaign", p.CampaignName)
	add("utm_medium", p.Medium)
	add("utm_source", p.Source)
	if p.Content != "" {
		add("utm_content", p.Content)
	}

	return &Result{
		BaseURL:  base,
		FinalURL: base + "?" + query.String(),
		Params:   p,
	}, nil
}

// StripQuery drops the query string, the fragment and any trailing slashes.
func StripQuery(raw string) string {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimRight(raw, "/")
}

// NormalizeCampaign lower-cases name and turns whitespace runs into hyphens.
func NormalizeCampaign(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
