// parser.go assembles the full extraction pipeline and its entry points.
package strengths

import (
	"fmt"

	pdfservice "github.com/TeamPulse-Labs/teampulse-api/internal/services/pdf"
)

// ParsedTheme is one theme as found in a specific document. All four
// personalized fields are optional — their absence reflects the report
// tier or a layout the extractors didn't recognize, never an error.
type ParsedTheme struct {
	Name                    string          `json:"name"`
	Slug                    string          `json:"slug"`
	Domain                  Domain          `json:"domain"`
	Rank                    int             `json:"rank"`
	PersonalizedDescription string          `json:"personalized_description,omitempty"`
	PersonalizedInsights    []string        `json:"personalized_insights,omitempty"`
	StrengthBlends          []StrengthBlend `json:"strength_blends,omitempty"`
	ApplySection            *ApplySection   `json:"apply_section,omitempty"`
}

// Report is the extraction output. Themes are in rank order (insertion
// order equals rank order). RawText is populated only when the caller
// asked for diagnostics. Immutable once returned.
type Report struct {
	ParticipantName string       `json:"participant_name,omitempty"`
	Themes          []ParsedTheme `json:"themes"`
	ReportType      ReportType   `json:"report_type"`
	Confidence      float64      `json:"confidence"`
	RawText         string       `json:"raw_text,omitempty"`
}

// Options tunes a single extraction run.
type Options struct {
	// IncludeRawText attaches the full extracted text to the report for
	// debugging. Explicit and caller-supplied rather than environment-
	// gated, so behavior is deterministic and testable.
	IncludeRawText bool
}

// Parser runs the extraction pipeline against an injected catalog.
// It holds no per-run state; one Parser serves concurrent requests.
type Parser struct {
	catalog *Catalog
}

// NewParser creates a parser over the given theme catalog.
func NewParser(cat *Catalog) *Parser {
	return &Parser{catalog: cat}
}

// Catalog exposes the parser's reference catalog.
func (p *Parser) Catalog() *Catalog {
	return p.catalog
}

// ParseReport extracts a structured strengths report from raw PDF bytes,
// returning the underlying extraction result so callers can record page
// and word counts. The only error path is the PDF decode itself failing
// to produce text; every heuristic miss downstream degrades to absent
// fields instead.
func (p *Parser) ParseReport(data []byte, opts Options) (*Report, *pdfservice.ExtractionResult, error) {
	extracted, err := pdfservice.Extract(data)
	if err != nil {
		return nil, nil, fmt.Errorf("pdf text extraction failed: %w", err)
	}
	if extracted.Text == "" {
		return nil, nil, fmt.Errorf("pdf contained no extractable text")
	}
	return p.ParseText(extracted.Text, "", opts), extracted, nil
}

// ParseText runs the pipeline on already-extracted text. An explicit
// participantName overrides header detection — used by the manual
// correction workflow and by tests. Deterministic: the same text always
// yields the same report.
func (p *Parser) ParseText(text, participantName string, opts Options) *Report {
	cat := p.catalog
	matches := locateThemes(text, cat)

	themes := make([]ParsedTheme, 0, len(matches))
	for i, m := range matches {
		pt := ParsedTheme{
			Name:   m.Theme.Name,
			Slug:   m.Theme.Slug,
			Domain: m.Theme.Domain,
			Rank:   i + 1,
		}

		pt.PersonalizedDescription = extractDescription(sectionWindow(text, m, cat, descriptionWindow), cat)
		pt.PersonalizedInsights = extractInsights(sectionWindow(text, m, cat, insightsWindow), m.Theme, cat)
		pt.StrengthBlends = extractBlends(sectionWindow(text, m, cat, blendsWindow), m.Theme, cat)
		pt.ApplySection = extractApply(sectionWindow(text, m, cat, applyWindow), m.Theme, cat)

		themes = append(themes, pt)
	}

	if participantName == "" {
		participantName = extractParticipantName(text, cat)
	}

	reportType, confidence := classifyReport(len(themes))

	r := &Report{
		ParticipantName: participantName,
		Themes:          themes,
		ReportType:      reportType,
		Confidence:      confidence,
	}
	if opts.IncludeRawText {
		r.RawText = text
	}
	return r
}
