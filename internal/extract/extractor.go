// internal/extract/extractor.go

// Package extract turns the raw model output of a plan generation into the
// structured fields of a GeneratedPlan. It is an explicitly heuristic,
// best-effort pass over free-form markdown: every matcher degrades to a
// zero value when its section cannot be found, and a missing section never
// suppresses extraction of the others.
package extract

import (
	"regexp"
	"strings"

	"github.com/jamelna-apps/plangen/internal/models"
)

// NotSpecified is the sentinel used when a grade band carries no
// recognizable instruction-time line.
const NotSpecified = "Not specified"

const maxBandBullets = 5

// headingRe matches markdown headings of any level. Standalone bold lines
// deliberately do not split sections: inside a grade-band span they act as
// the keyword context that scopes the bullets below them.
var headingRe = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+.+$`)

var bulletRe = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)

var instructionTimeRe = regexp.MustCompile(`(?i)\d+\s*(?:minutes?|mins?|hours?|hrs?)(?:\s*(?:per|/|a)\s*(?:week|day|month))?|(?:daily|weekly)\s+instruction`)

// gradeBand pairs a canonical band name with the heading spellings that
// identify it, including numeric grade ranges.
type gradeBand struct {
	name    string
	heading *regexp.Regexp
}

var gradeBands = []gradeBand{
	{"elementary", regexp.MustCompile(`(?i)elementary|\bK\s*[-–]\s*5\b|\bgrades?\s*K\b`)},
	{"middle", regexp.MustCompile(`(?i)middle|\b6\s*[-–]\s*8\b`)},
	{"high", regexp.MustCompile(`(?i)high(\s+school)?|\b9\s*[-–]\s*12\b`)},
}

// Keyword groups scoping band bullets to their field.
var (
	competencyKeywordRe = regexp.MustCompile(`(?i)competenc|skill|learning\s+objective|outcome`)
	curriculumKeywordRe = regexp.MustCompile(`(?i)curricul|course|unit|tool|resource`)
	standardsKeywordRe  = regexp.MustCompile(`(?i)standard|csta|iste`)
)

// Matchers for the document-level sections.
var (
	executiveSummaryHeadingRe = regexp.MustCompile(`(?i)executive\s+summary`)
	curriculumHeadingRe       = regexp.MustCompile(`(?i)curriculum\s+recommendations?`)
	roadmapHeadingRe          = regexp.MustCompile(`(?i)implementation\s+roadmap|roadmap|implementation\s+plan`)
	pdHeadingRe               = regexp.MustCompile(`(?i)professional\s+development`)
	metricsHeadingRe          = regexp.MustCompile(`(?i)success\s+metrics|metrics|assessment`)
	phaseRe                   = regexp.MustCompile(`(?i)phase\s*\d+`)
)

// Plan runs every section matcher over the accumulated raw text. It is a
// pure function: identical input yields identical output, and it never
// fails on malformed input.
func Plan(raw string) models.ExtractedPlan {
	doc := splitSections(raw)

	plan := models.ExtractedPlan{
		ExecutiveSummary:          doc.sectionBody(executiveSummaryHeadingRe),
		CurriculumRecommendations: bullets(doc.sectionBody(curriculumHeadingRe), 0),
		RoadmapPhases:             roadmapPhases(doc.sectionBody(roadmapHeadingRe)),
		ProfessionalDevelopment:   bullets(doc.sectionBody(pdHeadingRe), 0),
		SuccessMetrics:            bullets(doc.sectionBody(metricsHeadingRe), 0),
	}

	for _, band := range gradeBands {
		span := doc.sectionBody(band.heading)
		if span == "" {
			continue
		}
		plan.ScopeSequence = append(plan.ScopeSequence, bandEntry(band.name, span))
	}

	return plan
}

// section is one heading-delimited region of the document.
type section struct {
	heading string
	level   int
	body    string
}

type document struct {
	sections []section
}

// splitSections cuts the raw text at heading lines. Text before the first
// heading belongs to no section.
func splitSections(raw string) document {
	locs := headingRe.FindAllStringIndex(raw, -1)

	var doc document
	for i, loc := range locs {
		headingLine := strings.TrimSpace(raw[loc[0]:loc[1]])
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		doc.sections = append(doc.sections, section{
			heading: headingLine,
			level:   headingLevel(headingLine),
			body:    strings.TrimSpace(raw[loc[1]:end]),
		})
	}

	return doc
}

func headingLevel(heading string) int {
	level := 0
	for level < len(heading) && heading[level] == '#' {
		level++
	}
	return level
}

// sectionBody returns the span of the first section whose heading matches:
// its own body plus any deeper-nested subsections (with their heading
// lines, which serve as keyword context), up to the next heading at the
// same or a higher level. "" when no heading matches.
func (d document) sectionBody(headingPattern *regexp.Regexp) string {
	for i, s := range d.sections {
		if !headingPattern.MatchString(s.heading) {
			continue
		}

		var b strings.Builder
		b.WriteString(s.body)
		for j := i + 1; j < len(d.sections) && d.sections[j].level > s.level; j++ {
			b.WriteString("\n")
			b.WriteString(d.sections[j].heading)
			b.WriteString("\n")
			b.WriteString(d.sections[j].body)
		}
		return strings.TrimSpace(b.String())
	}
	return ""
}

// bullets collects bulleted lines from a span. max <= 0 means unbounded.
func bullets(span string, max int) []string {
	var out []string
	for _, line := range strings.Split(span, "\n") {
		m := bulletRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, cleanInline(m[1]))
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

// keywordScopedBullets collects bullets that appear under a non-bullet line
// matching the keyword group, stopping at the next non-bullet line. This is
// the "preceding context" heuristic: a label like "Key Competencies:" scopes
// the bullets that follow it.
func keywordScopedBullets(span string, keyword *regexp.Regexp, max int) []string {
	var out []string
	inScope := false

	for _, line := range strings.Split(span, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		m := bulletRe.FindStringSubmatch(line)
		if m == nil {
			inScope = keyword.MatchString(trimmed)
			continue
		}

		if inScope {
			out = append(out, cleanInline(m[1]))
			if len(out) >= max {
				break
			}
		}
	}

	return out
}

// bandEntry extracts one scope-sequence entry from a grade-band span.
// Keyword-scoped extraction runs first for each field; when no competency
// context exists in the span at all, the first bullets encountered are
// taken as competencies regardless of context. Model output structure is
// not guaranteed, so this fallback trades precision for coverage.
func bandEntry(name, span string) models.ScopeSequenceEntry {
	entry := models.ScopeSequenceEntry{
		GradeBand:       name,
		Competencies:    keywordScopedBullets(span, competencyKeywordRe, maxBandBullets),
		Curriculum:      keywordScopedBullets(span, curriculumKeywordRe, maxBandBullets),
		Standards:       keywordScopedBullets(span, standardsKeywordRe, maxBandBullets),
		InstructionTime: instructionTime(span),
	}

	if len(entry.Competencies) == 0 {
		entry.Competencies = bullets(span, maxBandBullets)
	}

	return entry
}

// instructionTime returns the first duration-looking phrase in the span,
// or the NotSpecified sentinel so downstream consumers always see a value.
func instructionTime(span string) string {
	for _, line := range strings.Split(span, "\n") {
		if m := instructionTimeRe.FindString(line); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return NotSpecified
}

// roadmapPhases splits a roadmap span at "Phase N" markers. A span with
// bullets but no phase markers becomes a single unnamed phase.
func roadmapPhases(span string) []models.RoadmapPhase {
	if span == "" {
		return nil
	}

	lines := strings.Split(span, "\n")

	var phases []models.RoadmapPhase
	var current *models.RoadmapPhase

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if phaseRe.MatchString(trimmed) && bulletRe.FindStringSubmatch(line) == nil {
			phases = append(phases, models.RoadmapPhase{Name: cleanInline(trimmed)})
			current = &phases[len(phases)-1]
			continue
		}

		if m := bulletRe.FindStringSubmatch(line); m != nil {
			if current == nil {
				phases = append(phases, models.RoadmapPhase{Name: "Implementation"})
				current = &phases[len(phases)-1]
			}
			current.Items = append(current.Items, cleanInline(m[1]))
		}
	}

	return phases
}

var inlineMarkupRe = regexp.MustCompile(`[*_` + "`" + `]+`)

// cleanInline strips heading markers and inline markdown emphasis.
func cleanInline(s string) string {
	s = strings.TrimLeft(s, "# ")
	s = inlineMarkupRe.ReplaceAllString(s, "")
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ":"))
}
