// internal/models/plan.go
package models

import (
	"fmt"
	"strings"
	"time"
)

// Supported input vocabularies. Validation rejects anything outside these.
var (
	SupportedGradeLevels = []string{"elementary", "middle", "high"}
	SupportedLocales     = []string{"en", "es", "fr"}
)

// DefaultLocale is assumed when a request carries no locale tag.
const DefaultLocale = "en"

// DistrictProfile describes one school district asking for a plan.
// Immutable for the duration of a generation request.
type DistrictProfile struct {
	SchoolName       string   `json:"school_name" binding:"required"`
	State            string   `json:"state" binding:"required"`
	GradeLevels      []string `json:"grade_levels" binding:"required"`
	CurrentOfferings string   `json:"current_offerings"`
	PathwayInterests []string `json:"pathway_interests"`
	ResourceLevel    string   `json:"resource_level"`
}

// GenerationRequest wraps a profile with a locale and an optional
// conversation id used only for correlation downstream.
type GenerationRequest struct {
	Profile        DistrictProfile `json:"profile" binding:"required"`
	Locale         string          `json:"locale"`
	ConversationID string          `json:"conversation_id,omitempty"`
}

// Validate checks structure only; it never touches external state.
func (r *GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Profile.SchoolName) == "" {
		return fmt.Errorf("profile.school_name is required")
	}
	if strings.TrimSpace(r.Profile.State) == "" {
		return fmt.Errorf("profile.state is required")
	}
	if len(r.Profile.GradeLevels) == 0 {
		return fmt.Errorf("profile.grade_levels must contain at least one grade level")
	}
	for _, g := range r.Profile.GradeLevels {
		if !contains(SupportedGradeLevels, strings.ToLower(g)) {
			return fmt.Errorf("unknown grade level %q (supported: %s)", g, strings.Join(SupportedGradeLevels, ", "))
		}
	}
	if r.Locale != "" && !contains(SupportedLocales, r.Locale) {
		return fmt.Errorf("unsupported locale %q (supported: %s)", r.Locale, strings.Join(SupportedLocales, ", "))
	}
	return nil
}

// EffectiveLocale resolves an empty locale tag to the default.
func (r *GenerationRequest) EffectiveLocale() string {
	if r.Locale == "" {
		return DefaultLocale
	}
	return r.Locale
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// ScopeSequenceEntry holds the extracted plan content for one grade band.
type ScopeSequenceEntry struct {
	GradeBand       string   `json:"grade_band"`
	Competencies    []string `json:"competencies"`
	InstructionTime string   `json:"instruction_time"`
	Curriculum      []string `json:"curriculum"`
	Standards       []string `json:"standards"`
}

// RoadmapPhase is one phase of the implementation roadmap.
type RoadmapPhase struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// ExtractedPlan is the structured projection of the raw model output.
// Every field is best-effort: a section the extractor cannot find stays
// at its zero value.
type ExtractedPlan struct {
	ExecutiveSummary          string               `json:"executive_summary"`
	ScopeSequence             []ScopeSequenceEntry `json:"scope_sequence"`
	CurriculumRecommendations []string             `json:"curriculum_recommendations"`
	RoadmapPhases             []RoadmapPhase       `json:"roadmap_phases"`
	ProfessionalDevelopment   []string             `json:"professional_development"`
	SuccessMetrics            []string             `json:"success_metrics"`
}

// GeneratedPlan is the persisted entity. RawContent is the durable source
// of truth; the structured fields are a lossy projection of it.
type GeneratedPlan struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Version        int    `json:"version"`
	Locale         string `json:"locale"`
	ConversationID string `json:"conversation_id,omitempty"`
	RawContent     string `json:"raw_content"`

	ExtractedPlan

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlanSummary is the compact shape sent with the terminal complete event
// and by the list endpoint.
type PlanSummary struct {
	ID         string    `json:"id,omitempty"`
	Title      string    `json:"title"`
	Version    int       `json:"version"`
	Locale     string    `json:"locale"`
	GradeBands []string  `json:"grade_bands,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// Summary builds the summary view of a plan.
func (p *GeneratedPlan) Summary() PlanSummary {
	bands := make([]string, 0, len(p.ScopeSequence))
	for _, e := range p.ScopeSequence {
		bands = append(bands, e.GradeBand)
	}
	return PlanSummary{
		ID:         p.ID,
		Title:      p.Title,
		Version:    p.Version,
		Locale:     p.Locale,
		GradeBands: bands,
		CreatedAt:  p.CreatedAt,
	}
}
