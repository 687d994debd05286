// internal/models/plan_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() GenerationRequest {
	return GenerationRequest{
		Profile: DistrictProfile{
			SchoolName:  "Lincoln Unified",
			State:       "CA",
			GradeLevels: []string{"elementary", "middle"},
		},
	}
}

func TestValidate(t *testing.T) {
	req := validRequest()
	require.NoError(t, req.Validate())
}

func TestValidateGradeLevelsAreCaseInsensitive(t *testing.T) {
	req := validRequest()
	req.Profile.GradeLevels = []string{"Elementary", "HIGH"}
	assert.NoError(t, req.Validate())
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*GenerationRequest)
	}{
		{"missing school name", func(r *GenerationRequest) { r.Profile.SchoolName = "  " }},
		{"missing state", func(r *GenerationRequest) { r.Profile.State = "" }},
		{"no grade levels", func(r *GenerationRequest) { r.Profile.GradeLevels = nil }},
		{"unknown grade level", func(r *GenerationRequest) { r.Profile.GradeLevels = []string{"kindergarten"} }},
		{"unsupported locale", func(r *GenerationRequest) { r.Locale = "de" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestEffectiveLocale(t *testing.T) {
	req := validRequest()
	assert.Equal(t, DefaultLocale, req.EffectiveLocale())

	req.Locale = "fr"
	assert.Equal(t, "fr", req.EffectiveLocale())
}

func TestSummary(t *testing.T) {
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	plan := GeneratedPlan{
		ID:        "p1",
		Title:     "Lincoln Unified Computer Science Education Plan",
		Version:   1,
		Locale:    "en",
		CreatedAt: created,
		ExtractedPlan: ExtractedPlan{
			ScopeSequence: []ScopeSequenceEntry{
				{GradeBand: "elementary"},
				{GradeBand: "middle"},
			},
		},
	}

	summary := plan.Summary()
	assert.Equal(t, "p1", summary.ID)
	assert.Equal(t, 1, summary.Version)
	assert.Equal(t, []string{"elementary", "middle"}, summary.GradeBands)
	assert.Equal(t, created, summary.CreatedAt)
}
