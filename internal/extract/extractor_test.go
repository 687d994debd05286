// internal/extract/extractor_test.go
package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullPlanDoc = `# Lincoln MS Computer Science Education Plan

## Executive Summary
The district should expand CS access across all grades.

## Elementary (K-5)
**Competencies:**
- Sequencing and loops
- Decomposition
**Curriculum:**
- Code.org CS Fundamentals
**Standards:**
- CSTA 1A-AP-10
Instruction time: 45 minutes per week

## Middle School (6-8)
**Competencies:**
- Variables and control flow
- Data representation
**Curriculum:**
- CS Discoveries
**Standards:**
- CSTA 2-AP-11

## Curriculum Recommendations
- Adopt Code.org districtwide
- Pilot PLTW Gateway

## Implementation Roadmap
### Phase 1: Foundation
- Hire a CS coordinator
### Phase 2: Expansion
- Launch middle school electives

## Professional Development
- Summer institute for K-5 teachers

## Success Metrics
- 80% of students enrolled in CS by year 3
`

func TestPlanMinimalDocument(t *testing.T) {
	raw := "## Executive Summary\nGreat plan.\n## Middle\n- teach loops\n"

	plan := Plan(raw)

	assert.Equal(t, "Great plan.", plan.ExecutiveSummary)

	require.Len(t, plan.ScopeSequence, 1)
	entry := plan.ScopeSequence[0]
	assert.Equal(t, "middle", entry.GradeBand)
	assert.Equal(t, []string{"teach loops"}, entry.Competencies)
	assert.Equal(t, NotSpecified, entry.InstructionTime)
	assert.Empty(t, entry.Curriculum)
	assert.Empty(t, entry.Standards)

	assert.Empty(t, plan.CurriculumRecommendations)
	assert.Empty(t, plan.RoadmapPhases)
	assert.Empty(t, plan.ProfessionalDevelopment)
	assert.Empty(t, plan.SuccessMetrics)
}

func TestPlanFullDocument(t *testing.T) {
	plan := Plan(fullPlanDoc)

	assert.Equal(t, "The district should expand CS access across all grades.", plan.ExecutiveSummary)

	require.Len(t, plan.ScopeSequence, 2)

	elem := plan.ScopeSequence[0]
	assert.Equal(t, "elementary", elem.GradeBand)
	assert.Equal(t, []string{"Sequencing and loops", "Decomposition"}, elem.Competencies)
	assert.Equal(t, []string{"Code.org CS Fundamentals"}, elem.Curriculum)
	assert.Equal(t, []string{"CSTA 1A-AP-10"}, elem.Standards)
	assert.Equal(t, "45 minutes per week", elem.InstructionTime)

	middle := plan.ScopeSequence[1]
	assert.Equal(t, "middle", middle.GradeBand)
	assert.Equal(t, []string{"Variables and control flow", "Data representation"}, middle.Competencies)
	assert.Equal(t, []string{"CS Discoveries"}, middle.Curriculum)
	assert.Equal(t, []string{"CSTA 2-AP-11"}, middle.Standards)
	assert.Equal(t, NotSpecified, middle.InstructionTime)

	assert.Equal(t, []string{"Adopt Code.org districtwide", "Pilot PLTW Gateway"}, plan.CurriculumRecommendations)

	require.Len(t, plan.RoadmapPhases, 2)
	assert.Equal(t, "Phase 1: Foundation", plan.RoadmapPhases[0].Name)
	assert.Equal(t, []string{"Hire a CS coordinator"}, plan.RoadmapPhases[0].Items)
	assert.Equal(t, "Phase 2: Expansion", plan.RoadmapPhases[1].Name)
	assert.Equal(t, []string{"Launch middle school electives"}, plan.RoadmapPhases[1].Items)

	assert.Equal(t, []string{"Summer institute for K-5 teachers"}, plan.ProfessionalDevelopment)
	assert.Equal(t, []string{"80% of students enrolled in CS by year 3"}, plan.SuccessMetrics)
}

func TestPlanIsIdempotent(t *testing.T) {
	first := Plan(fullPlanDoc)
	second := Plan(fullPlanDoc)
	assert.Equal(t, first, second)
}

func TestPlanWithoutHeadingsDegradesToZeroValue(t *testing.T) {
	plan := Plan("The model ignored the formatting instructions entirely.\n- a stray bullet\n")

	assert.Empty(t, plan.ExecutiveSummary)
	assert.Empty(t, plan.ScopeSequence)
	assert.Empty(t, plan.CurriculumRecommendations)
	assert.Empty(t, plan.RoadmapPhases)
	assert.Empty(t, plan.ProfessionalDevelopment)
	assert.Empty(t, plan.SuccessMetrics)
}

func TestPlanEmptyInput(t *testing.T) {
	assert.Empty(t, Plan("").ScopeSequence)
}

func TestBandBulletsCappedAtFive(t *testing.T) {
	var b strings.Builder
	b.WriteString("## High School (9-12)\n**Competencies:**\n")
	for _, item := range []string{"one", "two", "three", "four", "five", "six", "seven"} {
		b.WriteString("- " + item + "\n")
	}

	plan := Plan(b.String())

	require.Len(t, plan.ScopeSequence, 1)
	assert.Equal(t, []string{"one", "two", "three", "four", "five"}, plan.ScopeSequence[0].Competencies)
}

func TestBandFallbackUsesFirstBullets(t *testing.T) {
	raw := "## Elementary\n- unlabeled item one\n- unlabeled item two\n"

	plan := Plan(raw)

	require.Len(t, plan.ScopeSequence, 1)
	entry := plan.ScopeSequence[0]
	assert.Equal(t, []string{"unlabeled item one", "unlabeled item two"}, entry.Competencies)
	assert.Empty(t, entry.Curriculum)
	assert.Empty(t, entry.Standards)
}

func TestRoadmapWithoutPhaseMarkers(t *testing.T) {
	raw := "## Implementation Roadmap\n- do the first thing\n- do the second thing\n"

	plan := Plan(raw)

	require.Len(t, plan.RoadmapPhases, 1)
	assert.Equal(t, "Implementation", plan.RoadmapPhases[0].Name)
	assert.Equal(t, []string{"do the first thing", "do the second thing"}, plan.RoadmapPhases[0].Items)
}

func TestInstructionTimeVariants(t *testing.T) {
	cases := []struct {
		span string
		want string
	}{
		{"Students receive 60 minutes per week of instruction.", "60 minutes per week"},
		{"Plan for 3 hours/week in labs.", "3 hours/week"},
		{"About 30 mins a day works well.", "30 mins a day"},
		{"No duration is mentioned anywhere.", NotSpecified},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, instructionTime(tc.span), "span: %s", tc.span)
	}
}

func TestCleanInline(t *testing.T) {
	assert.Equal(t, "Bold item", cleanInline("**Bold item**"))
	assert.Equal(t, "Phase 1: Foundation", cleanInline("### Phase 1: Foundation"))
	assert.Equal(t, "Competencies", cleanInline("Competencies:"))
	assert.Equal(t, "plain", cleanInline("plain"))
}
