// internal/services/prompt.go
package services

import (
	"fmt"
	"strings"

	"github.com/jamelna-apps/plangen/internal/models"
)

const planSystemPrompt = `You are an experienced K-12 computer science education consultant who designs district-level CS implementation plans.
You ground every recommendation in the district's actual context: its size, state, current offerings, and resource level.
Structure your output in markdown with "##" section headings so it can be processed downstream, and keep recommendations concrete and actionable.`

// languageDirectives maps non-default locales to the directive appended to
// the system prompt. Keys mirror models.SupportedLocales.
var languageDirectives = map[string]string{
	"es": "Respond entirely in Spanish.",
	"fr": "Respond entirely in French.",
}

// ComposePrompts builds the system and user prompts for one generation
// request. It is a pure function: the same profile, locale, and reference
// text always produce the same prompts. Profile fields are embedded
// verbatim, never truncated.
func ComposePrompts(profile models.DistrictProfile, locale, referenceText string) (systemPrompt, userPrompt string) {
	systemPrompt = planSystemPrompt
	if directive, ok := languageDirectives[locale]; ok && locale != models.DefaultLocale {
		systemPrompt = systemPrompt + "\n" + directive
	}

	var b strings.Builder

	fmt.Fprintf(&b, `Create a comprehensive computer science education plan for the following district:

School/District: %s
State: %s
Grade levels served: %s
Current CS offerings: %s
Pathway interests: %s
Resource level: %s

The plan must contain these "##" sections:
1. Executive Summary
2. One section per grade band served (Elementary, Middle, High School), each listing, under bold labels, up to five Competencies, Curriculum resources, and Standards alignments (CSTA/ISTE), plus weekly instruction time
3. Curriculum Recommendations
4. Implementation Roadmap with numbered phases (Phase 1, Phase 2, ...)
5. Professional Development
6. Success Metrics

Use bulleted lists inside each section.`,
		profile.SchoolName,
		profile.State,
		joinOr(profile.GradeLevels, "not specified"),
		valueOr(profile.CurrentOfferings, "none"),
		joinOr(profile.PathwayInterests, "not specified"),
		valueOr(profile.ResourceLevel, "not specified"),
	)

	if referenceText != "" {
		fmt.Fprintf(&b, "\n\nReference material on state standards and model programs:\n%s", referenceText)
	}

	return systemPrompt, b.String()
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
