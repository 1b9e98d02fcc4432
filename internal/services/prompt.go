package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct {
	skillHints map[string][]string
}

func NewPromptBuilder(skillHints map[string][]string) *PromptBuilder {
	return &PromptBuilder{skillHints: skillHints}
}

// BuildEvaluationPrompt creates the evaluation prompt for one candidate.
// The numbered items mirror the labels of DefaultReportTemplate, so the
// field extractor can recover them from the reply.
func (pb *PromptBuilder) BuildEvaluationPrompt(candidateText, jobTitle, jobDescription string) string {
	return fmt.Sprintf(`You are an expert AI HR evaluator.

We are hiring for: %s
Job Description: %s
Expected Skills: %s

Candidate CV:
%s

Give me:
1. Score out of 100
2. Skill Match %%
3. Years of Experience
4. Top Strengths
5. Red Flags
6. Final Verdict: Strong Fit / Moderate Fit / Not Recommended
7. One-line hire recommendation
8. Summary of education, certifications, tools, etc.`,
		jobTitle, jobDescription, pb.skillHintsFor(jobTitle), candidateText)
}

// skillHintsFor renders the configured skills for the role, or asks the
// model to infer them from the job description when the role is unknown.
func (pb *PromptBuilder) skillHintsFor(jobTitle string) string {
	if skills, ok := pb.skillHints[jobTitle]; ok && len(skills) > 0 {
		return strings.Join(skills, ", ")
	}
	return "Infer from JD"
}
