package gemini

import (
	"fmt"
	"strings"
)

// Response schemas for structured calls.
const (
	codingProblemSchema = `{
  "type": "object",
  "properties": {
    "title": {"type": "string"},
    "description": {"type": "string"},
    "examples": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["title", "description", "examples"]
}`

	evaluationSchema = `{
  "type": "object",
  "properties": {
    "transcript": {"type": "string"},
    "critique": {"type": "string"}
  },
  "required": ["transcript", "critique"]
}`

	analysisSchema = `{
  "type": "object",
  "properties": {
    "criteriaMetIds": {"type": "array", "items": {"type": "string"}},
    "reasoning": {"type": "string"}
  },
  "required": ["criteriaMetIds", "reasoning"]
}`
)

func behavioralPrompt(theme string) string {
	return fmt.Sprintf("Give me a realistic behavioral interview question for the theme: %q. Keep it brief and professional.", theme)
}

func codingProblemPrompt(difficulty Difficulty) string {
	return fmt.Sprintf(`Generate a programming problem for interview practice.
Difficulty: %s.
Topics: Arrays, Strings, Hash Maps, or SQL logic.
Format: Return as JSON with title, description, and examples.`, difficulty)
}

func solutionEvaluationPrompt(problemTitle, problemDescription, solution string) string {
	return fmt.Sprintf(`You are a rigorous technical interviewer. Evaluate the following coding solution/strategy for the problem %q.
Be unbiased and critical. Do not sugar-coat shortcomings.

Problem Description: %s
User's Solution: %s

Structure your feedback exactly like this:
### Performance Metrics
* Logic Correctness: [Score/Status]
* Complexity: [Time/Space complexity analysis]

### Critical Analysis
* [Bullet points of edge cases missed or logic flaws]
* [Unbiased critique of the approach]

### Actionable Improvements
* [Specific technical steps to optimize or fix]`, problemTitle, problemDescription, solution)
}

const answerCritiqueFormat = `Structure the critique exactly like this:
### Execution Summary
* [Key takeaways of the response]
* [Did it actually answer the question?]

### Unbiased Critiques
* [Identify vagueness, lack of STAR structure, or rambling]
* [Identify missed opportunities for impact]

### Training Directives
* [Specific adjustments for the next simulation]`

func answerEvaluationPrompt(theme, prompt, answer string) string {
	return fmt.Sprintf(`You are a high-stakes executive recruiter. Evaluate the following interview response with zero sugar-coating. Provide a critical, unbiased analysis.

Theme: %s
Question Asked: %s
User's Response: %s

%s`, theme, prompt, answer, answerCritiqueFormat)
}

func answerTranscriptionPrompt(theme, prompt string) string {
	return fmt.Sprintf(`You are a high-stakes executive recruiter. The attached audio is a candidate's spoken answer to a behavioral interview question.
First transcribe the audio verbatim. Then evaluate the response with zero sugar-coating: a critical, unbiased analysis of the transcription.

Theme: %s
Question Asked: %s

Return JSON with the verbatim transcript and the critique. %s`, theme, prompt, answerCritiqueFormat)
}

func aggregatePrompt(rounds []Round) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, `You are a high-stakes executive recruiter. The candidate just completed a %d-round mock behavioral interview. Evaluate the full session with zero sugar-coating.

`, len(rounds))
	for i, round := range rounds {
		fmt.Fprintf(&builder, "Round %d - Theme: %s\nQuestion: %s\nResponse: %s\n\n", i+1, round.Theme, round.Prompt, round.Response)
	}
	builder.WriteString(`Structure your report exactly like this:
### Session Summary
* [Overall impression across all rounds]

### Round-by-Round Weak Points
* [The single biggest flaw in each round's answer]

### Hiring Signal
* [Would you advance this candidate? Be blunt.]

### Training Directives
* [Specific adjustments for the next session]`)
	return builder.String()
}

func analysisPrompt(description string, criteria []Criterion) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Analyze the following job description against these %d criteria for a \"mechanical\" job search:\n", len(criteria))

	ids := make([]string, 0, len(criteria))
	for i, criterion := range criteria {
		fmt.Fprintf(&builder, "%d. %s\n", i+1, criterion.Label)
		ids = append(ids, criterion.ID)
	}

	fmt.Fprintf(&builder, `
Return a JSON object indicating which are met. For criteriaMetIds, return the IDs matching: %s.

Job Description: %s`, strings.Join(ids, ", "), description)
	return builder.String()
}
