package gemini

// Difficulty selects the level of a generated coding problem.
type Difficulty string

const (
	// DifficultyEasy requests an easy problem.
	DifficultyEasy Difficulty = "easy"
	// DifficultyMedium requests a medium problem.
	DifficultyMedium Difficulty = "medium"
)

// ValidDifficulties returns all valid difficulty values.
func ValidDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium}
}

// IsValid returns true if the difficulty is a known value.
func (d Difficulty) IsValid() bool {
	for _, valid := range ValidDifficulties() {
		if d == valid {
			return true
		}
	}
	return false
}

// CodingProblem is a generated practice problem.
type CodingProblem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// Evaluation carries the transcript of a spoken answer and its critique.
type Evaluation struct {
	Transcript string `json:"transcript"`
	Critique   string `json:"critique"`
}

// Round captures one mock interview theme, its question, and the
// candidate's response.
type Round struct {
	Theme    string `json:"theme"`
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// Criterion mirrors one job-fit check for description analysis.
type Criterion struct {
	ID    string
	Label string
}

// DescriptionAnalysis reports which criteria a job description meets.
type DescriptionAnalysis struct {
	CriteriaMetIDs []string `json:"criteriaMetIds"`
	Reasoning      string   `json:"reasoning"`
}
