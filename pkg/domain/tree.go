package domain

// QuestionTree is the ordered question list for one project type.
// It is immutable for the lifetime of any engine bound to it.
type QuestionTree struct {
	// ProjectType is the registry key selecting this tree (e.g. "electrical-panel").
	ProjectType string `json:"project_type" yaml:"project_type" mapstructure:"project_type"`

	// Name is the human-readable project name (e.g. "Electrical Panel Upgrade").
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	Questions []Question `json:"questions" yaml:"questions" mapstructure:"questions"`
}

// Index returns the definition index of a question id, or -1 when absent.
func (t *QuestionTree) Index(questionID string) int {
	for i, q := range t.Questions {
		if q.ID == questionID {
			return i
		}
	}
	return -1
}

// Find returns the question definition for an id.
func (t *QuestionTree) Find(questionID string) (Question, bool) {
	if i := t.Index(questionID); i >= 0 {
		return t.Questions[i], true
	}
	return Question{}, false
}
