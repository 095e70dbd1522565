package httpapi

import "github.com/permitpath/permitpath/pkg/domain"

type createSessionRequest struct {
	ProjectType string `json:"project_type"`
}

type answerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     any    `json:"answer"`
}

type rewindRequest struct {
	QuestionID string `json:"question_id"`
}

type sessionResponse struct {
	SessionID string  `json:"session_id"`
	Next      *prompt `json:"next,omitempty"`
}

type nextResponse struct {
	Next *prompt `json:"next,omitempty"`
	Done bool    `json:"done"`
}

type answerResponse struct {
	Validation domain.Validation `json:"validation"`
	Next       *prompt           `json:"next,omitempty"`
	Done       bool              `json:"done,omitempty"`
}

type reviewResponse struct {
	Items []domain.ReviewItem `json:"items"`
}

type treesResponse struct {
	ProjectTypes []string `json:"project_types"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// prompt is the wire form of domain.Prompt. Progress is clamped here: the
// engine reports the raw ratio, the API shields progress bars from >100.
type prompt struct {
	Question domain.Question `json:"question"`
	Number   int             `json:"number"`
	Total    int             `json:"total"`
	Progress int             `json:"progress"`
}

func promptDTO(p *domain.Prompt) *prompt {
	if p == nil {
		return nil
	}
	progress := p.Progress
	if progress > 100 {
		progress = 100
	}
	return &prompt{
		Question: p.Question,
		Number:   p.Number,
		Total:    p.Total,
		Progress: progress,
	}
}
