package flow

import (
	"fmt"
	"math"
	"time"

	"github.com/permitpath/permitpath/pkg/domain"
	"github.com/permitpath/permitpath/pkg/ports"
)

// estimateFloor keeps the estimated total from collapsing when a branch gets
// pruned: the denominator never drops below 60% of the full question count,
// so the progress bar does not visibly shrink mid-walkthrough. This mirrors
// the product's original heuristic and is an approximation, not an invariant.
const estimateFloor = 0.6

// Engine walks one user through the question tree of one project type.
//
// History is the source of truth; answers is the derived last-write-wins
// cache, and cursor marks where the next scan for an applicable question
// begins. The cursor never decreases except through GoBack.
type Engine struct {
	projectType string
	tree        *domain.QuestionTree

	answers map[string]any
	history []domain.AnswerEntry
	cursor  int

	createdAt time.Time
	now       func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock overrides the time source, used by tests for stable timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an engine for a project type, resolving its tree from the
// source. An unregistered project type is the engine's only fatal failure:
// the caller must not proceed with a nil engine.
func New(projectType string, source ports.TreeSource, opts ...EngineOption) (*Engine, error) {
	tree, err := source.Get(projectType)
	if err != nil {
		return nil, fmt.Errorf("project type %q: %w", projectType, err)
	}

	e := &Engine{
		projectType: projectType,
		tree:        tree,
		answers:     make(map[string]any),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.createdAt = e.now()
	return e, nil
}

// Resume rebuilds an engine from a persisted session snapshot. The answers
// cache is refolded from history rather than trusted, so a hand-edited or
// stale snapshot cannot desynchronize the two.
func Resume(sess *domain.Session, source ports.TreeSource, opts ...EngineOption) (*Engine, error) {
	e, err := New(sess.ProjectType, source, opts...)
	if err != nil {
		return nil, err
	}

	e.history = make([]domain.AnswerEntry, len(sess.History))
	copy(e.history, sess.History)
	for _, entry := range e.history {
		e.answers[entry.QuestionID] = entry.Answer
	}
	e.cursor = sess.Cursor
	if !sess.CreatedAt.IsZero() {
		e.createdAt = sess.CreatedAt
	}
	return e, nil
}

// ProjectType returns the project type the engine is bound to.
func (e *Engine) ProjectType() string {
	return e.projectType
}

// Tree returns the question tree the engine is bound to.
func (e *Engine) Tree() *domain.QuestionTree {
	return e.tree
}

// NextQuestion returns the first applicable, not-yet-answered question at or
// after the cursor, or nil when the walkthrough is terminal.
//
// It advances the cursor to the returned question's index (not past it) so
// the next scan resumes correctly, but never mutates history or answers:
// calling it repeatedly without an intervening Answer is idempotent.
func (e *Engine) NextQuestion() *domain.Prompt {
	for i := e.cursor; i < len(e.tree.Questions); i++ {
		q := e.tree.Questions[i]
		if _, answered := e.answers[q.ID]; answered {
			continue
		}
		if !q.Applicable(e.answers) {
			continue
		}

		e.cursor = i
		return &domain.Prompt{
			Question: q,
			Number:   len(e.history) + 1,
			Total:    e.EstimateTotal(),
			Progress: e.Progress(),
		}
	}
	return nil
}

// EstimateTotal estimates how many questions the walkthrough will ask: the
// count of definitions currently applicable given the answers so far,
// floored at 60% of the full question count (see estimateFloor).
func (e *Engine) EstimateTotal() int {
	applicable := 0
	for _, q := range e.tree.Questions {
		if q.Applicable(e.answers) {
			applicable++
		}
	}

	floor := int(math.Round(estimateFloor * float64(len(e.tree.Questions))))
	if applicable < floor {
		return floor
	}
	return applicable
}

// Progress returns the answered share as a 0-100 percentage. The value is
// not clamped: a late answer that prunes branches below the answered count
// can push it past 100, and display layers are expected to clamp it.
func (e *Engine) Progress() int {
	total := e.EstimateTotal()
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(len(e.history)) / float64(total)))
}

// Answer records a response and returns the next question (nil at terminal).
//
// The engine trusts its input at this layer: callers are expected to run
// ValidateAnswer first, so a UI can surface validation errors without
// mutating walkthrough state.
func (e *Engine) Answer(questionID string, value any) *domain.Prompt {
	e.history = append(e.history, domain.AnswerEntry{
		QuestionID: questionID,
		Answer:     value,
		Timestamp:  e.now(),
	})
	e.answers[questionID] = value
	e.cursor = e.tree.Index(questionID) + 1
	return e.NextQuestion()
}

// GoBack rewinds the walkthrough to a previously answered question.
//
// The target's own answer and everything after it are discarded, the answer
// cache is rebuilt from the truncated history, and the cursor is set to the
// question's definition index so NextQuestion re-offers exactly that
// question. Returns domain.ErrNotInHistory, with state unchanged, when the
// question was never answered.
func (e *Engine) GoBack(questionID string) (*domain.Prompt, error) {
	at := -1
	for i, entry := range e.history {
		if entry.QuestionID == questionID {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, domain.ErrNotInHistory
	}

	e.history = append([]domain.AnswerEntry(nil), e.history[:at]...)
	e.answers = make(map[string]any, len(e.history))
	for _, entry := range e.history {
		e.answers[entry.QuestionID] = entry.Answer
	}
	e.cursor = e.tree.Index(questionID)

	return e.NextQuestion(), nil
}

// Review returns one formatted line per history entry, in answer order.
func (e *Engine) Review() []domain.ReviewItem {
	items := make([]domain.ReviewItem, 0, len(e.history))
	for _, entry := range e.history {
		q, _ := e.tree.Find(entry.QuestionID)
		items = append(items, domain.ReviewItem{
			QuestionID: entry.QuestionID,
			Question:   q.Text,
			Answer:     domain.FormatAnswer(entry.Answer, q),
		})
	}
	return items
}

// Summary returns a read-only snapshot for downstream consumers such as the
// fee estimator or an explanation generator.
func (e *Engine) Summary() *domain.Summary {
	answers := make(map[string]any, len(e.answers))
	for k, v := range e.answers {
		answers[k] = v
	}
	history := make([]domain.AnswerEntry, len(e.history))
	copy(history, e.history)

	return &domain.Summary{
		ProjectType: e.projectType,
		ProjectName: e.tree.Name,
		Answers:     answers,
		History:     history,
		Timestamp:   e.now(),
	}
}

// Snapshot exports the engine state as a persistable session.
func (e *Engine) Snapshot() *domain.Session {
	sess := &domain.Session{
		ProjectType: e.projectType,
		TreeName:    e.tree.Name,
		Answers:     make(map[string]any, len(e.answers)),
		History:     make([]domain.AnswerEntry, len(e.history)),
		Cursor:      e.cursor,
		CreatedAt:   e.createdAt,
		UpdatedAt:   e.now(),
	}
	for k, v := range e.answers {
		sess.Answers[k] = v
	}
	copy(sess.History, e.history)
	return sess
}
