package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/grading-service/internal/models"
)

// ErrQuestionNotFound is wrapped by every implementation when a question id
// does not resolve.
var ErrQuestionNotFound = errors.New("question not found")

// QuestionRepository is the read side of question storage used by grading
type QuestionRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	// GetByIDs returns questions in the order of ids. Any missing id fails
	// the whole call.
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error)
	GetByQuiz(ctx context.Context, quizID uint) ([]*models.Question, error)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrQuestionNotFound)
}

// NewNotFoundError wraps ErrQuestionNotFound with the missing id.
func NewNotFoundError(id uint) error {
	return fmt.Errorf("%w: id %d", ErrQuestionNotFound, id)
}

func missingIDs(ids []uint) error {
	return fmt.Errorf("%w: ids %v", ErrQuestionNotFound, ids)
}

// OrderByIDs arranges found questions in the requested order, reporting the
// ids that were not found.
func OrderByIDs(ids []uint, found map[uint]*models.Question) ([]*models.Question, error) {
	questions := make([]*models.Question, 0, len(ids))
	var missing []uint
	for _, id := range ids {
		q, ok := found[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		questions = append(questions, q)
	}
	if len(missing) > 0 {
		return nil, missingIDs(missing)
	}
	return questions, nil
}
