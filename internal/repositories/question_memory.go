package repositories

import (
	"context"
	"slices"
	"sync"

	"github.com/SAP-F-2025/grading-service/internal/models"
)

type memoryEntry struct {
	quizID   uint
	question *models.Question
}

// MemoryQuestionRepository keeps questions in process. Each instance is
// independent; there is no shared default store.
type MemoryQuestionRepository struct {
	mu        sync.RWMutex
	questions map[uint]memoryEntry
}

func NewMemoryQuestionRepository() *MemoryQuestionRepository {
	return &MemoryQuestionRepository{questions: make(map[uint]memoryEntry)}
}

// Add stores or replaces a question under the given quiz.
func (r *MemoryQuestionRepository) Add(quizID uint, questions ...*models.Question) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range questions {
		if q == nil {
			continue
		}
		r.questions[q.ID] = memoryEntry{quizID: quizID, question: q}
	}
}

func (r *MemoryQuestionRepository) GetByID(_ context.Context, id uint) (*models.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.questions[id]
	if !ok {
		return nil, NewNotFoundError(id)
	}
	return entry.question, nil
}

func (r *MemoryQuestionRepository) GetByIDs(_ context.Context, ids []uint) ([]*models.Question, error) {
	r.mu.RLock()
	found := make(map[uint]*models.Question, len(ids))
	for _, id := range ids {
		if entry, ok := r.questions[id]; ok {
			found[id] = entry.question
		}
	}
	r.mu.RUnlock()
	return OrderByIDs(ids, found)
}

// GetByQuiz returns the quiz's questions sorted by order index, then id.
func (r *MemoryQuestionRepository) GetByQuiz(_ context.Context, quizID uint) ([]*models.Question, error) {
	r.mu.RLock()
	var questions []*models.Question
	for _, entry := range r.questions {
		if entry.quizID == quizID {
			questions = append(questions, entry.question)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(questions, func(a, b *models.Question) int {
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex - b.OrderIndex
		}
		return int(a.ID) - int(b.ID)
	})
	return questions, nil
}
