package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/SAP-F-2025/grading-service/internal/repositories"
	"gorm.io/gorm"
)

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

// GetByID retrieves a question by ID and decodes its config
func (q *QuestionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var record models.QuestionRecord
	if err := q.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.NewNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	question, err := record.ToQuestion()
	if err != nil {
		return nil, fmt.Errorf("failed to decode question: %w", err)
	}
	return question, nil
}

// GetByIDs retrieves several questions in the order of ids
func (q *QuestionPostgreSQL) GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error) {
	if len(ids) == 0 {
		return []*models.Question{}, nil
	}

	var records []models.QuestionRecord
	if err := q.db.WithContext(ctx).Scopes(byIDs(ids)).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	found := make(map[uint]*models.Question, len(records))
	for i := range records {
		question, err := records[i].ToQuestion()
		if err != nil {
			return nil, fmt.Errorf("failed to decode question: %w", err)
		}
		found[question.ID] = question
	}

	return repositories.OrderByIDs(ids, found)
}

// GetByQuiz retrieves all questions of a quiz ordered for display
func (q *QuestionPostgreSQL) GetByQuiz(ctx context.Context, quizID uint) ([]*models.Question, error) {
	var records []models.QuestionRecord
	if err := q.db.WithContext(ctx).Scopes(byQuiz(quizID)).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get quiz questions: %w", err)
	}

	questions := make([]*models.Question, 0, len(records))
	for i := range records {
		question, err := records[i].ToQuestion()
		if err != nil {
			return nil, fmt.Errorf("failed to decode question: %w", err)
		}
		questions = append(questions, question)
	}
	return questions, nil
}

// ===== SCOPES =====

func byIDs(ids []uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN ?", ids)
	}
}

func byQuiz(quizID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("quiz_id = ?", quizID).Order("order_index ASC").Order("id ASC")
	}
}
