package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/grading-service/internal/cache"
	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/SAP-F-2025/grading-service/internal/utils"
)

// CachedQuestionRepository reads questions through a cache. Cache failures
// are logged and never fail a lookup.
type CachedQuestionRepository struct {
	next   QuestionRepository
	cache  cache.CacheService
	ttl    time.Duration
	logger utils.Logger
}

func NewCachedQuestionRepository(next QuestionRepository, cacheService cache.CacheService, ttl time.Duration, logger utils.Logger) *CachedQuestionRepository {
	return &CachedQuestionRepository{
		next:   next,
		cache:  cacheService,
		ttl:    ttl,
		logger: logger.With("component", "question_cache"),
	}
}

func (r *CachedQuestionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	if q, ok := r.lookup(ctx, id); ok {
		return q, nil
	}

	q, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, q)
	return q, nil
}

func (r *CachedQuestionRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error) {
	found := make(map[uint]*models.Question, len(ids))
	var misses []uint
	for _, id := range ids {
		if q, ok := r.lookup(ctx, id); ok {
			found[id] = q
		} else {
			misses = append(misses, id)
		}
	}

	if len(misses) > 0 {
		loaded, err := r.next.GetByIDs(ctx, misses)
		if err != nil {
			return nil, err
		}
		for _, q := range loaded {
			found[q.ID] = q
			r.store(ctx, q)
		}
	}
	return OrderByIDs(ids, found)
}

// GetByQuiz is not cached; it primes the per-question entries instead.
func (r *CachedQuestionRepository) GetByQuiz(ctx context.Context, quizID uint) ([]*models.Question, error) {
	questions, err := r.next.GetByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		r.store(ctx, q)
	}
	return questions, nil
}

// Invalidate drops one question from the cache.
func (r *CachedQuestionRepository) Invalidate(ctx context.Context, id uint) error {
	return r.cache.Delete(ctx, cache.QuestionKey(id))
}

func (r *CachedQuestionRepository) lookup(ctx context.Context, id uint) (*models.Question, bool) {
	var record models.QuestionRecord
	if err := r.cache.Get(ctx, cache.QuestionKey(id), &record); err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			r.logger.WarnContext(ctx, "Question cache read failed", "question_id", id, "error", err)
		}
		return nil, false
	}

	q, err := record.ToQuestion()
	if err != nil {
		r.logger.WarnContext(ctx, "Discarding undecodable cached question", "question_id", id, "error", err)
		_ = r.cache.Delete(ctx, cache.QuestionKey(id))
		return nil, false
	}
	return q, true
}

func (r *CachedQuestionRepository) store(ctx context.Context, q *models.Question) {
	record, err := models.NewQuestionRecord(0, q)
	if err != nil {
		r.logger.WarnContext(ctx, "Question not cacheable", "question_id", q.ID, "error", err)
		return
	}
	if err := r.cache.Set(ctx, cache.QuestionKey(q.ID), record, r.ttl); err != nil {
		r.logger.WarnContext(ctx, "Question cache write failed", "question_id", q.ID, "error", err)
	}
}
