package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionNumeric  QuestionType = "numeric"
	QuestionSequence QuestionType = "sequence"
	QuestionRating   QuestionType = "rating"
	QuestionDropdown QuestionType = "dropdown"
)

type RatingType string

const (
	RatingStars   RatingType = "stars"
	RatingNumbers RatingType = "numbers"
	RatingEmoji   RatingType = "emoji"
	RatingLikert  RatingType = "likert"
)

// QuestionConfig is the type-specific part of a question. The set of
// implementations is closed; see the config types in this file.
type QuestionConfig interface {
	QuestionType() QuestionType
	isQuestionConfig()
}

// Question is an immutable question record handed to the grading engine.
type Question struct {
	ID         uint           `json:"id"`
	Text       string         `json:"text"`
	OrderIndex int            `json:"order_index"`
	Config     QuestionConfig `json:"config"`
}

// Type returns the question type derived from its config, or "" when the
// config is missing.
func (q *Question) Type() QuestionType {
	if q == nil {
		return ""
	}
	cfg := ResolveConfig(q.Config)
	if cfg == nil {
		return ""
	}
	return cfg.QuestionType()
}

// ResolveConfig returns the value form of a config. Pointer configs are
// dereferenced; a nil pointer resolves to nil.
func ResolveConfig(c QuestionConfig) QuestionConfig {
	switch v := c.(type) {
	case *NumericConfig:
		if v == nil {
			return nil
		}
		return *v
	case *SequenceConfig:
		if v == nil {
			return nil
		}
		return *v
	case *RatingConfig:
		if v == nil {
			return nil
		}
		return *v
	case *DropdownConfig:
		if v == nil {
			return nil
		}
		return *v
	default:
		return c
	}
}

type NumericConfig struct {
	CorrectAnswer float64  `json:"correct_answer"`
	Tolerance     float64  `json:"tolerance" validate:"min=0"`
	DecimalPlaces int      `json:"decimal_places" validate:"min=0,max=10"`
	MinValue      *float64 `json:"min_value,omitempty"`
	MaxValue      *float64 `json:"max_value,omitempty"`
	Unit          *string  `json:"unit,omitempty" validate:"omitempty,max=20"`
}

type SequenceItem struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

type SequenceConfig struct {
	Items              []SequenceItem `json:"items" validate:"required,min=2,dive"`
	CorrectSequence    []string       `json:"correct_sequence" validate:"required,min=2,dive,required"`
	AllowPartialCredit bool           `json:"allow_partial_credit"`
}

// Labels maps item ids to their display text.
func (c SequenceConfig) Labels() map[string]string {
	labels := make(map[string]string, len(c.Items))
	for _, item := range c.Items {
		labels[item.ID] = item.Text
	}
	return labels
}

type RatingConfig struct {
	RatingMin    int        `json:"rating_min" validate:"min=1,max=10"`
	RatingMax    int        `json:"rating_max" validate:"min=2,max=10,gtfield=RatingMin"`
	RatingType   RatingType `json:"rating_type" validate:"rating_type"`
	RatingLabels []string   `json:"rating_labels,omitempty"`

	// Objective grading against an expected rating. Without ExpectedRating
	// the question is graded as a survey regardless of Objective.
	ExpectedRating *int    `json:"expected_rating,omitempty"`
	Tolerance      float64 `json:"tolerance" validate:"min=0"`
	Objective      bool    `json:"objective"`
}

type DropdownOption struct {
	Text       string `json:"text" validate:"required"`
	IsCorrect  bool   `json:"is_correct"`
	OrderIndex int    `json:"order_index"`
}

type DropdownConfig struct {
	Options           []DropdownOption `json:"options" validate:"required,min=2,dive"`
	Placeholder       *string          `json:"placeholder,omitempty"`
	AllowSearch       bool             `json:"allow_search"`
	ShowOptionNumbers bool             `json:"show_option_numbers"`
}

// CorrectOption returns the text of the first option flagged correct, or ""
// when no option is.
func (c DropdownConfig) CorrectOption() string {
	for _, opt := range c.Options {
		if opt.IsCorrect {
			return opt.Text
		}
	}
	return ""
}

func (NumericConfig) QuestionType() QuestionType  { return QuestionNumeric }
func (SequenceConfig) QuestionType() QuestionType { return QuestionSequence }
func (RatingConfig) QuestionType() QuestionType   { return QuestionRating }
func (DropdownConfig) QuestionType() QuestionType { return QuestionDropdown }

func (NumericConfig) isQuestionConfig()  {}
func (SequenceConfig) isQuestionConfig() {}
func (RatingConfig) isQuestionConfig()   {}
func (DropdownConfig) isQuestionConfig() {}

// DecodeQuestionConfig decodes a stored JSON config for the given type.
func DecodeQuestionConfig(questionType QuestionType, data []byte) (QuestionConfig, error) {
	switch questionType {
	case QuestionNumeric:
		var cfg NumericConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("invalid numeric config: %w", err)
		}
		return cfg, nil
	case QuestionSequence:
		var cfg SequenceConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("invalid sequence config: %w", err)
		}
		return cfg, nil
	case QuestionRating:
		var cfg RatingConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("invalid rating config: %w", err)
		}
		return cfg, nil
	case QuestionDropdown:
		var cfg DropdownConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("invalid dropdown config: %w", err)
		}
		return cfg, nil
	default:
		return nil, fmt.Errorf("unsupported question type: %s", questionType)
	}
}

// QuestionRecord is the stored form of a question. Config holds the JSON of
// the type-specific config.
type QuestionRecord struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	QuizID     uint           `json:"quiz_id" gorm:"not null;index"`
	Type       QuestionType   `json:"type" gorm:"not null;size:20" validate:"required,question_type"`
	Text       string         `json:"text" gorm:"type:text;not null" validate:"required"`
	OrderIndex int            `json:"order_index" gorm:"default:0"`
	Config     datatypes.JSON `json:"config" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (QuestionRecord) TableName() string {
	return "quiz_questions"
}

// ToQuestion decodes the record into an engine question.
func (r *QuestionRecord) ToQuestion() (*Question, error) {
	cfg, err := DecodeQuestionConfig(r.Type, r.Config)
	if err != nil {
		return nil, fmt.Errorf("question %d: %w", r.ID, err)
	}
	return &Question{
		ID:         r.ID,
		Text:       r.Text,
		OrderIndex: r.OrderIndex,
		Config:     cfg,
	}, nil
}

// NewQuestionRecord encodes an engine question into its stored form.
func NewQuestionRecord(quizID uint, q *Question) (*QuestionRecord, error) {
	if q == nil {
		return nil, fmt.Errorf("question config is required")
	}
	cfg := ResolveConfig(q.Config)
	if cfg == nil {
		return nil, fmt.Errorf("question config is required")
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal question config: %w", err)
	}
	return &QuestionRecord{
		ID:         q.ID,
		QuizID:     quizID,
		Type:       cfg.QuestionType(),
		Text:       q.Text,
		OrderIndex: q.OrderIndex,
		Config:     datatypes.JSON(data),
	}, nil
}
