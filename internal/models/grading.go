package models

type MatchType string

const (
	MatchExact MatchType = "exact"
	MatchNone  MatchType = "none"
)

type AnswerOutcome string

const (
	OutcomeCorrect   AnswerOutcome = "correct"
	OutcomePartial   AnswerOutcome = "partial"
	OutcomeIncorrect AnswerOutcome = "incorrect"
)

type NumericResult struct {
	IsCorrect     bool    `json:"is_correct"`
	Score         float64 `json:"score"`
	Feedback      string  `json:"feedback"`
	UserAnswer    float64 `json:"user_answer"`
	CorrectAnswer float64 `json:"correct_answer"`
	Error         string  `json:"error,omitempty"`
}

// SequenceScores keeps every partial-credit heuristic so callers can see
// which one produced the awarded score.
type SequenceScores struct {
	Positional float64 `json:"positional"`
	LCS        float64 `json:"lcs"`
	Adjacency  float64 `json:"adjacency"`
}

// Best returns the highest of the three heuristic scores.
func (s SequenceScores) Best() float64 {
	return max(s.Positional, s.LCS, s.Adjacency)
}

type SequenceResult struct {
	IsCorrect       bool            `json:"is_correct"`
	Score           float64         `json:"score"`
	Feedback        string          `json:"feedback"`
	PartialCredit   *float64        `json:"partial_credit,omitempty"`
	Breakdown       *SequenceScores `json:"breakdown,omitempty"`
	CorrectSequence []string        `json:"correct_sequence"`
	UserSequence    []string        `json:"user_sequence"`
	Error           string          `json:"error,omitempty"`
}

type RatingScale struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type RatingResult struct {
	IsCorrect      bool        `json:"is_correct"`
	Score          float64     `json:"score"`
	Feedback       string      `json:"feedback"`
	UserRating     int         `json:"user_rating"`
	ExpectedRating *int        `json:"expected_rating,omitempty"`
	RatingType     RatingType  `json:"rating_type"`
	Scale          RatingScale `json:"scale"`
	Sentiment      string      `json:"sentiment,omitempty"`
	Error          string      `json:"error,omitempty"`
}

type DropdownGradingDetails struct {
	MatchType   MatchType     `json:"match_type"`
	AnswerType  AnswerOutcome `json:"answer_type"`
	Similarity  *float64      `json:"similarity,omitempty"`
	OptionCount int           `json:"option_count"`
}

type DropdownResult struct {
	Score          float64                `json:"score"`
	MaxScore       float64                `json:"max_score"`
	IsCorrect      bool                   `json:"is_correct"`
	Feedback       string                 `json:"feedback"`
	SelectedOption string                 `json:"selected_option"`
	CorrectOption  string                 `json:"correct_option"`
	PartialCredit  bool                   `json:"partial_credit"`
	GradingDetails DropdownGradingDetails `json:"grading_details"`
	Error          string                 `json:"error,omitempty"`
}

// GradingOutcome is the type-independent envelope produced by the grading
// engine. Result holds the per-type result struct.
type GradingOutcome struct {
	QuestionID   uint         `json:"question_id"`
	QuestionType QuestionType `json:"question_type"`
	IsCorrect    bool         `json:"is_correct"`
	Score        float64      `json:"score"`
	MaxScore     float64      `json:"max_score"`
	Feedback     string       `json:"feedback"`
	Valid        bool         `json:"valid"`
	Result       interface{}  `json:"result"`
}
