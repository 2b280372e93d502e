package models

type RatingStatistics struct {
	Average      float64     `json:"average"`
	Median       float64     `json:"median"`
	Mode         []int       `json:"mode"`
	Distribution map[int]int `json:"distribution"`
	Total        int         `json:"total"`
}

type IncorrectAnswerCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

type DropdownStatistics struct {
	TotalAttempts          int                    `json:"total_attempts"`
	CorrectAnswers         int                    `json:"correct_answers"`
	IncorrectAnswers       int                    `json:"incorrect_answers"`
	PartialCreditAnswers   int                    `json:"partial_credit_answers"`
	AverageScore           float64                `json:"average_score"`
	AccuracyRate           float64                `json:"accuracy_rate"`
	CommonIncorrectAnswers []IncorrectAnswerCount `json:"common_incorrect_answers"`
}

// OutcomeSummary aggregates engine outcomes across question types.
type OutcomeSummary struct {
	Total        int                  `json:"total"`
	Correct      int                  `json:"correct"`
	Invalid      int                  `json:"invalid"`
	TotalScore   float64              `json:"total_score"`
	MaxScore     float64              `json:"max_score"`
	AverageScore float64              `json:"average_score"`
	Percentage   float64              `json:"percentage"`
	ByType       map[QuestionType]int `json:"by_type"`
}
