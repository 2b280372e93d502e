package models

// Answer is a student response tagged with its question type.
type Answer interface {
	AnswerType() QuestionType
}

type NumericAnswer struct {
	Type  QuestionType `json:"type"`
	Value float64      `json:"value"`
}

type SequenceAnswer struct {
	Type     QuestionType `json:"type"`
	Sequence []string     `json:"sequence"`
}

type RatingAnswer struct {
	Type   QuestionType `json:"type"`
	Rating int          `json:"rating"`
}

type DropdownAnswer struct {
	Type           QuestionType `json:"type" validate:"answer_type=dropdown"`
	SelectedOption string       `json:"selected_option" validate:"required"`
}

func (NumericAnswer) AnswerType() QuestionType  { return QuestionNumeric }
func (SequenceAnswer) AnswerType() QuestionType { return QuestionSequence }
func (RatingAnswer) AnswerType() QuestionType   { return QuestionRating }
func (DropdownAnswer) AnswerType() QuestionType { return QuestionDropdown }
