package grading

import (
	"fmt"
	"math"
	"strconv"

	"github.com/SAP-F-2025/grading-service/internal/models"
	"github.com/SAP-F-2025/grading-service/internal/validator"
)

// Sentiment buckets for subjective ratings, by position on the scale.
const (
	SentimentVeryPositive     = "very positive"
	SentimentPositive         = "positive"
	SentimentNeutral          = "neutral"
	SentimentSomewhatNegative = "somewhat negative"
	SentimentNegative         = "negative"
)

// RatingOptions controls how a rating is graded. The zero value grades the
// rating as a survey response.
type RatingOptions struct {
	ExpectedRating *int
	Tolerance      float64
	// Objective compares against ExpectedRating; ignored when it is nil.
	Objective bool
	Labels    []string
}

// RatingOptionsFromConfig builds grading options from a stored config.
func RatingOptionsFromConfig(cfg models.RatingConfig) RatingOptions {
	return RatingOptions{
		ExpectedRating: cfg.ExpectedRating,
		Tolerance:      cfg.Tolerance,
		Objective:      cfg.Objective,
		Labels:         cfg.RatingLabels,
	}
}

// GradeRatingQuestion validates and grades a rating answer.
func GradeRatingQuestion(raw interface{}, ratingMin, ratingMax int, ratingType models.RatingType, opts RatingOptions) models.RatingResult {
	result := models.RatingResult{
		RatingType: ratingType,
		Scale:      models.RatingScale{Min: ratingMin, Max: ratingMax},
	}

	validation := validator.ValidateRatingAnswer(raw, ratingMin, ratingMax)
	result.UserRating = validation.Answer.Rating
	if !validation.IsValid {
		result.Error = validation.Error
		result.Feedback = validation.Error
		return result
	}

	if opts.Objective && opts.ExpectedRating != nil {
		return gradeObjectiveRating(result, *opts.ExpectedRating, opts.Tolerance)
	}
	return gradeSubjectiveRating(result, opts.Labels)
}

func gradeSubjectiveRating(result models.RatingResult, labels []string) models.RatingResult {
	rating := result.UserRating
	pct := scalePercentile(rating, result.Scale)

	result.IsCorrect = true
	result.Score = 1
	result.Sentiment = RatingSentiment(pct)

	remark := ratingRemark(rating, pct, result.Scale, result.RatingType)
	if idx := rating - result.Scale.Min; idx >= 0 && idx < len(labels) && labels[idx] != "" {
		remark = fmt.Sprintf("You chose %q. %s", labels[idx], remark)
	}

	result.Feedback = fmt.Sprintf("Thanks for your rating! Your response is %s.", result.Sentiment)
	if remark != "" {
		result.Feedback += " " + remark
	}
	return result
}

func gradeObjectiveRating(result models.RatingResult, expected int, tolerance float64) models.RatingResult {
	rating := result.UserRating
	tolerance = math.Max(tolerance, 0)
	distance := math.Abs(float64(rating - expected))
	result.ExpectedRating = &expected

	if distance <= tolerance {
		result.IsCorrect = true
		result.Score = 1
		if tolerance == 0 {
			result.Feedback = fmt.Sprintf("Correct! Your rating of %d matches the expected rating.", rating)
		} else {
			result.Feedback = fmt.Sprintf("Correct! Your rating of %d is within %s of the expected rating of %d.",
				rating, strconv.FormatFloat(tolerance, 'f', -1, 64), expected)
		}
		return result
	}

	maxDistance := math.Max(
		math.Abs(float64(result.Scale.Max-expected)),
		math.Abs(float64(result.Scale.Min-expected)),
	)
	if maxDistance > 0 {
		result.Score = math.Max(0, 1-distance/maxDistance)
	}

	result.Feedback = fmt.Sprintf("Incorrect. Your rating of %d is %s the expected rating of %d.",
		rating, closenessPhrase(result.Score), expected)
	return result
}

// RatingSentiment buckets a scale percentile (0-100).
func RatingSentiment(pct float64) string {
	switch {
	case pct >= 80:
		return SentimentVeryPositive
	case pct >= 60:
		return SentimentPositive
	case pct >= 40:
		return SentimentNeutral
	case pct >= 20:
		return SentimentSomewhatNegative
	default:
		return SentimentNegative
	}
}

func scalePercentile(rating int, scale models.RatingScale) float64 {
	span := scale.Max - scale.Min
	if span <= 0 {
		return 100
	}
	return float64(rating-scale.Min) / float64(span) * 100
}

func ratingRemark(rating int, pct float64, scale models.RatingScale, ratingType models.RatingType) string {
	switch ratingType {
	case models.RatingStars:
		switch rating {
		case scale.Max:
			return fmt.Sprintf("%d out of %d stars, a perfect score!", rating, scale.Max)
		case scale.Min:
			return fmt.Sprintf("%d out of %d stars. Let us know what could be better.", rating, scale.Max)
		default:
			return fmt.Sprintf("%d out of %d stars.", rating, scale.Max)
		}
	case models.RatingEmoji:
		switch {
		case pct >= 80:
			return "Glad it made you smile!"
		case pct <= 20:
			return "Sorry it wasn't a good experience."
		default:
			return "Thanks for sharing how you feel."
		}
	case models.RatingLikert:
		switch {
		case pct >= 80:
			return "You agree with this statement."
		case pct <= 20:
			return "You disagree with this statement."
		default:
			return "You are neutral about this statement."
		}
	case models.RatingNumbers:
		return fmt.Sprintf("You rated %d on a scale of %d to %d (%d%% of the scale).",
			rating, scale.Min, scale.Max, int(math.Round(pct)))
	default:
		return ""
	}
}

func closenessPhrase(score float64) string {
	switch {
	case score >= 0.8:
		return "very close to"
	case score >= 0.6:
		return "close to"
	case score >= 0.4:
		return "somewhat off from"
	case score >= 0.2:
		return "far from"
	default:
		return "very far from"
	}
}
