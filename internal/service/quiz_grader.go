package service

import (
	"engineer_connect_backend/internal/model"
	"math"
	"strings"
)

// GradeQuiz scores answers against def. Questions are walked in definition
// order; for each index only the first submitted answer counts, and a
// missing answer scores zero while its points still count toward the max.
func GradeQuiz(def model.QuizDefinition, answers []model.SubmittedAnswer) model.QuizResult {
	byIndex := make(map[int]string, len(answers))
	for _, a := range answers {
		if _, seen := byIndex[a.QuestionIndex]; !seen {
			byIndex[a.QuestionIndex] = a.Answer
		}
	}

	result := model.QuizResult{Answers: make([]model.GradedAnswer, 0, len(def.Questions))}
	for i, q := range def.Questions {
		result.MaxScore += q.Points

		answer, ok := byIndex[i]
		graded := model.GradedAnswer{QuestionIndex: i, Answer: answer}
		if ok && isCorrect(q, answer) {
			graded.IsCorrect = true
			graded.Points = q.Points
			result.TotalScore += q.Points
		}
		result.Answers = append(result.Answers, graded)
	}

	if result.MaxScore > 0 {
		result.Percentage = int(math.Round(float64(result.TotalScore) * 100 / float64(result.MaxScore)))
	}
	result.Passed = result.Percentage >= def.PassingScore
	return result
}

func isCorrect(q model.QuizQuestion, answer string) bool {
	switch q.Type {
	case model.MultipleChoice:
		opt, ok := q.CorrectOption()
		return ok && answer == opt.Text
	case model.TextQuestion, model.BooleanQuestion:
		return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer))
	default:
		return false
	}
}
