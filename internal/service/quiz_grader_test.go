package service

import (
	"engineer_connect_backend/internal/model"
	"reflect"
	"testing"
)

func sampleQuiz(passing int) model.QuizDefinition {
	return model.QuizDefinition{
		Enabled:      true,
		PassingScore: passing,
		Questions: []model.QuizQuestion{
			{
				Question: "Capital of France?",
				Type:     model.MultipleChoice,
				Options: []model.QuizOption{
					{Text: "Paris", IsCorrect: true},
					{Text: "Lyon"},
				},
				Points: 1,
			},
			{Question: "Capital of Italy?", Type: model.TextQuestion, CorrectAnswer: "Rome", Points: 1},
			{Question: "Water boils at 100C at sea level", Type: model.BooleanQuestion, CorrectAnswer: "true", Points: 1},
			{Question: "2+2?", Type: model.TextQuestion, CorrectAnswer: "4", Points: 1},
		},
	}
}

func TestGradeQuizThreeOfFour(t *testing.T) {
	answers := []model.SubmittedAnswer{
		{QuestionIndex: 0, Answer: "Paris"},
		{QuestionIndex: 1, Answer: "rome"},
		{QuestionIndex: 2, Answer: "true"},
		{QuestionIndex: 3, Answer: "5"},
	}

	result := GradeQuiz(sampleQuiz(70), answers)
	if result.TotalScore != 3 || result.MaxScore != 4 || result.Percentage != 75 {
		t.Fatalf("unexpected score: %+v", result)
	}
	if !result.Passed {
		t.Fatal("75% should pass a 70% threshold")
	}

	if GradeQuiz(sampleQuiz(80), answers).Passed {
		t.Fatal("75% should fail an 80% threshold")
	}
}

func TestGradeQuizMultipleChoiceIsCaseSensitive(t *testing.T) {
	quiz := sampleQuiz(70)
	quiz.Questions = quiz.Questions[:1]

	if got := GradeQuiz(quiz, []model.SubmittedAnswer{{QuestionIndex: 0, Answer: "paris"}}); got.TotalScore != 0 {
		t.Fatalf("lowercase option should not match: %+v", got)
	}
	if got := GradeQuiz(quiz, []model.SubmittedAnswer{{QuestionIndex: 0, Answer: "Paris"}}); got.TotalScore != 1 {
		t.Fatalf("exact option should match: %+v", got)
	}
}

func TestGradeQuizTrimsTextAndBoolean(t *testing.T) {
	quiz := sampleQuiz(70)
	answers := []model.SubmittedAnswer{
		{QuestionIndex: 1, Answer: "  ROME "},
		{QuestionIndex: 2, Answer: " true "},
	}

	result := GradeQuiz(quiz, answers)
	if !result.Answers[1].IsCorrect || !result.Answers[2].IsCorrect {
		t.Fatalf("trimmed answers should match: %+v", result.Answers)
	}
	if result.Answers[0].IsCorrect || result.Answers[3].IsCorrect {
		t.Fatal("missing answers must be incorrect")
	}
	if result.MaxScore != 4 || result.TotalScore != 2 || result.Percentage != 50 {
		t.Fatalf("missing answers still count toward max: %+v", result)
	}
}

func TestGradeQuizFirstAnswerWins(t *testing.T) {
	quiz := sampleQuiz(70)
	answers := []model.SubmittedAnswer{
		{QuestionIndex: 3, Answer: "5"},
		{QuestionIndex: 3, Answer: "4"},
	}
	if GradeQuiz(quiz, answers).Answers[3].IsCorrect {
		t.Fatal("only the first answer for an index is graded")
	}
}

func TestGradeQuizDeterministic(t *testing.T) {
	quiz := sampleQuiz(70)
	answers := []model.SubmittedAnswer{
		{QuestionIndex: 2, Answer: "false"},
		{QuestionIndex: 0, Answer: "Lyon"},
		{QuestionIndex: 1, Answer: "Rome"},
	}

	first := GradeQuiz(quiz, answers)
	for i := 0; i < 10; i++ {
		if again := GradeQuiz(quiz, answers); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
}

func TestGradeQuizRounding(t *testing.T) {
	quiz := model.QuizDefinition{
		Enabled:      true,
		PassingScore: 67,
		Questions: []model.QuizQuestion{
			{Question: "a", Type: model.TextQuestion, CorrectAnswer: "a", Points: 1},
			{Question: "b", Type: model.TextQuestion, CorrectAnswer: "b", Points: 1},
			{Question: "c", Type: model.TextQuestion, CorrectAnswer: "c", Points: 1},
		},
	}
	result := GradeQuiz(quiz, []model.SubmittedAnswer{
		{QuestionIndex: 0, Answer: "a"},
		{QuestionIndex: 1, Answer: "b"},
	})
	if result.Percentage != 67 || !result.Passed {
		t.Fatalf("2/3 should round to 67 and pass: %+v", result)
	}

	empty := GradeQuiz(model.QuizDefinition{Enabled: true}, nil)
	if empty.Percentage != 0 || empty.MaxScore != 0 {
		t.Fatalf("empty quiz: %+v", empty)
	}
}
