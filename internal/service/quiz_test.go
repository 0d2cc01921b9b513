package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository"
)

type fakeQuizRepo struct {
	nextID    int
	questions map[int]domain.QuizQuestion
	quizzes   map[uint]domain.UserQuiz
	answers   map[uint]map[int]string
	names     map[uint][2]string
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{
		questions: make(map[int]domain.QuizQuestion),
		quizzes:   make(map[uint]domain.UserQuiz),
		answers:   make(map[uint]map[int]string),
		names:     make(map[uint][2]string),
	}
}

func (f *fakeQuizRepo) CreateQuestion(_ context.Context, question domain.QuizQuestion) (domain.QuizQuestion, error) {
	f.nextID++
	question.ID = f.nextID
	f.questions[question.ID] = question

	return question, nil
}

func (f *fakeQuizRepo) FindQuestionByID(_ context.Context, id int) (domain.QuizQuestion, error) {
	question, ok := f.questions[id]
	if !ok {
		return domain.QuizQuestion{}, repository.ErrQuestionNotFound
	}

	return question, nil
}

func (f *fakeQuizRepo) FindAllQuestions(_ context.Context) ([]domain.QuizQuestion, error) {
	questions := make([]domain.QuizQuestion, 0, len(f.questions))
	for id := 1; id <= f.nextID; id++ {
		if question, ok := f.questions[id]; ok {
			questions = append(questions, question)
		}
	}

	return questions, nil
}

func (f *fakeQuizRepo) UpdateQuestion(_ context.Context, question domain.QuizQuestion) (domain.QuizQuestion, error) {
	if _, ok := f.questions[question.ID]; !ok {
		return domain.QuizQuestion{}, repository.ErrQuestionNotFound
	}
	f.questions[question.ID] = question

	return question, nil
}

func (f *fakeQuizRepo) DeleteQuestion(_ context.Context, id int) error {
	if _, ok := f.questions[id]; !ok {
		return repository.ErrQuestionNotFound
	}
	delete(f.questions, id)

	return nil
}

func (f *fakeQuizRepo) ListQuestionIDs(_ context.Context) ([]int, error) {
	ids := make([]int, 0, len(f.questions))
	for id := 1; id <= f.nextID; id++ {
		if _, ok := f.questions[id]; ok {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func (f *fakeQuizRepo) GetOrCreateUserQuiz(_ context.Context, userID uint) (domain.UserQuiz, error) {
	quiz, ok := f.quizzes[userID]
	if !ok {
		quiz = domain.UserQuiz{UserID: userID, CurrentQuestionIndex: domain.QuizNotStarted}
		f.quizzes[userID] = quiz
	}

	return quiz, nil
}

func (f *fakeQuizRepo) UpdateUserQuiz(_ context.Context, quiz domain.UserQuiz) (domain.UserQuiz, error) {
	f.quizzes[quiz.UserID] = quiz

	return quiz, nil
}

func (f *fakeQuizRepo) ListAnsweredQuestionIDs(_ context.Context, userID uint) ([]int, error) {
	var ids []int
	for id := range f.answers[userID] {
		ids = append(ids, id)
	}

	return ids, nil
}

func (f *fakeQuizRepo) SubmitAnswer(_ context.Context, answer domain.UserAnswer, scoreDelta int) error {
	if _, ok := f.answers[answer.UserID][answer.QuestionID]; ok {
		return repository.ErrAlreadyAnswered
	}
	if f.answers[answer.UserID] == nil {
		f.answers[answer.UserID] = make(map[int]string)
	}
	f.answers[answer.UserID][answer.QuestionID] = answer.Answer

	quiz := f.quizzes[answer.UserID]
	quiz.Score += scoreDelta
	f.quizzes[answer.UserID] = quiz

	return nil
}

func (f *fakeQuizRepo) ListCompletedQuizzes(_ context.Context) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	for userID, quiz := range f.quizzes {
		if quiz.CurrentQuestionIndex != domain.QuizCompleted {
			continue
		}
		name := f.names[userID]
		entries = append(entries, domain.LeaderboardEntry{
			UserID:    userID,
			FirstName: name[0],
			LastName:  name[1],
			Score:     quiz.Score,
		})
	}

	return entries, nil
}

type fakeQuizUsers struct {
	users map[uint]domain.User
}

func (f *fakeQuizUsers) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func newQuizFixture(t *testing.T, questionCount int) (*QuizService, *fakeQuizRepo) {
	t.Helper()

	repo := newFakeQuizRepo()
	users := &fakeQuizUsers{users: map[uint]domain.User{
		1: {ID: 1, FirstName: "Camille", LastName: "Rochat"},
		2: {ID: 2, FirstName: "Julien", LastName: "Favre"},
	}}
	svc := NewQuizService(repo, users)

	for i := 0; i < questionCount; i++ {
		difficulty := domain.DifficultyEasy
		if i%2 == 1 {
			difficulty = domain.DifficultyHard
		}
		question, err := repo.CreateQuestion(context.Background(), domain.QuizQuestion{
			Question:      fmt.Sprintf("Question #%d", i+1),
			OptionA:       "Option A",
			OptionB:       "Option B",
			OptionC:       "Option C",
			OptionD:       "Option D",
			CorrectOption: "Option A",
			Difficulty:    difficulty,
		})
		require.NoError(t, err)
		require.NotZero(t, question.ID)
	}

	return svc, repo
}

func TestQuizService_NextQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated calls return the same question until answered", func(t *testing.T) {
		svc, _ := newQuizFixture(t, 3)

		first, err := svc.NextQuestion(ctx, 1)
		require.NoError(t, err)

		again, err := svc.NextQuestion(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)

		current, err := svc.CurrentQuestion(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, first.ID, current.ID)
	})

	t.Run("draws only unanswered questions and then completes", func(t *testing.T) {
		svc, _ := newQuizFixture(t, 4)

		seen := make(map[int]bool)
		for i := 0; i < 4; i++ {
			question, err := svc.NextQuestion(ctx, 1)
			require.NoError(t, err)
			require.False(t, seen[question.ID], "question %d drawn twice", question.ID)
			seen[question.ID] = true

			_, err = svc.Answer(ctx, 1, question.ID, "Option A")
			require.NoError(t, err)
		}

		done, err := svc.NextQuestion(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.QuizCompleted, done.ID)

		// Completion is terminal.
		done, err = svc.CurrentQuestion(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.QuizCompleted, done.ID)
	})

	t.Run("a deleted current question is replaced", func(t *testing.T) {
		svc, _ := newQuizFixture(t, 2)

		first, err := svc.NextQuestion(ctx, 1)
		require.NoError(t, err)

		require.NoError(t, svc.DeleteQuestion(ctx, first.ID))

		replacement, err := svc.NextQuestion(ctx, 1)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, replacement.ID)
		assert.NotEqual(t, domain.QuizCompleted, replacement.ID)
	})

	t.Run("unknown user is rejected", func(t *testing.T) {
		svc, _ := newQuizFixture(t, 1)

		_, err := svc.NextQuestion(ctx, 99)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestQuizService_Answer(t *testing.T) {
	ctx := context.Background()

	t.Run("correct answers are scored by difficulty", func(t *testing.T) {
		svc, repo := newQuizFixture(t, 2)

		total := 0
		for i := 0; i < 2; i++ {
			question, err := svc.NextQuestion(ctx, 1)
			require.NoError(t, err)

			result, err := svc.Answer(ctx, 1, question.ID, "option a")
			require.NoError(t, err)
			assert.True(t, result.Correct)
			assert.Equal(t, "Option A", result.CorrectOption)

			full, err := repo.FindQuestionByID(ctx, question.ID)
			require.NoError(t, err)
			assert.Equal(t, full.Difficulty.Reward(), result.Reward)

			total += result.Reward
			assert.Equal(t, total, result.Score)
		}

		quiz, err := svc.GetUserQuiz(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, total, quiz.Score)
	})

	t.Run("wrong answers earn nothing but still consume the question", func(t *testing.T) {
		svc, _ := newQuizFixture(t, 1)

		question, err := svc.NextQuestion(ctx, 1)
		require.NoError(t, err)

		result, err := svc.Answer(ctx, 1, question.ID, "Option B")
		require.NoError(t, err)
		assert.False(t, result.Correct)
		assert.Zero(t, result.Reward)
		assert.Zero(t, result.Score)

		done, err := svc.NextQuestion(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.QuizCompleted, done.ID)
	})

	t.Run("a question can only be answered once", func(t *testing.T) {
		svc, _ := newQuizFixture(t, 2)

		question, err := svc.NextQuestion(ctx, 1)
		require.NoError(t, err)

		_, err = svc.Answer(ctx, 1, question.ID, "Option A")
		require.NoError(t, err)

		_, err = svc.Answer(ctx, 1, question.ID, "Option A")
		assert.ErrorIs(t, err, ErrAlreadyAnswered)
	})

	t.Run("only the current question is accepted", func(t *testing.T) {
		svc, _ := newQuizFixture(t, 3)

		question, err := svc.NextQuestion(ctx, 1)
		require.NoError(t, err)

		other := question.ID%3 + 1

		_, err = svc.Answer(ctx, 1, other, "Option A")
		assert.ErrorIs(t, err, ErrNotCurrentQuestion)
	})
}

func TestQuizService_CreateQuestion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newQuizFixture(t, 0)

	question, err := svc.CreateQuestion(ctx, domain.DifficultyHard)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("Question #%d", question.ID), question.Question)
	assert.Equal(t, domain.DifficultyHard, question.Difficulty)
	assert.NotEmpty(t, question.CorrectOption)
}

func TestQuizService_Leaderboard(t *testing.T) {
	ctx := context.Background()
	svc, repo := newQuizFixture(t, 0)

	repo.names[1] = [2]string{"Camille", "Rochat"}
	repo.names[2] = [2]string{"Julien", "Favre"}
	repo.names[3] = [2]string{"Nadia", "Perret"}

	repo.quizzes[1] = domain.UserQuiz{UserID: 1, CurrentQuestionIndex: domain.QuizCompleted, Score: 8}
	repo.quizzes[2] = domain.UserQuiz{UserID: 2, CurrentQuestionIndex: domain.QuizCompleted, Score: 13}
	repo.quizzes[3] = domain.UserQuiz{UserID: 3, CurrentQuestionIndex: domain.QuizCompleted, Score: 8}
	// Still mid-quiz, must not appear.
	repo.quizzes[4] = domain.UserQuiz{UserID: 4, CurrentQuestionIndex: 2, Score: 20}

	entries, err := svc.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, uint(2), entries[0].UserID)
	// Ties rank by user ID.
	assert.Equal(t, uint(1), entries[1].UserID)
	assert.Equal(t, uint(3), entries[2].UserID)
}
