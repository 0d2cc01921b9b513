package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository"
)

var (
	ErrQuestionNotFound   = repository.ErrQuestionNotFound
	ErrAlreadyAnswered    = repository.ErrAlreadyAnswered
	ErrNotCurrentQuestion = errors.New("question is not the user's current question")
)

type QuizRepository interface {
	CreateQuestion(ctx context.Context, question domain.QuizQuestion) (domain.QuizQuestion, error)
	FindQuestionByID(ctx context.Context, id int) (domain.QuizQuestion, error)
	FindAllQuestions(ctx context.Context) ([]domain.QuizQuestion, error)
	UpdateQuestion(ctx context.Context, question domain.QuizQuestion) (domain.QuizQuestion, error)
	DeleteQuestion(ctx context.Context, id int) error
	ListQuestionIDs(ctx context.Context) ([]int, error)
	GetOrCreateUserQuiz(ctx context.Context, userID uint) (domain.UserQuiz, error)
	UpdateUserQuiz(ctx context.Context, quiz domain.UserQuiz) (domain.UserQuiz, error)
	ListAnsweredQuestionIDs(ctx context.Context, userID uint) ([]int, error)
	SubmitAnswer(ctx context.Context, answer domain.UserAnswer, scoreDelta int) error
	ListCompletedQuizzes(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

type QuizUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// QuizService drives one quiz attempt per user through the question pool
// with no repeats, and scores it.
type QuizService struct {
	repo  QuizRepository
	users QuizUserRepository
}

func NewQuizService(repo QuizRepository, users QuizUserRepository) *QuizService {
	return &QuizService{
		repo:  repo,
		users: users,
	}
}

// CreateQuestion inserts a new question with placeholder text and options
// derived from its id; an admin edits them afterwards.
func (s *QuizService) CreateQuestion(ctx context.Context, difficulty domain.Difficulty) (domain.QuizQuestion, error) {
	created, err := s.repo.CreateQuestion(ctx, domain.QuizQuestion{
		Question:      "New question",
		OptionA:       "Option A",
		OptionB:       "Option B",
		OptionC:       "Option C",
		OptionD:       "Option D",
		CorrectOption: "Option A",
		Difficulty:    difficulty,
	})
	if err != nil {
		return domain.QuizQuestion{}, fmt.Errorf("s.repo.CreateQuestion -> %w", err)
	}

	created.Question = fmt.Sprintf("Question #%d", created.ID)
	updated, err := s.repo.UpdateQuestion(ctx, created)
	if err != nil {
		return domain.QuizQuestion{}, fmt.Errorf("s.repo.UpdateQuestion -> %w", err)
	}

	return updated, nil
}

func (s *QuizService) GetQuestions(ctx context.Context) ([]domain.QuizQuestion, error) {
	questions, err := s.repo.FindAllQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllQuestions -> %w", err)
	}

	return questions, nil
}

func (s *QuizService) UpdateQuestion(ctx context.Context, question domain.QuizQuestion) (domain.QuizQuestion, error) {
	if _, err := s.repo.FindQuestionByID(ctx, question.ID); err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return domain.QuizQuestion{}, ErrQuestionNotFound
		}

		return domain.QuizQuestion{}, fmt.Errorf("s.repo.FindQuestionByID -> %w", err)
	}

	updated, err := s.repo.UpdateQuestion(ctx, question)
	if err != nil {
		return domain.QuizQuestion{}, fmt.Errorf("s.repo.UpdateQuestion -> %w", err)
	}

	return updated, nil
}

func (s *QuizService) DeleteQuestion(ctx context.Context, id int) error {
	if err := s.repo.DeleteQuestion(ctx, id); err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return ErrQuestionNotFound
		}

		return fmt.Errorf("s.repo.DeleteQuestion -> %w", err)
	}

	return nil
}

// NextQuestion resolves the question a user should see: the currently
// assigned one while it is unanswered, a fresh uniformly random unseen one
// once it has been answered, or the completed sentinel when the pool is
// exhausted.
func (s *QuizService) NextQuestion(ctx context.Context, userID uint) (domain.QuizQuestion, error) {
	return s.resolveQuestion(ctx, userID)
}

// CurrentQuestion behaves exactly like NextQuestion; holding an unanswered
// question makes both idempotent.
func (s *QuizService) CurrentQuestion(ctx context.Context, userID uint) (domain.QuizQuestion, error) {
	return s.resolveQuestion(ctx, userID)
}

func (s *QuizService) resolveQuestion(ctx context.Context, userID uint) (domain.QuizQuestion, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.QuizQuestion{}, ErrUserNotFound
		}

		return domain.QuizQuestion{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	quiz, err := s.repo.GetOrCreateUserQuiz(ctx, userID)
	if err != nil {
		return domain.QuizQuestion{}, fmt.Errorf("s.repo.GetOrCreateUserQuiz -> %w", err)
	}

	if quiz.CurrentQuestionIndex == domain.QuizCompleted {
		return domain.CompletedQuestion(), nil
	}

	answered, err := s.repo.ListAnsweredQuestionIDs(ctx, userID)
	if err != nil {
		return domain.QuizQuestion{}, fmt.Errorf("s.repo.ListAnsweredQuestionIDs -> %w", err)
	}

	if quiz.CurrentQuestionIndex > 0 && !containsID(answered, quiz.CurrentQuestionIndex) {
		question, err := s.repo.FindQuestionByID(ctx, quiz.CurrentQuestionIndex)
		if err == nil {
			return question, nil
		}
		if !errors.Is(err, repository.ErrQuestionNotFound) {
			return domain.QuizQuestion{}, fmt.Errorf("s.repo.FindQuestionByID -> %w", err)
		}
		// The assigned question was deleted; fall through and draw a new one.
	}

	return s.drawQuestion(ctx, quiz, answered)
}

func (s *QuizService) drawQuestion(ctx context.Context, quiz domain.UserQuiz, answered []int) (domain.QuizQuestion, error) {
	ids, err := s.repo.ListQuestionIDs(ctx)
	if err != nil {
		return domain.QuizQuestion{}, fmt.Errorf("s.repo.ListQuestionIDs -> %w", err)
	}

	var candidates []int
	for _, id := range ids {
		if !containsID(answered, id) {
			candidates = append(candidates, id)
		}
	}

	if len(candidates) == 0 {
		quiz.CurrentQuestionIndex = domain.QuizCompleted
		if _, err = s.repo.UpdateUserQuiz(ctx, quiz); err != nil {
			return domain.QuizQuestion{}, fmt.Errorf("s.repo.UpdateUserQuiz -> %w", err)
		}

		return domain.CompletedQuestion(), nil
	}

	quiz.CurrentQuestionIndex = candidates[rand.Intn(len(candidates))]
	if _, err = s.repo.UpdateUserQuiz(ctx, quiz); err != nil {
		return domain.QuizQuestion{}, fmt.Errorf("s.repo.UpdateUserQuiz -> %w", err)
	}

	question, err := s.repo.FindQuestionByID(ctx, quiz.CurrentQuestionIndex)
	if err != nil {
		return domain.QuizQuestion{}, fmt.Errorf("s.repo.FindQuestionByID -> %w", err)
	}

	return question, nil
}

// Answer grades a submission exactly once per (user, question) pair. The
// submitted text is compared case-insensitively against the canonical
// correct option; a correct answer is worth 3 (EASY) or 5 (HARD) points.
func (s *QuizService) Answer(ctx context.Context, userID uint, questionID int, text string) (domain.AnswerResult, error) {
	quiz, err := s.repo.GetOrCreateUserQuiz(ctx, userID)
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("s.repo.GetOrCreateUserQuiz -> %w", err)
	}

	answered, err := s.repo.ListAnsweredQuestionIDs(ctx, userID)
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("s.repo.ListAnsweredQuestionIDs -> %w", err)
	}
	if containsID(answered, questionID) {
		return domain.AnswerResult{}, ErrAlreadyAnswered
	}

	if quiz.CurrentQuestionIndex != questionID {
		return domain.AnswerResult{}, ErrNotCurrentQuestion
	}

	question, err := s.repo.FindQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return domain.AnswerResult{}, ErrQuestionNotFound
		}

		return domain.AnswerResult{}, fmt.Errorf("s.repo.FindQuestionByID -> %w", err)
	}

	correct := strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(question.CorrectOption))
	reward := 0
	if correct {
		reward = question.Difficulty.Reward()
	}

	err = s.repo.SubmitAnswer(ctx, domain.UserAnswer{
		UserID:     userID,
		QuestionID: questionID,
		Answer:     text,
	}, reward)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyAnswered) {
			return domain.AnswerResult{}, ErrAlreadyAnswered
		}

		return domain.AnswerResult{}, fmt.Errorf("s.repo.SubmitAnswer -> %w", err)
	}

	return domain.AnswerResult{
		Correct:       correct,
		CorrectOption: question.CorrectOption,
		Reward:        reward,
		Score:         quiz.Score + reward,
	}, nil
}

func (s *QuizService) GetUserQuiz(ctx context.Context, userID uint) (domain.UserQuiz, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.UserQuiz{}, ErrUserNotFound
		}

		return domain.UserQuiz{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	quiz, err := s.repo.GetOrCreateUserQuiz(ctx, userID)
	if err != nil {
		return domain.UserQuiz{}, fmt.Errorf("s.repo.GetOrCreateUserQuiz -> %w", err)
	}

	return quiz, nil
}

// Leaderboard lists every user whose quiz is completed, best score first;
// equal scores order by user id so the ranking is deterministic.
func (s *QuizService) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	entries, err := s.repo.ListCompletedQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListCompletedQuizzes -> %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}

		return entries[i].UserID < entries[j].UserID
	})

	return entries, nil
}

func containsID(ids []int, id int) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}

	return false
}
