package repository

import (
	"context"
	"fmt"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository/dao"
)

var (
	ErrQuestionNotFound = dao.ErrQuestionNotFound
	ErrAlreadyAnswered  = dao.ErrAlreadyAnswered
)

type QuizDAO interface {
	InsertQuestion(ctx context.Context, question dao.QuizQuestion) (dao.QuizQuestion, error)
	FindQuestionByID(ctx context.Context, id int) (dao.QuizQuestion, error)
	FindAllQuestions(ctx context.Context) ([]dao.QuizQuestion, error)
	UpdateQuestion(ctx context.Context, question dao.QuizQuestion) (dao.QuizQuestion, error)
	DeleteQuestion(ctx context.Context, id int) error
	ListQuestionIDs(ctx context.Context) ([]int, error)
	GetOrCreateUserQuiz(ctx context.Context, userID uint) (dao.UserQuiz, error)
	UpdateUserQuiz(ctx context.Context, quiz dao.UserQuiz) (dao.UserQuiz, error)
	ListAnsweredQuestionIDs(ctx context.Context, userQuizID uint) ([]int, error)
	SubmitAnswer(ctx context.Context, answer dao.UserAnswer, scoreDelta int) error
	ListCompletedQuizzes(ctx context.Context) ([]dao.LeaderboardRow, error)
}

type QuizRepository struct {
	dao QuizDAO
}

func NewQuizRepository(dao QuizDAO) *QuizRepository {
	return &QuizRepository{
		dao: dao,
	}
}

func (r *QuizRepository) CreateQuestion(ctx context.Context, question domain.QuizQuestion) (domain.QuizQuestion, error) {
	created, err := r.dao.InsertQuestion(ctx, r.questionDomainToDao(question))
	if err != nil {
		return domain.QuizQuestion{}, fmt.Errorf("r.dao.InsertQuestion -> %w", err)
	}

	return r.questionDaoToDomain(created), nil
}

func (r *QuizRepository) FindQuestionByID(ctx context.Context, id int) (domain.QuizQuestion, error) {
	found, err := r.dao.FindQuestionByID(ctx, id)
	if err != nil {
		return domain.QuizQuestion{}, fmt.Errorf("r.dao.FindQuestionByID -> %w", err)
	}

	return r.questionDaoToDomain(found), nil
}

func (r *QuizRepository) FindAllQuestions(ctx context.Context) ([]domain.QuizQuestion, error) {
	found, err := r.dao.FindAllQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllQuestions -> %w", err)
	}

	questions := make([]domain.QuizQuestion, len(found))
	for i, q := range found {
		questions[i] = r.questionDaoToDomain(q)
	}

	return questions, nil
}

func (r *QuizRepository) UpdateQuestion(ctx context.Context, question domain.QuizQuestion) (domain.QuizQuestion, error) {
	updated, err := r.dao.UpdateQuestion(ctx, r.questionDomainToDao(question))
	if err != nil {
		return domain.QuizQuestion{}, fmt.Errorf("r.dao.UpdateQuestion -> %w", err)
	}

	return r.questionDaoToDomain(updated), nil
}

func (r *QuizRepository) DeleteQuestion(ctx context.Context, id int) error {
	if err := r.dao.DeleteQuestion(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteQuestion -> %w", err)
	}

	return nil
}

func (r *QuizRepository) ListQuestionIDs(ctx context.Context) ([]int, error) {
	ids, err := r.dao.ListQuestionIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListQuestionIDs -> %w", err)
	}

	return ids, nil
}

func (r *QuizRepository) GetOrCreateUserQuiz(ctx context.Context, userID uint) (domain.UserQuiz, error) {
	quiz, err := r.dao.GetOrCreateUserQuiz(ctx, userID)
	if err != nil {
		return domain.UserQuiz{}, fmt.Errorf("r.dao.GetOrCreateUserQuiz -> %w", err)
	}

	return r.quizDaoToDomain(quiz), nil
}

func (r *QuizRepository) UpdateUserQuiz(ctx context.Context, quiz domain.UserQuiz) (domain.UserQuiz, error) {
	updated, err := r.dao.UpdateUserQuiz(ctx, dao.UserQuiz{
		UserID:               quiz.UserID,
		CurrentQuestionIndex: quiz.CurrentQuestionIndex,
		Score:                quiz.Score,
	})
	if err != nil {
		return domain.UserQuiz{}, fmt.Errorf("r.dao.UpdateUserQuiz -> %w", err)
	}

	return r.quizDaoToDomain(updated), nil
}

func (r *QuizRepository) ListAnsweredQuestionIDs(ctx context.Context, userID uint) ([]int, error) {
	ids, err := r.dao.ListAnsweredQuestionIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAnsweredQuestionIDs -> %w", err)
	}

	return ids, nil
}

func (r *QuizRepository) SubmitAnswer(ctx context.Context, answer domain.UserAnswer, scoreDelta int) error {
	err := r.dao.SubmitAnswer(ctx, dao.UserAnswer{
		UserQuizID:     answer.UserID,
		QuizQuestionID: answer.QuestionID,
		Answer:         answer.Answer,
	}, scoreDelta)
	if err != nil {
		return fmt.Errorf("r.dao.SubmitAnswer -> %w", err)
	}

	return nil
}

func (r *QuizRepository) ListCompletedQuizzes(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	rows, err := r.dao.ListCompletedQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListCompletedQuizzes -> %w", err)
	}

	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.LeaderboardEntry{
			UserID:    row.UserID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Score:     row.Score,
		}
	}

	return entries, nil
}

func (r *QuizRepository) quizDaoToDomain(q dao.UserQuiz) domain.UserQuiz {
	return domain.UserQuiz{
		UserID:               q.UserID,
		CurrentQuestionIndex: q.CurrentQuestionIndex,
		Score:                q.Score,
	}
}

func (r *QuizRepository) questionDaoToDomain(q dao.QuizQuestion) domain.QuizQuestion {
	return domain.QuizQuestion{
		ID:            q.ID,
		Question:      q.Question,
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		CorrectOption: q.CorrectOption,
		Difficulty:    domain.Difficulty(q.Difficulty),
	}
}

func (r *QuizRepository) questionDomainToDao(q domain.QuizQuestion) dao.QuizQuestion {
	return dao.QuizQuestion{
		ID:            q.ID,
		Question:      q.Question,
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		CorrectOption: q.CorrectOption,
		Difficulty:    string(q.Difficulty),
	}
}
