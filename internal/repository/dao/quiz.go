package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrQuestionNotFound = errors.New("question does not exist")
	ErrAlreadyAnswered  = errors.New("question already answered")
)

type QuizQuestion struct {
	ID int `gorm:"primaryKey"`

	Question string `gorm:"size:512;not null"`
	OptionA  string `gorm:"size:128;not null"`
	OptionB  string `gorm:"size:128;not null"`
	OptionC  string `gorm:"size:128;not null"`
	OptionD  string `gorm:"size:128;not null"`

	CorrectOption string `gorm:"size:128;not null"`
	Difficulty    string `gorm:"size:8;not null;default:'EASY'"`
}

// UserQuiz tracks one quiz attempt per user. CurrentQuestionIndex holds 0
// (not started), -1 (completed) or the id of the assigned question.
type UserQuiz struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false"`

	CurrentQuestionIndex int `gorm:"not null;default:0"`
	Score                int `gorm:"not null;default:0"`
}

type UserAnswer struct {
	ID uint `gorm:"primaryKey"`

	UserQuizID     uint `gorm:"not null;uniqueIndex:idx_user_answers_quiz_question"`
	QuizQuestionID int  `gorm:"not null;uniqueIndex:idx_user_answers_quiz_question"`

	Answer string `gorm:"size:128;not null"`

	CreatedAt time.Time `gorm:"not null"`
}

// LeaderboardRow is the join of a completed quiz with its user's name.
type LeaderboardRow struct {
	UserID    uint
	FirstName string
	LastName  string
	Score     int
}

type QuizDAO struct {
	db *gorm.DB
}

func NewQuizDAO(db *gorm.DB) *QuizDAO {
	return &QuizDAO{
		db: db,
	}
}

func (d *QuizDAO) InsertQuestion(ctx context.Context, question QuizQuestion) (QuizQuestion, error) {
	result := d.db.WithContext(ctx).Create(&question)
	if result.Error != nil {
		return QuizQuestion{}, result.Error
	}

	return question, nil
}

func (d *QuizDAO) FindQuestionByID(ctx context.Context, id int) (QuizQuestion, error) {
	var question QuizQuestion

	result := d.db.WithContext(ctx).First(&question, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return QuizQuestion{}, ErrQuestionNotFound
		}

		return QuizQuestion{}, result.Error
	}

	return question, nil
}

func (d *QuizDAO) FindAllQuestions(ctx context.Context) ([]QuizQuestion, error) {
	var questions []QuizQuestion

	result := d.db.WithContext(ctx).Order("id").Find(&questions)
	if result.Error != nil {
		return nil, result.Error
	}

	return questions, nil
}

func (d *QuizDAO) UpdateQuestion(ctx context.Context, question QuizQuestion) (QuizQuestion, error) {
	result := d.db.WithContext(ctx).Save(&question)
	if result.Error != nil {
		return QuizQuestion{}, result.Error
	}

	return question, nil
}

func (d *QuizDAO) DeleteQuestion(ctx context.Context, id int) error {
	result := d.db.WithContext(ctx).Delete(&QuizQuestion{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

func (d *QuizDAO) ListQuestionIDs(ctx context.Context) ([]int, error) {
	var ids []int

	result := d.db.WithContext(ctx).
		Model(&QuizQuestion{}).
		Order("id").
		Pluck("id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

// GetOrCreateUserQuiz returns the quiz attempt for a user, creating the
// not-started row on first access.
func (d *QuizDAO) GetOrCreateUserQuiz(ctx context.Context, userID uint) (UserQuiz, error) {
	quiz := UserQuiz{UserID: userID}

	result := d.db.WithContext(ctx).
		Where(UserQuiz{UserID: userID}).
		FirstOrCreate(&quiz)
	if result.Error != nil {
		return UserQuiz{}, result.Error
	}

	return quiz, nil
}

func (d *QuizDAO) UpdateUserQuiz(ctx context.Context, quiz UserQuiz) (UserQuiz, error) {
	result := d.db.WithContext(ctx).Save(&quiz)
	if result.Error != nil {
		return UserQuiz{}, result.Error
	}

	return quiz, nil
}

func (d *QuizDAO) ListAnsweredQuestionIDs(ctx context.Context, userQuizID uint) ([]int, error) {
	var ids []int

	result := d.db.WithContext(ctx).
		Model(&UserAnswer{}).
		Where("user_quiz_id = ?", userQuizID).
		Order("quiz_question_id").
		Pluck("quiz_question_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

// SubmitAnswer records an answer and applies the score delta in one
// transaction. A second answer for the same (quiz, question) pair hits the
// unique index and reports ErrAlreadyAnswered.
func (d *QuizDAO) SubmitAnswer(ctx context.Context, answer UserAnswer, scoreDelta int) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&answer).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrAlreadyAnswered
			}

			return err
		}

		if scoreDelta == 0 {
			return nil
		}

		return tx.Model(&UserQuiz{}).
			Where("user_id = ?", answer.UserQuizID).
			Update("score", gorm.Expr("score + ?", scoreDelta)).Error
	})
}

func (d *QuizDAO) ListCompletedQuizzes(ctx context.Context) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow

	result := d.db.WithContext(ctx).
		Table("user_quizzes").
		Select("user_quizzes.user_id, users.first_name, users.last_name, user_quizzes.score").
		Joins("JOIN users ON users.id = user_quizzes.user_id").
		Where("user_quizzes.current_question_index = ?", -1).
		Order("user_quizzes.score DESC, user_quizzes.user_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
