//go:build integration

package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("dockertest.NewPool -> %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=saamb_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("pool.RunWithOptions -> %v", err)
	}

	pool.MaxWait = 2 * time.Minute
	if err = pool.Retry(func() error {
		dsn := fmt.Sprintf("host=localhost port=%s user=test password=test dbname=saamb_test sslmode=disable",
			resource.GetPort("5432/tcp"))
		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, err := testDB.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("InitTables -> %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("pool.Purge -> %v", err)
	}

	os.Exit(code)
}

func createTestGroup(t *testing.T, name string) Group {
	t.Helper()

	group, err := NewGroupDAO(testDB).Insert(context.Background(), Group{
		Name:     name,
		Password: "irrelevant-hash",
	})
	require.NoError(t, err)

	return group
}

func createTestWish(t *testing.T, title string, quantity int) Wish {
	t.Helper()

	wish, err := NewWishDAO(testDB).Insert(context.Background(), Wish{
		Title:    title,
		Quantity: quantity,
		Price:    10,
	})
	require.NoError(t, err)

	return wish
}

func TestGroupDAO_Insert_DuplicateName(t *testing.T) {
	ctx := context.Background()
	dao := NewGroupDAO(testDB)

	createTestGroup(t, "dup_check")

	_, err := dao.Insert(ctx, Group{Name: "dup_check", Password: "x"})
	assert.ErrorIs(t, err, ErrGroupNameExists)
}

func TestCartDAO_Reserve(t *testing.T) {
	ctx := context.Background()
	dao := NewCartDAO(testDB)

	groupA := createTestGroup(t, "reserve_a")
	groupB := createTestGroup(t, "reserve_b")
	wish := createTestWish(t, "Espresso machine", 3)

	require.NoError(t, dao.Reserve(ctx, groupA.ID, wish.ID, 2))

	// The second group only fits into what is left.
	assert.ErrorIs(t, dao.Reserve(ctx, groupB.ID, wish.ID, 2), ErrCapacityExceeded)
	require.NoError(t, dao.Reserve(ctx, groupB.ID, wish.ID, 1))

	// Re-reserving replaces the held quantity and may use the full total.
	require.NoError(t, dao.Reserve(ctx, groupA.ID, wish.ID, 3))

	reservation, err := dao.FindReservation(ctx, groupA.ID, wish.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, reservation.Quantity)

	assert.ErrorIs(t, dao.Reserve(ctx, groupA.ID, wish.ID, 4), ErrCapacityExceeded)

	require.NoError(t, dao.DeleteReservation(ctx, groupA.ID, wish.ID))
	assert.ErrorIs(t, dao.DeleteReservation(ctx, groupA.ID, wish.ID), ErrNoSuchReservation)
}

func TestCartDAO_ClearCart(t *testing.T) {
	ctx := context.Background()
	dao := NewCartDAO(testDB)

	group := createTestGroup(t, "clear_cart")
	wish := createTestWish(t, "Picnic blanket", 3)

	require.NoError(t, dao.Reserve(ctx, group.ID, wish.ID, 2))
	require.NoError(t, dao.SetPaid(ctx, group.ID, true))

	require.NoError(t, dao.ClearCart(ctx, group.ID))

	_, err := dao.FindReservation(ctx, group.ID, wish.ID)
	assert.ErrorIs(t, err, ErrNoSuchReservation)

	fresh, err := NewGroupDAO(testDB).FindByID(ctx, group.ID)
	require.NoError(t, err)
	assert.False(t, fresh.Paid)
}

func TestQuizDAO_SubmitAnswer_ExactlyOnce(t *testing.T) {
	ctx := context.Background()
	dao := NewQuizDAO(testDB)

	group := createTestGroup(t, "quiz_group")
	user, err := NewUserDAO(testDB).Insert(ctx, User{
		FirstName: "Quiz",
		LastName:  "Tester",
		GroupID:   group.ID,
	})
	require.NoError(t, err)

	question, err := dao.InsertQuestion(ctx, QuizQuestion{
		Question:      "Question #1",
		OptionA:       "Option A",
		OptionB:       "Option B",
		OptionC:       "Option C",
		OptionD:       "Option D",
		CorrectOption: "Option A",
		Difficulty:    "EASY",
	})
	require.NoError(t, err)

	quiz, err := dao.GetOrCreateUserQuiz(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, quiz.Score)

	answer := UserAnswer{
		UserQuizID:     user.ID,
		QuizQuestionID: question.ID,
		Answer:         "Option A",
	}
	require.NoError(t, dao.SubmitAnswer(ctx, answer, 3))
	assert.ErrorIs(t, dao.SubmitAnswer(ctx, answer, 3), ErrAlreadyAnswered)

	quiz, err = dao.GetOrCreateUserQuiz(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, quiz.Score)

	answered, err := dao.ListAnsweredQuestionIDs(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{question.ID}, answered)
}
