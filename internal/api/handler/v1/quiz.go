package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/saamb/saamb-api/internal/api/handler/v1/request"
	"github.com/saamb/saamb-api/internal/api/handler/v1/response"
	"github.com/saamb/saamb-api/internal/api/middleware"
	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/service"
)

type QuizService interface {
	CreateQuestion(ctx context.Context, difficulty domain.Difficulty) (domain.QuizQuestion, error)
	GetQuestions(ctx context.Context) ([]domain.QuizQuestion, error)
	UpdateQuestion(ctx context.Context, question domain.QuizQuestion) (domain.QuizQuestion, error)
	DeleteQuestion(ctx context.Context, id int) error
	NextQuestion(ctx context.Context, userID uint) (domain.QuizQuestion, error)
	CurrentQuestion(ctx context.Context, userID uint) (domain.QuizQuestion, error)
	Answer(ctx context.Context, userID uint, questionID int, text string) (domain.AnswerResult, error)
	GetUserQuiz(ctx context.Context, userID uint) (domain.UserQuiz, error)
	Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

type QuizHandler struct {
	svc QuizService
}

func NewQuizHandler(svc QuizService) *QuizHandler {
	return &QuizHandler{
		svc: svc,
	}
}

// HandleGetQuestions godoc
// @Summary      List all quiz questions
// @Description  The correct option is only included for super groups.
// @Tags         quiz
// @Produce      json
// @Success      200      {object}   response.QuestionsResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /questions [get]
// @Security     BearerToken
func (h *QuizHandler) HandleGetQuestions(ctx *gin.Context) {
	caller, ok := middleware.GroupFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrInvalidToken())
		return
	}

	questions, err := h.svc.GetQuestions(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetQuestions -> h.svc.GetQuestions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if !caller.SuperGroup {
		for i := range questions {
			questions[i].CorrectOption = ""
		}
	}

	ctx.JSON(http.StatusOK, response.QuestionsResponse{
		Success:   true,
		Questions: questions,
	})
}

// HandleAddQuestion godoc
// @Summary      Create a placeholder question
// @Tags         quiz
// @Produce      json
// @Param        request   body      request.AddQuestionRequest true "request body"
// @Success      200      {object}   response.QuestionResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /questions [post]
// @Security     BearerToken
func (h *QuizHandler) HandleAddQuestion(ctx *gin.Context) {
	var req request.AddQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	question, err := h.svc.CreateQuestion(ctx.Request.Context(), domain.Difficulty(req.Difficulty))
	if err != nil {
		err = fmt.Errorf("v1.HandleAddQuestion -> h.svc.CreateQuestion -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.QuestionResponse{
		Success:  true,
		Question: question,
	})
}

// HandleEditQuestion godoc
// @Summary      Update a question
// @Tags         quiz
// @Produce      json
// @Param        request   body      request.EditQuestionRequest true "request body"
// @Success      200      {object}   response.QuestionResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /questions [put]
// @Security     BearerToken
func (h *QuizHandler) HandleEditQuestion(ctx *gin.Context) {
	var req request.EditQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	question, err := h.svc.UpdateQuestion(ctx.Request.Context(), domain.QuizQuestion{
		ID:            req.QuestionID,
		Question:      req.Question,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: req.CorrectOption,
		Difficulty:    domain.Difficulty(req.Difficulty),
	})
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrQuestionNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleEditQuestion -> h.svc.UpdateQuestion -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.QuestionResponse{
		Success:  true,
		Question: question,
	})
}

// HandleDeleteQuestion godoc
// @Summary      Delete a question
// @Tags         quiz
// @Produce      json
// @Param        request   body      request.DeleteQuestionRequest true "request body"
// @Success      200      {object}   response.OK
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /questions [delete]
// @Security     BearerToken
func (h *QuizHandler) HandleDeleteQuestion(ctx *gin.Context) {
	var req request.DeleteQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteQuestion(ctx.Request.Context(), req.QuestionID); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrQuestionNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteQuestion -> h.svc.DeleteQuestion -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOK("question deleted"))
}

// HandleNextQuestion godoc
// @Summary      Fetch the next question for a user
// @Tags         quiz
// @Produce      json
// @Param        user_id   query     int true "user ID"
// @Success      200      {object}   response.QuestionResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /questions/next [get]
// @Security     BearerToken
func (h *QuizHandler) HandleNextQuestion(ctx *gin.Context) {
	h.renderQuestionFor(ctx, h.svc.NextQuestion, "v1.HandleNextQuestion")
}

// HandleCurrentQuestion godoc
// @Summary      Fetch the current question for a user
// @Tags         quiz
// @Produce      json
// @Param        user_id   query     int true "user ID"
// @Success      200      {object}   response.QuestionResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /questions/current [get]
// @Security     BearerToken
func (h *QuizHandler) HandleCurrentQuestion(ctx *gin.Context) {
	h.renderQuestionFor(ctx, h.svc.CurrentQuestion, "v1.HandleCurrentQuestion")
}

func (h *QuizHandler) renderQuestionFor(ctx *gin.Context, resolve func(context.Context, uint) (domain.QuizQuestion, error), caller string) {
	userID, err := strconv.ParseUint(ctx.Query("user_id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("user_id must be a positive integer")))
		return
	}

	question, err := resolve(ctx.Request.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))
			return
		}

		err = fmt.Errorf("%s -> %w", caller, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	// Players never see the answer.
	question.CorrectOption = ""

	ctx.JSON(http.StatusOK, response.QuestionResponse{
		Success:  true,
		Question: question,
	})
}

// HandleAnswer godoc
// @Summary      Submit an answer to the user's current question
// @Tags         quiz
// @Produce      json
// @Param        request   body      request.AnswerRequest true "request body"
// @Success      200      {object}   response.AnswerResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /answer [post]
// @Security     BearerToken
func (h *QuizHandler) HandleAnswer(ctx *gin.Context) {
	var req request.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.Answer(ctx.Request.Context(), req.UserID, req.QuestionID, req.Answer)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrQuestionNotFound))
			return
		}
		if errors.Is(err, service.ErrAlreadyAnswered) || errors.Is(err, service.ErrNotCurrentQuestion) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleAnswer -> h.svc.Answer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.AnswerResponse{
		Success:      true,
		AnswerResult: result,
	})
}

// HandleGetUserQuiz godoc
// @Summary      Fetch a user's quiz state
// @Tags         quiz
// @Produce      json
// @Param        user_id   query     int true "user ID"
// @Success      200      {object}   response.UserQuizResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /userquiz [get]
// @Security     BearerToken
func (h *QuizHandler) HandleGetUserQuiz(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Query("user_id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("user_id must be a positive integer")))
		return
	}

	quiz, err := h.svc.GetUserQuiz(ctx.Request.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetUserQuiz -> h.svc.GetUserQuiz -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.UserQuizResponse{
		Success:  true,
		UserQuiz: quiz,
	})
}

// HandleLeaderboard godoc
// @Summary      Rank users who completed the quiz
// @Tags         quiz
// @Produce      json
// @Success      200      {object}   response.LeaderboardResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /leaderboard [get]
// @Security     BearerToken
func (h *QuizHandler) HandleLeaderboard(ctx *gin.Context) {
	entries, err := h.svc.Leaderboard(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleLeaderboard -> h.svc.Leaderboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LeaderboardResponse{
		Success:     true,
		Leaderboard: entries,
	})
}
