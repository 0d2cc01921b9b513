package response

import "github.com/saamb/saamb-api/internal/domain"

// OK is the minimal success envelope for mutations with no payload.
type OK struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

func NewOK(msg string) OK {
	return OK{
		Success: true,
		Msg:     msg,
	}
}

type LoginResponse struct {
	Success bool          `json:"success"`
	Token   string        `json:"token"`
	Group   domain.Group  `json:"group"`
	Users   []domain.User `json:"users"`
}

type GroupSummary struct {
	ID   uint   `json:"_id"`
	Name string `json:"name"`
}

type GroupsResponse struct {
	Success bool           `json:"success"`
	Groups  []GroupSummary `json:"groups"`
}

type GroupResponse struct {
	Success bool         `json:"success"`
	Group   domain.Group `json:"group"`
}

type UsersResponse struct {
	Success bool          `json:"success"`
	Users   []domain.User `json:"users"`
}

type UserResponse struct {
	Success bool        `json:"success"`
	User    domain.User `json:"user"`
}

type WishlistResponse struct {
	Success bool                `json:"success"`
	Wishes  []domain.WishStatus `json:"wishes"`
}

type WishResponse struct {
	Success bool        `json:"success"`
	Wish    domain.Wish `json:"wish"`
}

type PaymentInfoResponse struct {
	Success     bool               `json:"success"`
	PaymentInfo domain.PaymentInfo `json:"payment_info"`
}

type QuestionsResponse struct {
	Success   bool                  `json:"success"`
	Questions []domain.QuizQuestion `json:"questions"`
}

type QuestionResponse struct {
	Success  bool                `json:"success"`
	Question domain.QuizQuestion `json:"question"`
}

type AnswerResponse struct {
	Success bool `json:"success"`
	domain.AnswerResult
}

type UserQuizResponse struct {
	Success  bool            `json:"success"`
	UserQuiz domain.UserQuiz `json:"userquiz"`
}

type LeaderboardResponse struct {
	Success     bool                      `json:"success"`
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
}
