package domain

type Difficulty string

const (
	DifficultyEasy Difficulty = "EASY"
	DifficultyHard Difficulty = "HARD"
)

// Reward returns the score awarded for a correct answer.
func (d Difficulty) Reward() int {
	if d == DifficultyHard {
		return 5
	}

	return 3
}

type QuizQuestion struct {
	ID            int        `json:"_id"`
	Question      string     `json:"question"`
	OptionA       string     `json:"option_a"`
	OptionB       string     `json:"option_b"`
	OptionC       string     `json:"option_c"`
	OptionD       string     `json:"option_d"`
	CorrectOption string     `json:"correct_option,omitempty"`
	Difficulty    Difficulty `json:"difficulty"`
}

// Values of UserQuiz.CurrentQuestionIndex that are not question ids.
const (
	QuizNotStarted = 0
	QuizCompleted  = -1
)

// CompletedQuestion is the sentinel returned once a quiz has no questions
// left; its id is never a valid question id.
func CompletedQuestion() QuizQuestion {
	return QuizQuestion{ID: QuizCompleted}
}

// UserQuiz is one user's quiz attempt. CurrentQuestionIndex is 0 before the
// first question is drawn, -1 once every question has been answered, and the
// id of the currently assigned question otherwise.
type UserQuiz struct {
	UserID               uint `json:"user_id"`
	CurrentQuestionIndex int  `json:"current_question_index"`
	Score                int  `json:"score"`
}

type UserAnswer struct {
	UserID     uint   `json:"user_id"`
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

// AnswerResult reports how a submitted answer was graded.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectOption string `json:"correct_answer"`
	Reward        int    `json:"reward"`
	Score         int    `json:"score"`
}

type LeaderboardEntry struct {
	UserID    uint   `json:"user_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Score     int    `json:"score"`
}
