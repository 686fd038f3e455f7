package service

import (
	"context"
	"errors"
	"testing"

	"go_learn_sphere/internal/model"
	"go_learn_sphere/internal/repository"
	"go_learn_sphere/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCurrentBadge(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   model.BadgeLevel
	}{
		{"zero points shows the floor tier", 0, model.BadgeNewbie},
		{"just below the first threshold", 19, model.BadgeNewbie},
		{"exactly at the first threshold", 20, model.BadgeNewbie},
		{"just below explorer", 39, model.BadgeNewbie},
		{"exactly at explorer", 40, model.BadgeExplorer},
		{"between explorer and achiever", 45, model.BadgeExplorer},
		{"just below achiever", 59, model.BadgeExplorer},
		{"exactly at achiever", 60, model.BadgeAchiever},
		{"exactly at the top tier", 120, model.BadgeMaster},
		{"beyond the top tier", 150, model.BadgeMaster},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentBadge(tt.points))
		})
	}
}

func TestCurrentBadge_MonotonicOverLadder(t *testing.T) {
	prevRank := -1
	for points := 0; points <= 200; points++ {
		rank := badgeRank(CurrentBadge(points))
		assert.GreaterOrEqual(t, rank, prevRank, "badge rank regressed at %d points", points)
		prevRank = rank
	}
}

func TestEarnedBadge(t *testing.T) {
	_, ok := EarnedBadge(19)
	assert.False(t, ok, "below the first threshold nothing is earned")

	level, ok := EarnedBadge(20)
	require.True(t, ok)
	assert.Equal(t, model.BadgeNewbie, level)

	level, ok = EarnedBadge(121)
	require.True(t, ok)
	assert.Equal(t, model.BadgeMaster, level)
}

func TestNextBadge(t *testing.T) {
	next, remaining, ok := NextBadge(0)
	require.True(t, ok)
	assert.Equal(t, model.BadgeExplorer, next)
	assert.Equal(t, 40, remaining)

	next, remaining, ok = NextBadge(45)
	require.True(t, ok)
	assert.Equal(t, model.BadgeAchiever, next)
	assert.Equal(t, 15, remaining)

	_, _, ok = NextBadge(120)
	assert.False(t, ok, "the top tier has no successor")
}

func TestProgressToNext(t *testing.T) {
	assert.InDelta(t, 0, ProgressToNext(40), 0.001)
	assert.InDelta(t, 25, ProgressToNext(45), 0.001)
	assert.InDelta(t, 100, ProgressToNext(120), 0.001)
	assert.InDelta(t, 100, ProgressToNext(500), 0.001)
	assert.GreaterOrEqual(t, ProgressToNext(0), 0.0)
	assert.LessOrEqual(t, ProgressToNext(0), 100.0)
}

func TestPointsForAttempt(t *testing.T) {
	rewards := model.QuizRewards{
		FirstAttempt:      50,
		SecondAttempt:     30,
		ThirdAttempt:      20,
		FourthPlusAttempt: 10,
	}

	assert.Equal(t, 50, PointsForAttempt(rewards, 1))
	assert.Equal(t, 30, PointsForAttempt(rewards, 2))
	assert.Equal(t, 20, PointsForAttempt(rewards, 3))
	assert.Equal(t, 10, PointsForAttempt(rewards, 4))
	assert.Equal(t, 10, PointsForAttempt(rewards, 9))

	prev := PointsForAttempt(rewards, 1)
	for n := 2; n <= 6; n++ {
		cur := PointsForAttempt(rewards, n)
		assert.LessOrEqual(t, cur, prev, "reward increased at attempt %d", n)
		prev = cur
	}
}

func buildQuiz(questions int) *model.Quiz {
	quiz := &model.Quiz{
		QuizID:   uuid.New(),
		CourseID: uuid.New(),
		Title:    "Checkpoint",
		Rewards: model.QuizRewards{
			FirstAttempt:      50,
			SecondAttempt:     30,
			ThirdAttempt:      20,
			FourthPlusAttempt: 10,
		},
	}
	for i := 0; i < questions; i++ {
		q := model.QuizQuestion{
			QuestionID: uuid.New(),
			QuizID:     quiz.QuizID,
			Text:       "Question",
			Order:      i + 1,
			Options: []model.QuizOption{
				{OptionID: uuid.New(), Text: "right", IsCorrect: true},
				{OptionID: uuid.New(), Text: "wrong"},
			},
		}
		q.Options[0].QuestionID = q.QuestionID
		q.Options[1].QuestionID = q.QuestionID
		quiz.Questions = append(quiz.Questions, q)
	}
	return quiz
}

func correctAnswers(quiz *model.Quiz, count int) map[string]string {
	answers := map[string]string{}
	for i, q := range quiz.Questions {
		if i >= count {
			break
		}
		for _, o := range q.Options {
			if o.IsCorrect {
				answers[q.QuestionID.String()] = o.OptionID.String()
			}
		}
	}
	return answers
}

func TestScoreQuiz(t *testing.T) {
	quiz := buildQuiz(5)

	t.Run("three of five correct", func(t *testing.T) {
		answers := correctAnswers(quiz, 3)
		// Answer the remaining two with a wrong option.
		for _, q := range quiz.Questions[3:] {
			for _, o := range q.Options {
				if !o.IsCorrect {
					answers[q.QuestionID.String()] = o.OptionID.String()
				}
			}
		}
		assert.Equal(t, 3, ScoreQuiz(quiz, answers))
	})

	t.Run("unanswered questions score zero", func(t *testing.T) {
		assert.Equal(t, 2, ScoreQuiz(quiz, correctAnswers(quiz, 2)))
	})

	t.Run("scoring is idempotent", func(t *testing.T) {
		answers := correctAnswers(quiz, 4)
		first := ScoreQuiz(quiz, answers)
		assert.Equal(t, first, ScoreQuiz(quiz, answers))
	})

	t.Run("unknown option ids score zero", func(t *testing.T) {
		answers := map[string]string{
			quiz.Questions[0].QuestionID.String(): uuid.New().String(),
		}
		assert.Equal(t, 0, ScoreQuiz(quiz, answers))
	})
}

func TestSubmitQuiz(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, userPoints int) (GamificationService, *model.Quiz, *model.User, *gorm.DB) {
		db := newTestDB(t)
		quiz := buildQuiz(2)
		require.NoError(t, db.Create(quiz).Error)

		user := &model.User{
			UserID: uuid.New(),
			Email:  "learner@example.com",
			Name:   "Learner",
			Role:   model.RoleLearner,
			Points: userPoints,
		}
		require.NoError(t, db.Create(user).Error)

		svc := NewGamificationService(db, repository.NewGormQuizRepository(), repository.NewGormUserRepository())
		return svc, quiz, user, db
	}

	t.Run("first attempt awards the first bucket", func(t *testing.T) {
		svc, quiz, user, _ := setup(t, 0)

		result, err := svc.SubmitQuiz(ctx, user.UserID, quiz.QuizID, correctAnswers(quiz, 2))
		require.NoError(t, err)

		assert.Equal(t, 1, result.AttemptNumber)
		assert.Equal(t, 2, result.Score)
		assert.Equal(t, 2, result.TotalQuestions)
		assert.Equal(t, 50, result.PointsEarned)
		assert.Equal(t, 50, result.TotalPoints)
	})

	t.Run("attempt ordinals advance the reward schedule", func(t *testing.T) {
		svc, quiz, user, _ := setup(t, 0)

		expected := []int{50, 30, 20, 10, 10}
		for i, want := range expected {
			result, err := svc.SubmitQuiz(ctx, user.UserID, quiz.QuizID, correctAnswers(quiz, 1))
			require.NoError(t, err)
			assert.Equal(t, i+1, result.AttemptNumber)
			assert.Equal(t, want, result.PointsEarned, "attempt %d", i+1)
		}
	})

	t.Run("crossing a threshold records the earned badge", func(t *testing.T) {
		svc, quiz, user, db := setup(t, 15)

		result, err := svc.SubmitQuiz(ctx, user.UserID, quiz.QuizID, correctAnswers(quiz, 2))
		require.NoError(t, err)

		require.NotNil(t, result.BadgeEarned)
		assert.Equal(t, model.BadgeExplorer, result.BadgeEarned.Name)
		assert.Equal(t, 65, result.TotalPoints)

		var badges []model.Badge
		require.NoError(t, db.Where("user_id = ?", user.UserID).Find(&badges).Error)
		assert.Len(t, badges, 1)
	})

	t.Run("staying inside a tier earns no badge", func(t *testing.T) {
		svc, quiz, user, _ := setup(t, 60)

		result, err := svc.SubmitQuiz(ctx, user.UserID, quiz.QuizID, correctAnswers(quiz, 1))
		require.NoError(t, err)

		// 60 + 50 = 110, still inside the expert band above 100.
		assert.Equal(t, 110, result.TotalPoints)
		require.NotNil(t, result.BadgeEarned)
		assert.Equal(t, model.BadgeExpert, result.BadgeEarned.Name)

		again, err := svc.SubmitQuiz(ctx, user.UserID, quiz.QuizID, correctAnswers(quiz, 1))
		require.NoError(t, err)
		// 110 + 30 = 140, beyond master already reached at 120.
		assert.Equal(t, 140, again.TotalPoints)
		require.NotNil(t, again.BadgeEarned)
		assert.Equal(t, model.BadgeMaster, again.BadgeEarned.Name)

		third, err := svc.SubmitQuiz(ctx, user.UserID, quiz.QuizID, correctAnswers(quiz, 1))
		require.NoError(t, err)
		assert.Nil(t, third.BadgeEarned, "no tier above master")
	})

	t.Run("unknown quiz is not found", func(t *testing.T) {
		svc, _, user, _ := setup(t, 0)

		_, err := svc.SubmitQuiz(ctx, user.UserID, uuid.New(), map[string]string{"q": "a"})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestSubmitQuiz_RepositoryFailures(t *testing.T) {
	ctx := context.Background()
	quiz := buildQuiz(1)
	user := &model.User{UserID: uuid.New(), Email: "x@example.com", Name: "X", Points: 0}

	t.Run("a failed attempt write aborts the submission", func(t *testing.T) {
		db := newTestDB(t)
		quizRepo := mocks.NewQuizRepository(t)
		userRepo := mocks.NewUserRepository(t)

		quizRepo.On("FindByID", mock.Anything, mock.Anything, quiz.QuizID).Return(quiz, nil)
		userRepo.On("FindByID", mock.Anything, mock.Anything, user.UserID).Return(user, nil)
		quizRepo.On("CountAttempts", mock.Anything, mock.Anything, quiz.QuizID, user.UserID).Return(int64(0), nil)
		quizRepo.On("CreateAttempt", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

		svc := NewGamificationService(db, quizRepo, userRepo)
		_, err := svc.SubmitQuiz(ctx, user.UserID, quiz.QuizID, correctAnswers(quiz, 1))
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInternalServer)
	})

	t.Run("a failed point award aborts the submission", func(t *testing.T) {
		db := newTestDB(t)
		quizRepo := mocks.NewQuizRepository(t)
		userRepo := mocks.NewUserRepository(t)

		quizRepo.On("FindByID", mock.Anything, mock.Anything, quiz.QuizID).Return(quiz, nil)
		userRepo.On("FindByID", mock.Anything, mock.Anything, user.UserID).Return(user, nil)
		quizRepo.On("CountAttempts", mock.Anything, mock.Anything, quiz.QuizID, user.UserID).Return(int64(0), nil)
		quizRepo.On("CreateAttempt", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		userRepo.On("Update", mock.Anything, mock.Anything, user.UserID, mock.Anything).Return(errors.New("write failed"))

		svc := NewGamificationService(db, quizRepo, userRepo)
		_, err := svc.SubmitQuiz(ctx, user.UserID, quiz.QuizID, correctAnswers(quiz, 1))
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInternalServer)
	})
}
