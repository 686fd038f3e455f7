package service

import (
	"context"
	"errors"
	"time"

	"go_learn_sphere/internal/middleware"
	"go_learn_sphere/internal/model"
	"go_learn_sphere/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CurrentBadge resolves the displayed tier for a point total: the highest
// tier whose threshold is not above the total. Below every threshold the
// lowest tier is still displayed as a floor.
func CurrentBadge(points int) model.BadgeLevel {
	for i := len(model.BadgeLadder) - 1; i >= 0; i-- {
		if points >= model.BadgeLadder[i].Points {
			return model.BadgeLadder[i].Level
		}
	}
	return model.BadgeNewbie
}

// EarnedBadge is like CurrentBadge but without the display floor: ok is false
// while the total is below the lowest threshold. Badge history rows are
// appended only for earned tiers.
func EarnedBadge(points int) (model.BadgeLevel, bool) {
	for i := len(model.BadgeLadder) - 1; i >= 0; i-- {
		if points >= model.BadgeLadder[i].Points {
			return model.BadgeLadder[i].Level, true
		}
	}
	return "", false
}

// NextBadge returns the tier immediately above the current one and the points
// still needed to reach it. ok is false at the top tier.
func NextBadge(points int) (model.BadgeLevel, int, bool) {
	current := CurrentBadge(points)
	for i, t := range model.BadgeLadder {
		if t.Level != current {
			continue
		}
		if i+1 >= len(model.BadgeLadder) {
			return "", 0, false
		}
		next := model.BadgeLadder[i+1]
		return next.Level, next.Points - points, true
	}
	return "", 0, false
}

// ProgressToNext reports how far the total has moved through the current
// tier's band, as a percentage clamped to [0,100].
func ProgressToNext(points int) float64 {
	current := CurrentBadge(points)
	for i, t := range model.BadgeLadder {
		if t.Level != current {
			continue
		}
		if i+1 >= len(model.BadgeLadder) {
			return 100
		}
		next := model.BadgeLadder[i+1]
		pct := float64(points-t.Points) / float64(next.Points-t.Points) * 100
		if pct < 0 {
			return 0
		}
		if pct > 100 {
			return 100
		}
		return pct
	}
	return 0
}

func badgeRank(level model.BadgeLevel) int {
	for i, t := range model.BadgeLadder {
		if t.Level == level {
			return i
		}
	}
	return -1
}

func badgeThreshold(level model.BadgeLevel) int {
	for _, t := range model.BadgeLadder {
		if t.Level == level {
			return t.Points
		}
	}
	return 0
}

// PointsForAttempt picks the reward bucket for an attempt ordinal. The fourth
// bucket covers every attempt beyond the third.
func PointsForAttempt(rewards model.QuizRewards, attemptNumber int) int {
	switch {
	case attemptNumber <= 1:
		return rewards.FirstAttempt
	case attemptNumber == 2:
		return rewards.SecondAttempt
	case attemptNumber == 3:
		return rewards.ThirdAttempt
	default:
		return rewards.FourthPlusAttempt
	}
}

// ScoreQuiz counts answers whose selected option is the question's correct
// option. No partial credit; unanswered questions score zero.
func ScoreQuiz(quiz *model.Quiz, answers map[string]string) int {
	score := 0
	for _, q := range quiz.Questions {
		selected, ok := answers[q.QuestionID.String()]
		if !ok {
			continue
		}
		for _, o := range q.Options {
			if o.IsCorrect && o.OptionID.String() == selected {
				score++
				break
			}
		}
	}
	return score
}

type GamificationService interface {
	Profile(ctx context.Context, user *model.User) *model.GamificationResponse
	SubmitQuiz(ctx context.Context, userID, quizID uuid.UUID, answers map[string]string) (*model.QuizResultResponse, error)
}

type gamificationService struct {
	db       *gorm.DB
	quizRepo repository.QuizRepository
	userRepo repository.UserRepository
}

func NewGamificationService(db *gorm.DB, quizRepo repository.QuizRepository, userRepo repository.UserRepository) GamificationService {
	return &gamificationService{
		db:       db,
		quizRepo: quizRepo,
		userRepo: userRepo,
	}
}

// Profile derives the user's standing in the badge ladder.
func (s *gamificationService) Profile(ctx context.Context, user *model.User) *model.GamificationResponse {
	resp := &model.GamificationResponse{
		Points:         user.Points,
		CurrentBadge:   CurrentBadge(user.Points),
		ProgressToNext: ProgressToNext(user.Points),
		Badges:         user.Badges,
	}
	if resp.Badges == nil {
		resp.Badges = []model.Badge{}
	}
	if next, remaining, ok := NextBadge(user.Points); ok {
		resp.NextBadge = next
		resp.PointsToNext = remaining
	}
	return resp
}

// SubmitQuiz scores a submission, records the attempt, adds the attempt
// reward to the user's point total and appends a badge history row when a new
// tier is earned.
func (s *gamificationService) SubmitQuiz(ctx context.Context, userID, quizID uuid.UUID, answers map[string]string) (*model.QuizResultResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "quiz_id", quizID)

	var result *model.QuizResultResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quiz, err := s.quizRepo.FindByID(ctx, tx, quizID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("QUIZ_NOT_FOUND", "The quiz does not exist.", "quiz_id", model.ErrNotFound)
			}
			logger.Error("Failed to load quiz", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the quiz.", "", model.ErrInternalServer)
		}

		user, err := s.userRepo.FindByID(ctx, tx, userID)
		if err != nil {
			logger.Error("Failed to load user", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the user.", "", model.ErrInternalServer)
		}

		priorAttempts, err := s.quizRepo.CountAttempts(ctx, tx, quizID, userID)
		if err != nil {
			logger.Error("Failed to count prior attempts", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to resolve the attempt number.", "", model.ErrInternalServer)
		}
		attemptNumber := int(priorAttempts) + 1

		score := ScoreQuiz(quiz, answers)
		points := PointsForAttempt(quiz.Rewards, attemptNumber)
		now := time.Now()

		attempt := &model.QuizAttempt{
			AttemptID:     uuid.New(),
			QuizID:        quizID,
			UserID:        userID,
			AttemptNumber: attemptNumber,
			Answers:       answers,
			Score:         score,
			PointsEarned:  points,
			CompletedAt:   now,
		}
		if err := s.quizRepo.CreateAttempt(ctx, tx, attempt); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to record the attempt.", "", model.ErrInternalServer)
		}

		newTotal := user.Points + points
		if err := s.userRepo.Update(ctx, tx, userID, map[string]interface{}{"points": newTotal}); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to award points.", "", model.ErrInternalServer)
		}

		result = &model.QuizResultResponse{
			AttemptID:      attempt.AttemptID,
			Score:          score,
			TotalQuestions: len(quiz.Questions),
			AttemptNumber:  attemptNumber,
			PointsEarned:   points,
			TotalPoints:    newTotal,
			CurrentBadge:   CurrentBadge(newTotal),
		}

		// A badge row marks an earned tier, never the display floor.
		before, hadBefore := EarnedBadge(user.Points)
		after, hasAfter := EarnedBadge(newTotal)
		if hasAfter && (!hadBefore || badgeRank(after) > badgeRank(before)) {
			badge := &model.Badge{
				BadgeID:  uuid.New(),
				UserID:   userID,
				Name:     after,
				Points:   badgeThreshold(after),
				EarnedAt: now,
			}
			if err := s.userRepo.CreateBadge(ctx, tx, badge); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to record the earned badge.", "", model.ErrInternalServer)
			}
			result.BadgeEarned = badge
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Quiz submitted",
		"score", result.Score,
		"attempt_number", result.AttemptNumber,
		"points_earned", result.PointsEarned,
	)
	return result, nil
}
