package service

import (
	"context"
	"errors"
	"strings"

	"go_learn_sphere/internal/middleware"
	"go_learn_sphere/internal/model"
	"go_learn_sphere/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseService interface {
	CreateCourse(ctx context.Context, adminID uuid.UUID, req *model.CreateCourseRequest) (*model.Course, error)
	GetCourse(ctx context.Context, courseID uuid.UUID) (*model.Course, error)
	ListCourses(ctx context.Context, status model.CourseStatus) ([]*model.Course, error)
	SearchCourses(ctx context.Context, query string) ([]*model.Course, error)
	UpdateCourse(ctx context.Context, courseID uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error)
	DeleteCourse(ctx context.Context, courseID uuid.UUID) error
	TogglePublish(ctx context.Context, courseID uuid.UUID) (*model.Course, error)
}

type courseService struct {
	db         *gorm.DB
	courseRepo repository.CourseRepository
}

func NewCourseService(db *gorm.DB, courseRepo repository.CourseRepository) CourseService {
	return &courseService{
		db:         db,
		courseRepo: courseRepo,
	}
}

// CreateCourse creates a draft course owned by the given staff user. Counters
// start at zero and the catalog does not show it until it is published.
func (s *courseService) CreateCourse(ctx context.Context, adminID uuid.UUID, req *model.CreateCourseRequest) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "The course title must not be empty.", "title", model.ErrInvalidInput)
	}

	course := &model.Course{
		CourseID:   uuid.New(),
		Title:      title,
		Tags:       []string{},
		Status:     model.CourseDraft,
		Visibility: model.VisibilityEveryone,
		AccessRule: model.AccessOpen,
		AdminID:    adminID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.courseRepo.Create(ctx, tx, course)
	})
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the course.", "", model.ErrInternalServer)
	}

	logger.Info("Course created", "course_id", course.CourseID.String(), "title", course.Title)
	return course, nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID uuid.UUID) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("COURSE_NOT_FOUND", "The course does not exist.", "course_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the course.", "", model.ErrInternalServer)
	}
	return course, nil
}

// ListCourses returns catalog entries in the given state, newest first.
func (s *courseService) ListCourses(ctx context.Context, status model.CourseStatus) ([]*model.Course, error) {
	courses, err := s.courseRepo.FindByStatus(ctx, s.db, status)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to list courses.", "", model.ErrInternalServer)
	}
	if courses == nil {
		courses = []*model.Course{}
	}
	return courses, nil
}

// SearchCourses matches published courses whose title contains the query or
// whose tag list contains it as a whole tag. Matching is case-insensitive.
func (s *courseService) SearchCourses(ctx context.Context, query string) ([]*model.Course, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListCourses(ctx, model.CoursePublished)
	}

	candidates, err := s.courseRepo.Search(ctx, s.db, query)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to search courses.", "", model.ErrInternalServer)
	}

	// The repository probes the serialized tag column, which can over-match.
	// Re-check tag membership here against the deserialized list.
	lowered := strings.ToLower(query)
	matched := make([]*model.Course, 0, len(candidates))
	for _, c := range candidates {
		if c.Status != model.CoursePublished {
			continue
		}
		if strings.Contains(strings.ToLower(c.Title), lowered) {
			matched = append(matched, c)
			continue
		}
		for _, tag := range c.Tags {
			if strings.EqualFold(tag, query) {
				matched = append(matched, c)
				break
			}
		}
	}
	return matched, nil
}

// UpdateCourse merges the non-nil request fields into the course and returns
// the updated record.
func (s *courseService) UpdateCourse(ctx context.Context, courseID uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, model.NewAppError("VALIDATION_ERROR", "The course title must not be empty.", "title", model.ErrInvalidInput)
		}
		updates["title"] = title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ShortDescription != nil {
		updates["short_description"] = *req.ShortDescription
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Visibility != nil {
		updates["visibility"] = *req.Visibility
	}
	if req.AccessRule != nil {
		updates["access_rule"] = *req.AccessRule
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.courseRepo.FindByID(ctx, tx, courseID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("COURSE_NOT_FOUND", "The course does not exist.", "course_id", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the course.", "", model.ErrInternalServer)
		}

		// Moving out of archived through a direct status write is allowed for
		// staff, but publishing still requires a website to point learners at.
		if req.Status != nil && *req.Status == model.CoursePublished && current.Website == "" && (req.Website == nil || *req.Website == "") {
			return model.NewAppError("WEBSITE_REQUIRED", "A course needs a website before it can be published.", "website", model.ErrInvalidInput)
		}

		if err := s.courseRepo.Update(ctx, tx, courseID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("COURSE_NOT_FOUND", "The course does not exist.", "course_id", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update the course.", "", model.ErrInternalServer)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Course updated", "course_id", courseID.String())
	return s.GetCourse(ctx, courseID)
}

func (s *courseService) DeleteCourse(ctx context.Context, courseID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.courseRepo.Delete(ctx, tx, courseID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("COURSE_NOT_FOUND", "The course does not exist.", "course_id", model.ErrNotFound)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to delete the course.", "", model.ErrInternalServer)
	}

	logger.Info("Course deleted", "course_id", courseID.String())
	return nil
}

// TogglePublish flips a course between draft and published. Archived courses
// are frozen and must be moved out of archive through an explicit update.
func (s *courseService) TogglePublish(ctx context.Context, courseID uuid.UUID) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	var course *model.Course
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.courseRepo.FindByID(ctx, tx, courseID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("COURSE_NOT_FOUND", "The course does not exist.", "course_id", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the course.", "", model.ErrInternalServer)
		}

		var next model.CourseStatus
		switch current.Status {
		case model.CourseDraft:
			if current.Website == "" {
				return model.NewAppError("WEBSITE_REQUIRED", "A course needs a website before it can be published.", "website", model.ErrInvalidInput)
			}
			next = model.CoursePublished
		case model.CoursePublished:
			next = model.CourseDraft
		default:
			return model.NewAppError("COURSE_ARCHIVED", "An archived course cannot be published or unpublished.", "status", model.ErrInvalidTransition)
		}

		if err := s.courseRepo.Update(ctx, tx, courseID, map[string]interface{}{"status": next}); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update the course status.", "", model.ErrInternalServer)
		}
		current.Status = next
		course = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Course publish state toggled", "course_id", courseID.String(), "status", string(course.Status))
	return course, nil
}
