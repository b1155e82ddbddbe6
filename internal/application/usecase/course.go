package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MarianaQC/courseplatform-api/internal/domain"

	"github.com/google/uuid"
)

type CourseUseCase struct {
	courseRepo domain.CourseRepository
}

func NewCourseUseCase(cr domain.CourseRepository) *CourseUseCase {
	return &CourseUseCase{courseRepo: cr}
}

type CourseSummary struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Status      domain.CourseStatus `json:"status"`
	LessonCount int                 `json:"lesson_count"`
}

func (uc *CourseUseCase) Create(ctx context.Context, title string) (*domain.Course, error) {
	if err := validateCourseTitle(title); err != nil {
		return nil, err
	}

	course := &domain.Course{
		ID:        uuid.New(),
		Title:     title,
		Status:    domain.CourseStatusDraft, // новый курс всегда черновик
		IsDeleted: false,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (uc *CourseUseCase) Update(ctx context.Context, id uuid.UUID, title string) (*domain.Course, error) {
	if err := validateCourseTitle(title); err != nil {
		return nil, err
	}

	course, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Title = title
	course.UpdatedAt = time.Now()

	if err := uc.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (uc *CourseUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	return uc.courseRepo.GetByIDWithLessons(ctx, id)
}

func (uc *CourseUseCase) Search(ctx context.Context, query, status string, page, pageSize int) ([]domain.Course, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	var statusFilter *domain.CourseStatus
	status = strings.ToLower(status)
	switch domain.CourseStatus(status) {
	case domain.CourseStatusDraft, domain.CourseStatusPublished:
		s := domain.CourseStatus(status)
		statusFilter = &s
	}

	return uc.courseRepo.Search(ctx, query, statusFilter, page, pageSize)
}

func (uc *CourseUseCase) GetSummary(ctx context.Context, id uuid.UUID) (*CourseSummary, error) {
	course, err := uc.courseRepo.GetByIDWithLessons(ctx, id)
	if err != nil {
		return nil, err
	}

	return &CourseSummary{
		ID:          course.ID,
		Title:       course.Title,
		Status:      course.Status,
		LessonCount: course.ActiveLessonCount(),
	}, nil
}

// Publish: курс без активных уроков публиковать нельзя.
// Грузим курс строго вместе с уроками, иначе CanPublish увидит пустой список.
func (uc *CourseUseCase) Publish(ctx context.Context, id uuid.UUID) error {
	course, err := uc.courseRepo.GetByIDWithLessons(ctx, id)
	if err != nil {
		return err
	}

	if !course.CanPublish() {
		return domain.ErrCannotPublish
	}

	course.Publish()
	course.UpdatedAt = time.Now()
	return uc.courseRepo.Update(ctx, course)
}

// Unpublish безусловный: из published всегда можно вернуться в draft.
func (uc *CourseUseCase) Unpublish(ctx context.Context, id uuid.UUID) error {
	course, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	course.Unpublish()
	course.UpdatedAt = time.Now()
	return uc.courseRepo.Update(ctx, course)
}

// SoftDelete не каскадит на уроки и не снимает курс с публикации.
func (uc *CourseUseCase) SoftDelete(ctx context.Context, id uuid.UUID) error {
	course, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	course.SoftDelete()
	course.UpdatedAt = time.Now()
	return uc.courseRepo.Update(ctx, course)
}

func (uc *CourseUseCase) HardDelete(ctx context.Context, id uuid.UUID) error {
	course, err := uc.courseRepo.GetByIDIncludingDeleted(ctx, id)
	if err != nil {
		return err
	}
	return uc.courseRepo.HardDelete(ctx, course.ID)
}

func validateCourseTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len([]rune(title)) > 200 {
		return fmt.Errorf("%w: title must be at most 200 characters", domain.ErrValidation)
	}
	return nil
}
