package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/MarianaQC/courseplatform-api/internal/domain"

	"github.com/google/uuid"
)

type LessonUseCase struct {
	courseRepo domain.CourseRepository
	lessonRepo domain.LessonRepository
}

func NewLessonUseCase(cr domain.CourseRepository, lr domain.LessonRepository) *LessonUseCase {
	return &LessonUseCase{
		courseRepo: cr,
		lessonRepo: lr,
	}
}

type ReorderItem struct {
	LessonID uuid.UUID `json:"lesson_id" binding:"required"`
	NewOrder int       `json:"new_order" binding:"required,gt=0"`
}

func (uc *LessonUseCase) Create(ctx context.Context, courseID uuid.UUID, title string, order int) (*domain.Lesson, error) {
	if err := validateLesson(courseID, title, order); err != nil {
		return nil, err
	}

	exists, err := uc.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrCourseNotFound
	}

	unique, err := uc.lessonRepo.IsOrderUnique(ctx, courseID, order, nil)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, domain.ErrDuplicateOrder
	}

	lesson := &domain.Lesson{
		ID:        uuid.New(),
		CourseID:  courseID,
		Title:     title,
		Order:     order,
		IsDeleted: false,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (uc *LessonUseCase) Update(ctx context.Context, id uuid.UUID, title string, order int) (*domain.Lesson, error) {
	lesson, err := uc.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateLesson(lesson.CourseID, title, order); err != nil {
		return nil, err
	}

	// Свой собственный order уроку занимать можно
	unique, err := uc.lessonRepo.IsOrderUnique(ctx, lesson.CourseID, order, &id)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, domain.ErrDuplicateOrder
	}

	lesson.Title = title
	lesson.Order = order
	lesson.UpdatedAt = time.Now()

	if err := uc.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (uc *LessonUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	return uc.lessonRepo.GetByID(ctx, id)
}

func (uc *LessonUseCase) GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]domain.Lesson, error) {
	exists, err := uc.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrCourseNotFound
	}
	return uc.lessonRepo.GetByCourseID(ctx, courseID)
}

// NextOrder подсказывает позицию для нового урока: следом за последним активным.
// Для пустого курса вернет 1.
func (uc *LessonUseCase) NextOrder(ctx context.Context, courseID uuid.UUID) (int, error) {
	exists, err := uc.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.ErrCourseNotFound
	}

	max, err := uc.lessonRepo.GetMaxOrderByCourseID(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (uc *LessonUseCase) SoftDelete(ctx context.Context, id uuid.UUID) error {
	lesson, err := uc.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	lesson.SoftDelete()
	lesson.UpdatedAt = time.Now()
	return uc.lessonRepo.Update(ctx, lesson)
}

// HardDelete находит урок в обход фильтра is_deleted и физически удаляет строку.
func (uc *LessonUseCase) HardDelete(ctx context.Context, id uuid.UUID) error {
	lesson, err := uc.lessonRepo.GetByIDIncludingDeleted(ctx, id)
	if err != nil {
		return err
	}
	return uc.lessonRepo.HardDelete(ctx, lesson)
}

// MoveUp меняет урок местами с соседом выше. Именно обмен значениями order,
// а не сдвиг на единицу: набор занятых позиций курса не меняется, третьи
// уроки не трогаем. Обе записи идут в одной транзакции с блокировкой строк.
func (uc *LessonUseCase) MoveUp(ctx context.Context, lessonID uuid.UUID) error {
	return uc.move(ctx, lessonID, -1)
}

func (uc *LessonUseCase) MoveDown(ctx context.Context, lessonID uuid.UUID) error {
	return uc.move(ctx, lessonID, +1)
}

func (uc *LessonUseCase) move(ctx context.Context, lessonID uuid.UUID, direction int) error {
	return uc.lessonRepo.Transaction(ctx, func(tx domain.LessonRepository) error {
		lesson, err := tx.GetByID(ctx, lessonID)
		if err != nil {
			return err
		}

		lessons, err := tx.GetByCourseIDForUpdate(ctx, lesson.CourseID)
		if err != nil {
			return err
		}

		idx := -1
		for i := range lessons {
			if lessons[i].ID == lessonID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return domain.ErrLessonNotFound
		}

		if direction < 0 && idx == 0 {
			return domain.ErrCannotMoveUp
		}
		if direction > 0 && idx == len(lessons)-1 {
			return domain.ErrCannotMoveDown
		}

		neighbor := lessons[idx+direction]
		current := lessons[idx]
		current.Order, neighbor.Order = neighbor.Order, current.Order

		return tx.ApplyOrders(ctx, []domain.Lesson{current, neighbor})
	})
}

// Reorder применяет пакет новых позиций целиком — все или ничего.
// Любой урок не найден или принадлежит другому курсу — откатываем весь пакет.
// Финальную уникальность позиций страхует частичный уникальный индекс по
// (course_id, "order") WHERE is_deleted = false: коллизия валит транзакцию.
func (uc *LessonUseCase) Reorder(ctx context.Context, courseID uuid.UUID, items []ReorderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: reorder list is empty", domain.ErrValidation)
	}
	for _, item := range items {
		if item.NewOrder <= 0 {
			return fmt.Errorf("%w: order must be greater than 0", domain.ErrValidation)
		}
	}

	return uc.lessonRepo.Transaction(ctx, func(tx domain.LessonRepository) error {
		staged := make([]domain.Lesson, 0, len(items))
		for _, item := range items {
			lesson, err := tx.GetByID(ctx, item.LessonID)
			if err != nil {
				return err
			}
			if lesson.CourseID != courseID {
				return domain.ErrLessonNotFound
			}

			lesson.Order = item.NewOrder
			lesson.UpdatedAt = time.Now()
			staged = append(staged, *lesson)
		}

		return tx.ApplyOrders(ctx, staged)
	})
}

func validateLesson(courseID uuid.UUID, title string, order int) error {
	if courseID == uuid.Nil {
		return fmt.Errorf("%w: course id is required", domain.ErrValidation)
	}
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len([]rune(title)) > 200 {
		return fmt.Errorf("%w: title must be at most 200 characters", domain.ErrValidation)
	}
	if order <= 0 {
		return fmt.Errorf("%w: order must be greater than 0", domain.ErrValidation)
	}
	return nil
}
