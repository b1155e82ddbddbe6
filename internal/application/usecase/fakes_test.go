package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/MarianaQC/courseplatform-api/internal/domain"

	"github.com/google/uuid"
)

// In-memory реализация репозиториев для тестов use case'ов.
// Transaction эмулирует rollback через снапшот, ApplyOrders — частичный
// уникальный индекс по (course_id, order) среди активных уроков.

type fakeLessonRepo struct {
	lessons map[uuid.UUID]*domain.Lesson
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{lessons: make(map[uuid.UUID]*domain.Lesson)}
}

var _ domain.LessonRepository = (*fakeLessonRepo)(nil)

func (f *fakeLessonRepo) add(lesson domain.Lesson) {
	l := lesson
	f.lessons[l.ID] = &l
}

func (f *fakeLessonRepo) snapshot() map[uuid.UUID]*domain.Lesson {
	out := make(map[uuid.UUID]*domain.Lesson, len(f.lessons))
	for id, l := range f.lessons {
		copy := *l
		out[id] = &copy
	}
	return out
}

func (f *fakeLessonRepo) Transaction(ctx context.Context, fn func(tx domain.LessonRepository) error) error {
	backup := f.snapshot()
	if err := fn(f); err != nil {
		f.lessons = backup
		return err
	}
	return nil
}

func (f *fakeLessonRepo) Create(ctx context.Context, lesson *domain.Lesson) error {
	unique, _ := f.IsOrderUnique(ctx, lesson.CourseID, lesson.Order, nil)
	if !unique {
		return domain.ErrDuplicateOrder
	}
	f.add(*lesson)
	return nil
}

func (f *fakeLessonRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	l, ok := f.lessons[id]
	if !ok || l.IsDeleted {
		return nil, domain.ErrLessonNotFound
	}
	copy := *l
	return &copy, nil
}

func (f *fakeLessonRepo) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	l, ok := f.lessons[id]
	if !ok {
		return nil, domain.ErrLessonNotFound
	}
	copy := *l
	return &copy, nil
}

func (f *fakeLessonRepo) GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]domain.Lesson, error) {
	var out []domain.Lesson
	for _, l := range f.lessons {
		if l.CourseID == courseID && !l.IsDeleted {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeLessonRepo) GetByCourseIDForUpdate(ctx context.Context, courseID uuid.UUID) ([]domain.Lesson, error) {
	return f.GetByCourseID(ctx, courseID)
}

func (f *fakeLessonRepo) IsOrderUnique(ctx context.Context, courseID uuid.UUID, order int, excludeID *uuid.UUID) (bool, error) {
	for _, l := range f.lessons {
		if l.CourseID != courseID || l.IsDeleted || l.Order != order {
			continue
		}
		if excludeID != nil && l.ID == *excludeID {
			continue
		}
		return false, nil
	}
	return true, nil
}

func (f *fakeLessonRepo) GetMaxOrderByCourseID(ctx context.Context, courseID uuid.UUID) (int, error) {
	max := 0
	for _, l := range f.lessons {
		if l.CourseID == courseID && !l.IsDeleted && l.Order > max {
			max = l.Order
		}
	}
	return max, nil
}

func (f *fakeLessonRepo) Update(ctx context.Context, lesson *domain.Lesson) error {
	if _, ok := f.lessons[lesson.ID]; !ok {
		return domain.ErrLessonNotFound
	}
	unique, _ := f.IsOrderUnique(ctx, lesson.CourseID, lesson.Order, &lesson.ID)
	if !unique && !lesson.IsDeleted {
		return domain.ErrDuplicateOrder
	}
	f.add(*lesson)
	return nil
}

func (f *fakeLessonRepo) ApplyOrders(ctx context.Context, lessons []domain.Lesson) error {
	// Сначала применяем все позиции, потом проверяем итоговое состояние —
	// так же ведет себя один UPDATE с уникальным индексом.
	for i := range lessons {
		stored, ok := f.lessons[lessons[i].ID]
		if !ok {
			return domain.ErrLessonNotFound
		}
		stored.Order = lessons[i].Order
		stored.UpdatedAt = time.Now()
	}

	seen := make(map[uuid.UUID]map[int]bool)
	for _, l := range f.lessons {
		if l.IsDeleted {
			continue
		}
		if seen[l.CourseID] == nil {
			seen[l.CourseID] = make(map[int]bool)
		}
		if seen[l.CourseID][l.Order] {
			return domain.ErrDuplicateOrder
		}
		seen[l.CourseID][l.Order] = true
	}
	return nil
}

func (f *fakeLessonRepo) HardDelete(ctx context.Context, lesson *domain.Lesson) error {
	if _, ok := f.lessons[lesson.ID]; !ok {
		return domain.ErrLessonNotFound
	}
	delete(f.lessons, lesson.ID)
	return nil
}

type fakeCourseRepo struct {
	courses    map[uuid.UUID]*domain.Course
	lessonRepo *fakeLessonRepo
}

func newFakeCourseRepo(lr *fakeLessonRepo) *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:    make(map[uuid.UUID]*domain.Course),
		lessonRepo: lr,
	}
}

var _ domain.CourseRepository = (*fakeCourseRepo)(nil)

func (f *fakeCourseRepo) add(course domain.Course) {
	c := course
	f.courses[c.ID] = &c
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *domain.Course) error {
	f.add(*course)
	return nil
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	c, ok := f.courses[id]
	if !ok || c.IsDeleted {
		return nil, domain.ErrCourseNotFound
	}
	copy := *c
	copy.Lessons = nil
	return &copy, nil
}

func (f *fakeCourseRepo) GetByIDWithLessons(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	course, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Lessons, _ = f.lessonRepo.GetByCourseID(ctx, id)
	return course, nil
}

func (f *fakeCourseRepo) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	copy := *c
	return &copy, nil
}

func (f *fakeCourseRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	c, ok := f.courses[id]
	return ok && !c.IsDeleted, nil
}

func (f *fakeCourseRepo) Search(ctx context.Context, query string, status *domain.CourseStatus, page, pageSize int) ([]domain.Course, int64, error) {
	var out []domain.Course
	for _, c := range f.courses {
		if c.IsDeleted {
			continue
		}
		if status != nil && c.Status != *status {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, course *domain.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return domain.ErrCourseNotFound
	}
	stored := *course
	stored.Lessons = nil
	f.courses[course.ID] = &stored
	return nil
}

func (f *fakeCourseRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(f.courses, id)
	return nil
}
