package domain

import (
	"context"

	"github.com/google/uuid"
)

// Контракты хранилища. Реализация — gorm-репозитории в infrastructure,
// в тестах use case'ов подставляются стабы.

type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*Course, error)
	GetByIDWithLessons(ctx context.Context, id uuid.UUID) (*Course, error)
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*Course, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Search(ctx context.Context, query string, status *CourseStatus, page, pageSize int) ([]Course, int64, error)
	Update(ctx context.Context, course *Course) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}

type LessonRepository interface {
	// Transaction выполняет fn атомарно: любые записи через tx либо
	// коммитятся все вместе, либо откатываются все вместе.
	Transaction(ctx context.Context, fn func(tx LessonRepository) error) error

	Create(ctx context.Context, lesson *Lesson) error
	GetByID(ctx context.Context, id uuid.UUID) (*Lesson, error)
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*Lesson, error)
	GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]Lesson, error)
	GetByCourseIDForUpdate(ctx context.Context, courseID uuid.UUID) ([]Lesson, error)
	IsOrderUnique(ctx context.Context, courseID uuid.UUID, order int, excludeID *uuid.UUID) (bool, error)
	GetMaxOrderByCourseID(ctx context.Context, courseID uuid.UUID) (int, error)
	Update(ctx context.Context, lesson *Lesson) error
	ApplyOrders(ctx context.Context, lessons []Lesson) error
	HardDelete(ctx context.Context, lesson *Lesson) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	CountAdmins(ctx context.Context) (int64, error)
}
