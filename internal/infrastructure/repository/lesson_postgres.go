package repository

import (
	"context"
	"errors"
	"time"

	"github.com/MarianaQC/courseplatform-api/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LessonRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewLessonRepository(db *gorm.DB, rdb *redis.Client) *LessonRepository {
	return &LessonRepository{db: db, rdb: rdb}
}

var _ domain.LessonRepository = (*LessonRepository)(nil)

// Transaction выполняет fn в одной транзакции БД. Репозиторий внутри fn
// работает поверх tx, при ошибке все изменения откатываются.
func (r *LessonRepository) Transaction(ctx context.Context, fn func(tx domain.LessonRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&LessonRepository{db: tx, rdb: r.rdb})
	})
}

func (r *LessonRepository) Create(ctx context.Context, lesson *domain.Lesson) error {
	if err := r.db.WithContext(ctx).Create(lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateOrder
		}
		return err
	}
	r.invalidateCourse(ctx, lesson.CourseID)
	return nil
}

func (r *LessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	var lesson domain.Lesson
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLessonNotFound
		}
		return nil, err
	}
	return &lesson, nil
}

// GetByIDIncludingDeleted обходит фильтр is_deleted (нужно для hard delete).
func (r *LessonRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	var lesson domain.Lesson
	err := r.db.WithContext(ctx).First(&lesson, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLessonNotFound
		}
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("\"order\" asc").
		Find(&lessons).Error
	return lessons, err
}

// GetByCourseIDForUpdate то же самое, но с блокировкой строк (FOR UPDATE).
// Два параллельных MoveUp по одному курсу не должны считать один и тот же снапшот.
func (r *LessonRepository) GetByCourseIDForUpdate(ctx context.Context, courseID uuid.UUID) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("\"order\" asc").
		Find(&lessons).Error
	return lessons, err
}

// IsOrderUnique: true, если НИ ОДИН другой активный урок курса не занимает order.
// excludeID исключает сам урок при обновлении.
func (r *LessonRepository) IsOrderUnique(ctx context.Context, courseID uuid.UUID, order int, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&domain.Lesson{}).
		Where("course_id = ? AND \"order\" = ? AND is_deleted = ?", courseID, order, false)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *LessonRepository) GetMaxOrderByCourseID(ctx context.Context, courseID uuid.UUID) (int, error) {
	var maxOrder int
	err := r.db.WithContext(ctx).Model(&domain.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Select("COALESCE(MAX(\"order\"), 0)").
		Scan(&maxOrder).Error
	return maxOrder, err
}

func (r *LessonRepository) Update(ctx context.Context, lesson *domain.Lesson) error {
	if err := r.db.WithContext(ctx).Save(lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateOrder
		}
		return err
	}
	r.invalidateCourse(ctx, lesson.CourseID)
	return nil
}

// ApplyOrders пишет новые позиции пачки уроков одним UPDATE ... CASE.
// Именно одним statement: уникальный индекс по (course_id, "order") тогда
// проверяется по итоговому состоянию, а не по промежуточным перестановкам
// (иначе обычный своп 1<->2 падал бы на первом же апдейте).
func (r *LessonRepository) ApplyOrders(ctx context.Context, lessons []domain.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}

	caseExpr := "CASE id"
	args := make([]interface{}, 0, len(lessons)*2+2)
	ids := make([]uuid.UUID, 0, len(lessons))
	for _, l := range lessons {
		caseExpr += " WHEN ? THEN ?"
		args = append(args, l.ID, l.Order)
		ids = append(ids, l.ID)
	}
	caseExpr += " END"
	args = append(args, time.Now(), ids)

	err := r.db.WithContext(ctx).
		Exec(`UPDATE lessons SET "order" = `+caseExpr+`, updated_at = ? WHERE id IN ?`, args...).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateOrder
		}
		return err
	}

	r.invalidateCourse(ctx, lessons[0].CourseID)
	return nil
}

func (r *LessonRepository) HardDelete(ctx context.Context, lesson *domain.Lesson) error {
	err := r.db.WithContext(ctx).Unscoped().Delete(&domain.Lesson{}, "id = ?", lesson.ID).Error
	if err != nil {
		return err
	}
	r.invalidateCourse(ctx, lesson.CourseID)
	return nil
}

// Урок поменялся — кеш детали курса больше не актуален.
func (r *LessonRepository) invalidateCourse(ctx context.Context, courseID uuid.UUID) {
	if r.rdb != nil {
		r.rdb.Del(ctx, "course:detail:"+courseID.String())
	}
}
