package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MarianaQC/courseplatform-api/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CourseRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewCourseRepository(db *gorm.DB, rdb *redis.Client) *CourseRepository {
	return &CourseRepository{db: db, rdb: rdb}
}

var _ domain.CourseRepository = (*CourseRepository)(nil)

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// GetByID без уроков — для операций, которым коллекция не нужна
// (update, unpublish, soft delete).
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// === КЕШИРУЕМ ДЕТАЛЬ КУРСА (С УРОКАМИ) ===
// Обязательный путь для Publish: CanPublish смотрит на загруженные уроки.
func (r *CourseRepository) GetByIDWithLessons(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	key := "course:detail:" + id.String()

	// 1. Кеш
	if val, err := r.rdb.Get(ctx, key).Result(); err == nil {
		var c domain.Course
		if json.Unmarshal([]byte(val), &c) == nil {
			return &c, nil
		}
	}

	// 2. БД
	var course domain.Course
	err := r.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("\"order\" asc")
		}).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	// 3. Кеш на час, инвалидация при любой мутации курса/уроков
	if data, err := json.Marshal(course); err == nil {
		r.rdb.Set(ctx, key, data, 1*time.Hour)
	}

	return &course, nil
}

// GetByIDIncludingDeleted обходит фильтр is_deleted (hard delete).
func (r *CourseRepository) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Course{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	return count > 0, err
}

// === КЕШИРУЕМ ПОИСК ===
// Списки не инвалидируем точечно — TTL 10 минут, курсы меняются не часто.
func (r *CourseRepository) Search(ctx context.Context, query string, status *domain.CourseStatus, page, pageSize int) ([]domain.Course, int64, error) {
	statusKey := ""
	if status != nil {
		statusKey = string(*status)
	}
	key := fmt.Sprintf("courses:search:%s:%s:%d:%d", query, statusKey, page, pageSize)

	if val, err := r.rdb.Get(ctx, key).Result(); err == nil {
		var cached struct {
			Courses []domain.Course
			Total   int64
		}
		if json.Unmarshal([]byte(val), &cached) == nil {
			return cached.Courses, cached.Total, nil
		}
	}

	q := r.db.WithContext(ctx).Model(&domain.Course{}).
		Where("is_deleted = ?", false)
	if query != "" {
		q = q.Where("title ILIKE ?", "%"+query+"%")
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []domain.Course
	err := q.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Where("is_deleted = ?", false).Order("\"order\" asc")
	}).
		Order("created_at desc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}

	cacheData := struct {
		Courses []domain.Course
		Total   int64
	}{courses, total}
	if data, err := json.Marshal(cacheData); err == nil {
		r.rdb.Set(ctx, key, data, 10*time.Minute)
	}

	return courses, total, nil
}

func (r *CourseRepository) Update(ctx context.Context, course *domain.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return err
	}
	r.rdb.Del(ctx, "course:detail:"+course.ID.String())
	return nil
}

func (r *CourseRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Unscoped().Delete(&domain.Course{}, "id = ?", id).Error
	if err != nil {
		return err
	}
	r.rdb.Del(ctx, "course:detail:"+id.String())
	return nil
}
