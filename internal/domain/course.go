package domain

import (
	"time"

	"github.com/google/uuid"
)

type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
)

type Course struct {
	ID     uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title  string       `gorm:"size:200;not null;index" json:"title"`
	Status CourseStatus `gorm:"size:20;not null;default:draft;index" json:"status"`

	// Связь один-ко-многим: у курса много уроков.
	// Удаление курса с уроками запрещено на уровне FK (RESTRICT, без каскада).
	Lessons []Lesson `gorm:"foreignKey:CourseID;constraint:OnDelete:RESTRICT;" json:"lessons,omitempty"`

	IsDeleted bool `gorm:"not null;default:false;index" json:"is_deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanPublish: публиковать можно только курс хотя бы с одним активным уроком.
// Проверка идет по загруженной коллекции Lessons, поэтому курс нужно
// доставать через GetByIDWithLessons, иначе список будет пустой.
func (c *Course) CanPublish() bool {
	for _, l := range c.Lessons {
		if !l.IsDeleted {
			return true
		}
	}
	return false
}

func (c *Course) Publish() {
	if c.CanPublish() {
		c.Status = CourseStatusPublished
	}
}

func (c *Course) Unpublish() {
	c.Status = CourseStatusDraft
}

func (c *Course) SoftDelete() {
	c.IsDeleted = true
}

func (c *Course) ActiveLessonCount() int {
	count := 0
	for _, l := range c.Lessons {
		if !l.IsDeleted {
			count++
		}
	}
	return count
}
