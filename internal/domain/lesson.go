package domain

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"` // не меняется после создания
	Title    string    `gorm:"size:200;not null" json:"title"`
	Order    int       `gorm:"not null" json:"order"` // позиция внутри курса (1, 2, 3...)

	IsDeleted bool `gorm:"not null;default:false;index" json:"is_deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *Lesson) SoftDelete() {
	l.IsDeleted = true
}
