package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseCanPublish(t *testing.T) {
	course := &Course{Status: CourseStatusDraft}
	assert.False(t, course.CanPublish())

	course.Lessons = []Lesson{{Title: "L1", Order: 1, IsDeleted: true}}
	assert.False(t, course.CanPublish())

	course.Lessons = append(course.Lessons, Lesson{Title: "L2", Order: 2})
	assert.True(t, course.CanPublish())
}

func TestCoursePublishNoopsWithoutLessons(t *testing.T) {
	course := &Course{Status: CourseStatusDraft}

	// Publish сам по себе не падает — просто не меняет статус
	course.Publish()
	assert.Equal(t, CourseStatusDraft, course.Status)

	course.Lessons = []Lesson{{Title: "L1", Order: 1}}
	course.Publish()
	assert.Equal(t, CourseStatusPublished, course.Status)
}

func TestCourseUnpublish(t *testing.T) {
	course := &Course{Status: CourseStatusPublished}
	course.Unpublish()
	assert.Equal(t, CourseStatusDraft, course.Status)

	// Повторно — тоже ок, состояние не терминальное
	course.Unpublish()
	assert.Equal(t, CourseStatusDraft, course.Status)
}

func TestCourseActiveLessonCount(t *testing.T) {
	course := &Course{
		Lessons: []Lesson{
			{Order: 1},
			{Order: 2, IsDeleted: true},
			{Order: 3},
		},
	}
	assert.Equal(t, 2, course.ActiveLessonCount())
}
