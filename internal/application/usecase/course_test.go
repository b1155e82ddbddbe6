package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/MarianaQC/courseplatform-api/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourseTestEnv() (*CourseUseCase, *fakeCourseRepo, *fakeLessonRepo) {
	lessonRepo := newFakeLessonRepo()
	courseRepo := newFakeCourseRepo(lessonRepo)
	return NewCourseUseCase(courseRepo), courseRepo, lessonRepo
}

func TestCourseUseCase_CreateStartsAsDraft(t *testing.T) {
	uc, courseRepo, _ := newCourseTestEnv()

	course, err := uc.Create(context.Background(), "Intro to X")
	require.NoError(t, err)
	assert.Equal(t, domain.CourseStatusDraft, course.Status)
	assert.Contains(t, courseRepo.courses, course.ID)
}

func TestCourseUseCase_CreateValidation(t *testing.T) {
	uc, _, _ := newCourseTestEnv()

	_, err := uc.Create(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(context.Background(), strings.Repeat("a", 201))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCourseUseCase_PublishWithActiveLessons(t *testing.T) {
	uc, courseRepo, lessonRepo := newCourseTestEnv()
	courseID := seedCourse(courseRepo)
	seedLesson(lessonRepo, courseID, "L1", 1)

	require.NoError(t, uc.Publish(context.Background(), courseID))
	assert.Equal(t, domain.CourseStatusPublished, courseRepo.courses[courseID].Status)
}

func TestCourseUseCase_PublishWithoutLessons(t *testing.T) {
	uc, courseRepo, _ := newCourseTestEnv()
	courseID := seedCourse(courseRepo)

	err := uc.Publish(context.Background(), courseID)
	assert.ErrorIs(t, err, domain.ErrCannotPublish)
	assert.Equal(t, domain.CourseStatusDraft, courseRepo.courses[courseID].Status)
}

func TestCourseUseCase_PublishAllLessonsDeleted(t *testing.T) {
	uc, courseRepo, lessonRepo := newCourseTestEnv()
	courseID := seedCourse(courseRepo)
	id := seedLesson(lessonRepo, courseID, "L1", 1)
	lessonRepo.lessons[id].IsDeleted = true

	err := uc.Publish(context.Background(), courseID)
	assert.ErrorIs(t, err, domain.ErrCannotPublish)
	assert.Equal(t, domain.CourseStatusDraft, courseRepo.courses[courseID].Status)
}

func TestCourseUseCase_UnpublishIsUnconditional(t *testing.T) {
	uc, courseRepo, _ := newCourseTestEnv()
	courseID := seedCourse(courseRepo)
	courseRepo.courses[courseID].Status = domain.CourseStatusPublished

	// Без предусловий: уроков нет, а снять с публикации можно
	require.NoError(t, uc.Unpublish(context.Background(), courseID))
	assert.Equal(t, domain.CourseStatusDraft, courseRepo.courses[courseID].Status)
}

// Сценарий целиком: черновик без уроков не публикуется, с уроком публикуется,
// а soft delete последнего урока НЕ снимает курс с публикации.
func TestCourseUseCase_PublishLifecycleScenario(t *testing.T) {
	lessonRepo := newFakeLessonRepo()
	courseRepo := newFakeCourseRepo(lessonRepo)
	courseUC := NewCourseUseCase(courseRepo)
	lessonUC := NewLessonUseCase(courseRepo, lessonRepo)
	ctx := context.Background()

	course, err := courseUC.Create(ctx, "Intro to X")
	require.NoError(t, err)

	assert.ErrorIs(t, courseUC.Publish(ctx, course.ID), domain.ErrCannotPublish)

	lesson, err := lessonUC.Create(ctx, course.ID, "L1", 1)
	require.NoError(t, err)

	require.NoError(t, courseUC.Publish(ctx, course.ID))
	assert.Equal(t, domain.CourseStatusPublished, courseRepo.courses[course.ID].Status)

	require.NoError(t, lessonUC.SoftDelete(ctx, lesson.ID))
	assert.Equal(t, domain.CourseStatusPublished, courseRepo.courses[course.ID].Status)
}

func TestCourseUseCase_GetSummaryCountsActiveOnly(t *testing.T) {
	uc, courseRepo, lessonRepo := newCourseTestEnv()
	courseID := seedCourse(courseRepo)
	seedLesson(lessonRepo, courseID, "L1", 1)
	deleted := seedLesson(lessonRepo, courseID, "L2", 2)
	lessonRepo.lessons[deleted].IsDeleted = true

	summary, err := uc.GetSummary(context.Background(), courseID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.LessonCount)
}

func TestCourseUseCase_SoftDeleteHidesCourse(t *testing.T) {
	uc, courseRepo, _ := newCourseTestEnv()
	courseID := seedCourse(courseRepo)

	require.NoError(t, uc.SoftDelete(context.Background(), courseID))
	assert.True(t, courseRepo.courses[courseID].IsDeleted)

	_, err := uc.GetByID(context.Background(), courseID)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestCourseUseCase_HardDeleteFindsSoftDeleted(t *testing.T) {
	uc, courseRepo, _ := newCourseTestEnv()
	courseID := seedCourse(courseRepo)
	require.NoError(t, uc.SoftDelete(context.Background(), courseID))

	require.NoError(t, uc.HardDelete(context.Background(), courseID))
	assert.NotContains(t, courseRepo.courses, courseID)
}

func TestCourseUseCase_UpdateNotFound(t *testing.T) {
	uc, _, _ := newCourseTestEnv()

	_, err := uc.Update(context.Background(), uuid.New(), "new title")
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestCourseUseCase_SearchStatusFilter(t *testing.T) {
	uc, courseRepo, _ := newCourseTestEnv()
	draft := seedCourse(courseRepo)
	published := seedCourse(courseRepo)
	courseRepo.courses[published].Status = domain.CourseStatusPublished

	courses, total, err := uc.Search(context.Background(), "", "published", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, courses, 1)
	assert.Equal(t, published, courses[0].ID)
	assert.NotEqual(t, draft, courses[0].ID)
}
