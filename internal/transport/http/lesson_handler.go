package handlers

import (
	"net/http"

	"github.com/MarianaQC/courseplatform-api/internal/application/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LessonHandler struct {
	lessonUC *usecase.LessonUseCase
}

func NewLessonHandler(lessonUC *usecase.LessonUseCase) *LessonHandler {
	return &LessonHandler{lessonUC: lessonUC}
}

type createLessonReq struct {
	CourseID uuid.UUID `json:"course_id" binding:"required"`
	Title    string    `json:"title" binding:"required,max=200"`
	Order    int       `json:"order" binding:"required,gt=0"`
}

type updateLessonReq struct {
	Title string `json:"title" binding:"required,max=200"`
	Order int    `json:"order" binding:"required,gt=0"`
}

type reorderReq struct {
	Items []usecase.ReorderItem `json:"items" binding:"required,dive"`
}

// GET /api/v1/lessons/:id
func (h *LessonHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}

	lesson, err := h.lessonUC.GetByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// GET /api/v1/courses/:id/lessons
func (h *LessonHandler) GetByCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	lessons, err := h.lessonUC.GetByCourseID(c, courseID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lessons)
}

// GET /api/v1/courses/:id/lessons/next-order
func (h *LessonHandler) NextOrder(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	next, err := h.lessonUC.NextOrder(c, courseID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"next_order": next})
}

// POST /api/v1/lessons
func (h *LessonHandler) Create(c *gin.Context) {
	var req createLessonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson, err := h.lessonUC.Create(c, req.CourseID, req.Title, req.Order)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

// PUT /api/v1/lessons/:id
func (h *LessonHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}

	var req updateLessonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson, err := h.lessonUC.Update(c, id, req.Title, req.Order)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// PATCH /api/v1/lessons/:id/move-up
func (h *LessonHandler) MoveUp(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}

	if err := h.lessonUC.MoveUp(c, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PATCH /api/v1/lessons/:id/move-down
func (h *LessonHandler) MoveDown(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}

	if err := h.lessonUC.MoveDown(c, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /api/v1/courses/:id/lessons/reorder
func (h *LessonHandler) Reorder(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.lessonUC.Reorder(c, courseID, req.Items); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/v1/lessons/:id
func (h *LessonHandler) SoftDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}

	if err := h.lessonUC.SoftDelete(c, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/v1/lessons/:id/hard
func (h *LessonHandler) HardDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}

	if err := h.lessonUC.HardDelete(c, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
