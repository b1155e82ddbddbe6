package domain

import "errors"

// Ожидаемые ошибки домена. Транспорт мапит их в HTTP-статусы через errors.Is,
// все остальное считается внутренней ошибкой (500).
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrLessonNotFound = errors.New("lesson not found")
	ErrDuplicateOrder = errors.New("lesson with this order already exists in the course")
	ErrCannotPublish  = errors.New("cannot publish a course without active lessons")
	ErrCannotMoveUp   = errors.New("lesson is already at the first position")
	ErrCannotMoveDown = errors.New("lesson is already at the last position")
	ErrValidation     = errors.New("validation failed")

	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
