package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	InternalServerError = "internal server error"
	BadRequest          = "bad request"
	NotFound            = "not_found"
	Conflict            = "machine_busy"

	InternalServerErrorCode = 500
	NotFoundErrorCode       = 404
	ConflictErrorCode       = 409
)

// AppError представляет собой стандартизированную структуру ошибки для API.
type AppError struct {
	Code         int    `json:"code"`    // HTTP статус код
	Message      string `json:"message"` // Сообщение для клиента
	Err          error  `json:"-"`       // Внутренняя ошибка, не для клиента
	IsUserFacing bool   `json:"-"`       // Флаг, указывающий, можно ли показывать `Err`
}

func (a *AppError) Error() string {
	if a == nil {
		return ""
	}
	if a.Err != nil {
		return fmt.Sprintf("%s (code: %d): %v", a.Message, a.Code, a.Err)
	}
	return fmt.Sprintf("%s (code: %d)", a.Message, a.Code)
}

func (a *AppError) Unwrap() error {
	return a.Err
}

// NewAppError создает новый экземпляр AppError.
func NewAppError(httpCode int, message string, err error, isUserFacing bool) *AppError {
	return &AppError{
		Code:         httpCode,
		Message:      message,
		Err:          err,
		IsUserFacing: isUserFacing,
	}
}

// Ошибки дозирования. Оборачиваются через %w с контекстом (насос, линия, время).
var (
	ErrUnknownPump    = errors.New("unknown pump")
	ErrConfiguration  = errors.New("configuration error")
	ErrTimeout        = errors.New("pour timeout")
	ErrHardwareFault  = errors.New("hardware fault")
	ErrScheduling     = errors.New("scheduling fault")
	ErrBusy           = errors.New("machine busy")
	ErrDrinkNotFound  = errors.New("drink not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// HTTPStatus сопоставляет доменную ошибку с HTTP статусом ответа.
func HTTPStatus(err error) int {
	var appErr *AppError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &appErr):
		return appErr.Code
	case errors.Is(err, ErrDrinkNotFound), errors.Is(err, ErrUnknownPump):
		return http.StatusNotFound
	case errors.Is(err, ErrBusy):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrConfiguration):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
