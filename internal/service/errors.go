package service

import (
	"errors"
	"fmt"
)

// Две клиентские категории ошибок домена. Обработчики HTTP различают их через
// errors.Is; всё остальное считается фатальной ошибкой хранилища.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// NotFoundf оборачивает ErrNotFound с пояснением
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Conflictf оборачивает ErrConflict с пояснением
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}
