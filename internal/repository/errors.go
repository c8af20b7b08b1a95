package repository

import "github.com/Freeeeeet/store_scheduler/internal/repository/base"

// IsUniqueViolation распознаёт нарушение уникального ограничения (SQLSTATE 23505)
func IsUniqueViolation(err error) bool {
	return base.IsUniqueViolation(err)
}

// IsForeignKeyViolation распознаёт нарушение внешнего ключа (SQLSTATE 23503)
func IsForeignKeyViolation(err error) bool {
	return base.IsForeignKeyViolation(err)
}
