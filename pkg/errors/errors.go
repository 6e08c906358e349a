package errors

import (
	"errors"

	"gorm.io/gorm"
)

// IsDuplicateKey 判断存储层错误是否为唯一约束冲突
// 依赖 gorm.Config.TranslateError 将驱动错误翻译为 gorm.ErrDuplicatedKey
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsForeignKeyViolation 判断存储层错误是否为外键约束冲突
func IsForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
