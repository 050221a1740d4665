package gormpersistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"chatgenius/internal/repository"
)

// mapError 把 GORM/驱动错误映射为仓库层错误，其它错误原样返回由调用方包装。
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateEntryError(err) {
		return repository.ErrDuplicateEntry
	}
	return err
}

// isDuplicateEntryError 检查唯一约束冲突。
// MySQL 通过错误码 1062 判断，其它驱动 (测试用的 SQLite 等) 退回到错误字符串。
func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "Duplicate entry") || // MySQL
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}

// wrap 保留仓库层哨兵错误，其它错误加上 "gorm: <op>" 前缀。
func wrap(op string, err error) error {
	mapped := mapError(err)
	if mapped == nil {
		return nil
	}
	if errors.Is(mapped, repository.ErrNotFound) || errors.Is(mapped, repository.ErrDuplicateEntry) {
		return mapped
	}
	return fmt.Errorf("gorm: %s: %w", op, mapped)
}
