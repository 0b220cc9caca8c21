package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const (
	pgUniqueViolation    = "23505"
	mysqlDuplicateEntry  = 1062
	sqliteUniquePrefix   = "UNIQUE constraint failed: "
	mysqlDuplicateMarker = " for key "
)

// ConstraintError 唯一约束冲突
// Detail 统一为 PostgreSQL 的格式，例如 "Key (email_id)=(a@x.com) already exists."
type ConstraintError struct {
	Detail string
	Cause  error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("unique constraint violation: %s (cause: %v)", e.Detail, e.Cause)
}

func (e *ConstraintError) Unwrap() error { return e.Cause }

// AsConstraintError 判断 err 是否为唯一约束冲突
func AsConstraintError(err error) (*ConstraintError, bool) {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// MapError 将驱动错误转换为 *ConstraintError，其它错误原样返回
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsConstraintError(err); ok {
		return err
	}

	// lib/pq
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == pgUniqueViolation {
			return &ConstraintError{Detail: pqErr.Detail, Cause: err}
		}
		return err
	}

	// pgx
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			return &ConstraintError{Detail: pgErr.Detail, Cause: err}
		}
		return err
	}

	// MySQL
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if myErr.Number == mysqlDuplicateEntry {
			return &ConstraintError{Detail: mysqlDetail(myErr.Message), Cause: err}
		}
		return err
	}

	// SQLite
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return &ConstraintError{Detail: sqliteDetail(liteErr.Error()), Cause: err}
		}
		return err
	}

	return err
}

// mysqlDetail 解析 "Duplicate entry 'a@x.com' for key 'users.email_id'"
// 唯一索引名需要包含列名
func mysqlDetail(msg string) string {
	idx := strings.LastIndex(msg, mysqlDuplicateMarker)
	if idx < 0 {
		return msg
	}
	key := strings.Trim(msg[idx+len(mysqlDuplicateMarker):], "'")
	key = stripTable(key)

	value := ""
	if start := strings.Index(msg, "'"); start >= 0 && start < idx {
		value = strings.Trim(msg[start:idx], "'")
	}
	return fmt.Sprintf("Key (%s)=(%s) already exists.", key, value)
}

// sqliteDetail 解析 "UNIQUE constraint failed: users.email_id"
func sqliteDetail(msg string) string {
	idx := strings.Index(msg, sqliteUniquePrefix)
	if idx < 0 {
		return msg
	}
	cols := strings.Split(msg[idx+len(sqliteUniquePrefix):], ", ")
	for i, col := range cols {
		cols[i] = stripTable(col)
	}
	return fmt.Sprintf("Key (%s) already exists.", strings.Join(cols, ", "))
}

func stripTable(col string) string {
	if dot := strings.LastIndex(col, "."); dot >= 0 {
		return col[dot+1:]
	}
	return col
}
