package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"user-service/internal/apperror"
	"user-service/internal/dto"
	"user-service/internal/model"
	"user-service/pkg/db"
)

// UserRepository 用户仓储接口
// 所有错误都已分类为 Conflict、NotFound 或 Internal
type UserRepository interface {
	// Create 创建用户
	Create(ctx context.Context, user *dto.CreateUserDTO) (*dto.Result, error)

	// GetByID 根据ID查询用户，Data 为 *model.User
	GetByID(ctx context.Context, id int64) (*dto.Result, error)

	// GetIDByUsername 根据用户名查询用户ID，Data 为 int64
	GetIDByUsername(ctx context.Context, username string) (*dto.Result, error)

	// UpdateField 更新单个字段
	UpdateField(ctx context.Context, id int64, field dto.Field, value string) (*dto.Result, error)

	// Delete 删除用户
	Delete(ctx context.Context, id int64) (*dto.Result, error)
}

const (
	sqlInsertUser = `INSERT INTO users (email_id, username, password, first_name, last_name)
              VALUES (?, ?, ?, ?, ?)`

	sqlGetUserByID = `SELECT user_id, email_id, username, password, first_name, last_name, created_at
              FROM users WHERE user_id = ?`

	sqlGetIDByUsername = `SELECT user_id FROM users WHERE username = ?`

	sqlCountByEmailID = `SELECT COUNT(1) FROM users WHERE email_id = ?`

	sqlDeleteUser = `DELETE FROM users WHERE user_id = ?`
)

// userRepository 用户仓储实现
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository 创建用户仓储实例
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *dto.CreateUserDTO) (*dto.Result, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(sqlInsertUser),
		user.EmailID, user.Username, user.Password, user.FirstName, user.LastName)
	if err != nil {
		err = db.MapError(err)
		if ce, ok := db.AsConstraintError(err); ok {
			switch conflictField(ce.Detail) {
			case dto.FieldEmailID:
				return nil, apperror.Conflict("User with email ID '%s' already exists.", user.EmailID)
			case dto.FieldUsername:
				// 驱动只报告一个冲突约束，邮箱同时冲突时以邮箱为准
				if r.emailIDTaken(ctx, user.EmailID) {
					return nil, apperror.Conflict("User with email ID '%s' already exists.", user.EmailID)
				}
				return nil, apperror.Conflict("User with username '%s' already exists.", user.Username)
			}
		}
		return nil, apperror.Internal("failed to create user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apperror.Internal("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, apperror.Internal("unknown error occurred while creating user", nil)
	}

	return &dto.Result{
		Detail: fmt.Sprintf("User '%s' created successfully.", user.Username),
	}, nil
}

// emailIDTaken 查询邮箱是否已被使用，查询失败视为未使用
func (r *userRepository) emailIDTaken(ctx context.Context, emailID string) bool {
	var count int64
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(sqlCountByEmailID), emailID); err != nil {
		return false
	}
	return count > 0
}

// GetByID 根据ID查询用户
func (r *userRepository) GetByID(ctx context.Context, id int64) (*dto.Result, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(sqlGetUserByID), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User ID '%d' not found.", id)
		}
		return nil, apperror.Internal("failed to get user by id", err)
	}

	return &dto.Result{
		Detail: fmt.Sprintf("Details for user ID '%d' fetched successfully.", id),
		Data:   &user,
	}, nil
}

// GetIDByUsername 根据用户名查询用户ID
func (r *userRepository) GetIDByUsername(ctx context.Context, username string) (*dto.Result, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, r.db.Rebind(sqlGetIDByUsername), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Username '%s' not found.", username)
		}
		return nil, apperror.Internal("failed to get user id by username", err)
	}

	return &dto.Result{
		Detail: fmt.Sprintf("User ID for username '%s' fetched successfully.", username),
		Data:   id,
	}, nil
}

// UpdateField 更新单个字段
// 列名来自 dto.Field 枚举，不会拼接调用方的原始输入
func (r *userRepository) UpdateField(ctx context.Context, id int64, field dto.Field, value string) (*dto.Result, error) {
	query := `UPDATE users SET ` + field.Column() + ` = ? WHERE user_id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), value, id)
	if err != nil {
		err = db.MapError(err)
		if ce, ok := db.AsConstraintError(err); ok {
			switch conflictField(ce.Detail) {
			case dto.FieldEmailID:
				return nil, apperror.Conflict("User with email ID '%s' already exists.", value)
			case dto.FieldUsername:
				return nil, apperror.Conflict("User with username '%s' already exists.", value)
			}
		}
		return nil, apperror.Internal(fmt.Sprintf("failed to update %s", field), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apperror.Internal("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, apperror.NotFound("User ID '%d' not found.", id)
	}

	return &dto.Result{
		Detail: fmt.Sprintf("%s updated successfully for user ID '%d'.", field.Label(), id),
	}, nil
}

// Delete 删除用户
func (r *userRepository) Delete(ctx context.Context, id int64) (*dto.Result, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(sqlDeleteUser), id)
	if err != nil {
		return nil, apperror.Internal("failed to delete user", db.MapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apperror.Internal("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, apperror.NotFound("User ID '%d' not found.", id)
	}

	return &dto.Result{
		Detail: fmt.Sprintf("User details deleted successfully for user ID '%d'.", id),
	}, nil
}

// conflictField 从唯一约束的 detail 中识别冲突列
// 取按空白切分后的第二段，依次匹配 email_id、username，先匹配者优先
func conflictField(detail string) dto.Field {
	tokens := strings.Fields(detail)
	if len(tokens) < 2 {
		return 0
	}

	switch token := tokens[1]; {
	case strings.Contains(token, "email_id"):
		return dto.FieldEmailID
	case strings.Contains(token, "username"):
		return dto.FieldUsername
	default:
		return 0
	}
}
