package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"user-service/internal/apperror"
	"user-service/internal/dto"
	"user-service/internal/model"
	"user-service/internal/repository"
	"user-service/pkg/redis"

	log "user-service/pkg/logger"
)

// ============================================================================
// UserService 接口
// ============================================================================

type UserService interface {
	// CreateUser 创建用户
	CreateUser(ctx context.Context, createDTO *dto.CreateUserDTO) (*dto.Result, error)

	// GetUser 根据ID获取用户详情
	GetUser(ctx context.Context, id int64) (*dto.Result, error)

	// GetUserID 根据用户名获取用户ID
	GetUserID(ctx context.Context, username string) (*dto.Result, error)

	// UpdateUser 更新用户单个字段
	UpdateUser(ctx context.Context, updateDTO *dto.UpdateUserDTO) (*dto.Result, error)

	// DeleteUser 删除用户
	DeleteUser(ctx context.Context, id int64) (*dto.Result, error)
}

// ============================================================================
// userService 实现
// ============================================================================

type userService struct {
	userRepo  repository.UserRepository
	userCache redis.UserCache
	hasher    PasswordHasher
	guard     cacheGuard
}

// NewUserService 创建UserService实例
func NewUserService(userRepo repository.UserRepository, userCache redis.UserCache, hasher PasswordHasher) UserService {
	if userCache == nil {
		userCache = redis.NewNoopUserCache()
	}
	if hasher == nil {
		hasher = plainHasher{}
	}
	return &userService{
		userRepo:  userRepo,
		userCache: userCache,
		hasher:    hasher,
	}
}

// ============================================================================
// CreateUser 创建用户
// ============================================================================

func (s *userService) CreateUser(ctx context.Context, createDTO *dto.CreateUserDTO) (*dto.Result, error) {
	hashed, err := s.hasher.Hash(createDTO.Password)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	params := *createDTO
	params.Password = hashed

	result, err := s.userRepo.Create(ctx, &params)
	if err != nil {
		return nil, err
	}

	log.Info("用户创建成功", zap.String("username", createDTO.Username))
	return result, nil
}

// ============================================================================
// GetUser 获取用户详情（优先缓存）
// ============================================================================

func (s *userService) GetUser(ctx context.Context, id int64) (*dto.Result, error) {
	// 1. 缓存可能残留旧数据时先重新删除，仍失败则本次绕过缓存
	if s.guard.isStale(id) {
		version := s.guard.version(id)
		if err := s.userCache.DeleteUser(ctx, id); err != nil {
			log.Debug("用户缓存待失效，直接查询存储", zap.Error(err), zap.Int64("user_id", id))
			return s.userRepo.GetByID(ctx, id)
		}
		if !s.guard.clearStale(id, version) {
			return s.userRepo.GetByID(ctx, id)
		}
	}

	// 2. 查缓存，失败降级到存储
	cached, err := s.userCache.GetUser(ctx, id)
	if err != nil {
		log.Warn("读取用户缓存失败，降级查询存储", zap.Error(err), zap.Int64("user_id", id))
	}
	if cached != nil {
		return userResult(id, cached), nil
	}

	// 3. 查存储
	version := s.guard.version(id)
	result, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 4. 回填缓存，期间有写入则放弃，失败不影响主流程
	if user, ok := result.Data.(*model.User); ok && s.guard.version(id) == version {
		if err := s.userCache.SetUser(ctx, user); err != nil {
			log.Debug("回填用户缓存失败", zap.Error(err), zap.Int64("user_id", id))
		}
	}

	log.Debug("获取用户信息成功", zap.Int64("user_id", id))
	return result, nil
}

// userResult 使用与仓储层一致的文案构造结果
func userResult(id int64, user *model.User) *dto.Result {
	return &dto.Result{
		Detail: fmt.Sprintf("Details for user ID '%d' fetched successfully.", id),
		Data:   user,
	}
}

// ============================================================================
// GetUserID 根据用户名获取ID
// ============================================================================

func (s *userService) GetUserID(ctx context.Context, username string) (*dto.Result, error) {
	return s.userRepo.GetIDByUsername(ctx, username)
}

// ============================================================================
// UpdateUser 更新字段
// ============================================================================

func (s *userService) UpdateUser(ctx context.Context, updateDTO *dto.UpdateUserDTO) (*dto.Result, error) {
	// 1. 验证字段
	field, err := updateDTO.Validate()
	if err != nil {
		log.Warn("更新字段验证失败",
			zap.Int64("user_id", updateDTO.UserID),
			zap.String("field", updateDTO.Field))
		return nil, err
	}

	value := updateDTO.Data
	if field == dto.FieldPassword {
		if value, err = s.hasher.Hash(value); err != nil {
			return nil, apperror.Internal("failed to hash password", err)
		}
	}

	// 2. 写入前后各删除一次缓存
	s.evictUser(ctx, updateDTO.UserID)
	result, err := s.userRepo.UpdateField(ctx, updateDTO.UserID, field, value)
	if err != nil {
		return nil, err
	}
	s.evictAfterWrite(ctx, updateDTO.UserID)

	log.Info("更新用户成功",
		zap.Int64("user_id", updateDTO.UserID),
		zap.String("field", field.Column()))
	return result, nil
}

// ============================================================================
// DeleteUser 删除用户
// ============================================================================

func (s *userService) DeleteUser(ctx context.Context, id int64) (*dto.Result, error) {
	s.evictUser(ctx, id)
	result, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.evictAfterWrite(ctx, id)

	log.Info("删除用户成功", zap.Int64("user_id", id))
	return result, nil
}

// ============================================================================
// 缓存失效
// ============================================================================

// evictUser 使进行中的回填失效并删除缓存，返回删除是否成功
func (s *userService) evictUser(ctx context.Context, id int64) bool {
	s.guard.bump(id)
	if err := s.userCache.DeleteUser(ctx, id); err != nil {
		log.Warn("删除用户缓存失败", zap.Error(err), zap.Int64("user_id", id))
		return false
	}
	return true
}

// evictAfterWrite 写入成功后再次删除缓存，失败时该用户绕过缓存直到删除成功
func (s *userService) evictAfterWrite(ctx context.Context, id int64) {
	if !s.evictUser(ctx, id) {
		s.guard.markStale(id)
	}
}
