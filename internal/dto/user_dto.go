package dto

// ============================================================================
// 请求 DTO
// ============================================================================

// CreateUserDTO 创建用户
type CreateUserDTO struct {
	EmailID   string
	Username  string
	Password  string
	FirstName string
	LastName  *string
}

// UpdateUserDTO 更新单个字段
// Field 为调用方传入的原始字段名，校验后通过 Validate 得到 Field 枚举
type UpdateUserDTO struct {
	UserID int64
	Field  string
	Data   string
}

// ============================================================================
// 结果
// ============================================================================

// Result 仓储层统一返回结构
type Result struct {
	Detail string
	Data   any
}
