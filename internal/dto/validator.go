package dto

import "user-service/internal/apperror"

// ============================================================================
// UpdateUserDTO 验证
// ============================================================================

// Validate 验证更新DTO，返回解析后的字段
func (d *UpdateUserDTO) Validate() (Field, error) {
	field, ok := ParseField(d.Field)
	if !ok {
		return 0, apperror.Validation("Invalid field '%s'.", d.Field)
	}
	return field, nil
}
