package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher 密码处理策略
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// plainHasher 原样保存密码（默认）
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return password, nil }

// bcryptHasher 使用 bcrypt 保存密码
type bcryptHasher struct {
	cost int
}

func (h bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// NewPasswordHasher 根据配置创建密码处理策略：none（默认）、bcrypt
func NewPasswordHasher(mode string) (PasswordHasher, error) {
	switch mode {
	case "", "none":
		return plainHasher{}, nil
	case "bcrypt":
		return bcryptHasher{cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("不支持的密码处理方式: %s", mode)
	}
}
