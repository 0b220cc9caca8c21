package model

import "time"

// User users 表的一行
type User struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	EmailID   string    `db:"email_id" json:"email_id"`
	Username  string    `db:"username" json:"username"`
	Password  string    `db:"password" json:"password"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  *string   `db:"last_name" json:"last_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
