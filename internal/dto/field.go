package dto

import "strings"

// Field 允许通过更新接口修改的列
type Field int

const (
	FieldEmailID Field = iota + 1
	FieldUsername
	FieldPassword
	FieldFirstName
	FieldLastName
)

var fieldColumns = map[Field]string{
	FieldEmailID:   "email_id",
	FieldUsername:  "username",
	FieldPassword:  "password",
	FieldFirstName: "first_name",
	FieldLastName:  "last_name",
}

// ParseField 将列名解析为 Field
func ParseField(column string) (Field, bool) {
	for f, c := range fieldColumns {
		if c == column {
			return f, true
		}
	}
	return 0, false
}

// Column 返回列名
func (f Field) Column() string {
	return fieldColumns[f]
}

func (f Field) String() string {
	return f.Column()
}

// Label 返回用于提示信息的字段名
// first_name、last_name、email_id 下划线替换为空格，然后首字母大写
func (f Field) Label() string {
	name := f.Column()
	switch f {
	case FieldFirstName, FieldLastName, FieldEmailID:
		name = strings.ReplaceAll(name, "_", " ")
	}
	return capitalize(name)
}

// capitalize 首字母大写，其余小写
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
