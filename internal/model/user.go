package model

import "strconv"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// TelegramPasswordStub 通过机器人创建的用户没有可登录的密码
const TelegramPasswordStub = "-1"

// swagger:model User
type User struct {
	BaseModel
	Username    string `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Password    string `gorm:"size:100;not null" json:"-"`
	TgFlag      bool   `gorm:"default:false" json:"tgFlag"`
	TgFirstName string `gorm:"size:255" json:"tgFirstName,omitempty"`
	TgLastName  string `gorm:"size:255" json:"tgLastName,omitempty"`
	TgUsername  string `gorm:"size:255" json:"tgUsername,omitempty"`
	Roles       []Role `gorm:"many2many:user_roles;" json:"roles"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// swagger:model Role
type Role struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// TelegramProfile 聊天对端的外部身份
type TelegramProfile struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Username  string `json:"username,omitempty"`
}

// LocalUsername 机器人用户以 chat id 作为系统内用户名
func (p TelegramProfile) LocalUsername() string {
	return strconv.FormatInt(p.ID, 10)
}
