package models

import "time"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

// Employee заполняется внешним импортом, движок только читает
type Employee struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	FullName       string    `gorm:"not null" json:"full_name"`
	Email          string    `gorm:"index" json:"email"`
	TelegramChatID *int64    `gorm:"uniqueIndex" json:"telegram_chat_id"`
	Role           Role      `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	IsActive       bool      `gorm:"not null;default:true;index" json:"is_active"`
	ManagerID      *uint     `gorm:"index" json:"manager_id"`

	Manager *Employee `gorm:"foreignKey:ManagerID" json:"-"`
}

// TableName задает имя таблицы в БД
func (Employee) TableName() string {
	return "employees"
}

// IsManagerOf проверяет, что other - прямой подчиненный
func (e *Employee) IsManagerOf(other *Employee) bool {
	return other != nil && other.ManagerID != nil && *other.ManagerID == e.ID
}

// CanDecide - роли, которым разрешено утверждать/отклонять заявки
func (e *Employee) CanDecide() bool {
	switch e.Role {
	case RoleManager, RoleHR, RoleAdmin:
		return true
	}
	return false
}

// IsManagerOnly - руководитель без расширенных прав (только свои подчиненные)
func (e *Employee) IsManagerOnly() bool {
	return e.Role == RoleManager
}

func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin || e.Role == RoleHR
}
