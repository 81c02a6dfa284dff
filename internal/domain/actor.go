package domain

// Role роль пользователя в системе
type Role string

const (
	RoleMember  Role = "member"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// Actor текущий пользователь, от имени которого выполняется операция
// Заполняется из заголовков доверенного gateway (аутентификация вне сервиса)
type Actor struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true if the actor has administrator rights
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsTrainer returns true if the actor is a trainer
func (a Actor) IsTrainer() bool {
	return a.Role == RoleTrainer
}

// ValidRole returns true if the role is one of the known roles
func ValidRole(r Role) bool {
	return r == RoleMember || r == RoleTrainer || r == RoleAdmin
}
