package entities

// User - учётная запись из /admin/users/. Пароль сюда не попадает никогда.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

func (u User) RoleLabel() string {
	if u.IsStaff {
		return "Administrateur"
	}
	return "Technicien"
}
