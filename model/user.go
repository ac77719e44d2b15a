package model

import "time"

type Role string

const (
	RoleStudent   Role = "student"
	RoleTeacher   Role = "teacher"
	RoleCounselor Role = "counselor"
	RoleLibrarian Role = "librarian"
	RoleAdmin     Role = "admin"
)

// StaffRoles may act on dashboards; students only appear as joined
// display attributes on issues and counseling requests.
var StaffRoles = []Role{RoleTeacher, RoleCounselor, RoleLibrarian, RoleAdmin}

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	StudentNo *string   `json:"student_no,omitempty"`
	ClassName *string   `json:"class_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
