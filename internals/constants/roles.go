package constants

// Role dari token identity provider (lowercase di klaim JWT).
const (
	RoleAdmin     = "admin"
	RoleTeacher   = "teacher"
	RoleStudent   = "student"
	RoleCurator   = "curator"
	RoleModerator = "moderator"
)

// Role yang disimpan di kolom user_role (uppercase, mengikuti enum DB).
const (
	UserRoleStudent = "STUDENT"
	UserRoleTeacher = "TEACHER"
)

var AllowedUserRoles = map[string]struct{}{
	UserRoleStudent: {},
	UserRoleTeacher: {},
}
