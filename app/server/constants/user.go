package constants

const (
	UserRoleAdmin = "admin"
	UserRoleUser  = "user"
)
