package models

// RoleName identifies a capability bucket. The universe of roles is fixed;
// membership checks go through typed constants rather than raw strings.
type RoleName string

const (
	RoleSuperadmin RoleName = "superadmin"
	RoleAdmin      RoleName = "admin"
	RoleUser       RoleName = "user"
)

// AllRoles lists every role the system knows about, in privilege order.
var AllRoles = []RoleName{RoleSuperadmin, RoleAdmin, RoleUser}

// Valid reports whether the name is one of the known roles.
func (n RoleName) Valid() bool {
	switch n {
	case RoleSuperadmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// Role is a named capability bucket assignable to users.
type Role struct {
	ID   uint     `gorm:"primaryKey" json:"id"`
	Name RoleName `gorm:"type:varchar(32);unique;not null" json:"name"`
}
