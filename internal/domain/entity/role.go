package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDAdmin   = 1
	RoleIDDoctor  = 2
	RoleIDPatient = 3
)

// Role name constants
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// Capability is a named permission. Authorization checks ask whether a role
// carries a capability instead of comparing role strings in handlers.
type Capability string

const (
	// CapBookCare covers patient actions: booking appointments, ordering
	// medicines and lab tests, managing their own profile.
	CapBookCare Capability = "book_care"

	// CapTreatPatients covers doctor actions: managing their weekly
	// availability and transitioning their own appointments.
	CapTreatPatients Capability = "treat_patients"

	// CapAdminister covers admin actions: catalog management, user
	// management, statistics and the audit trail.
	CapAdminister Capability = "administer"
)

var roleCapabilities = map[int]map[Capability]bool{
	RoleIDAdmin: {
		CapAdminister: true,
	},
	RoleIDDoctor: {
		CapTreatPatients: true,
	},
	RoleIDPatient: {
		CapBookCare: true,
	},
}

// RoleCan reports whether the role identified by roleID carries the given
// capability. Unknown role IDs carry nothing.
func RoleCan(roleID int, c Capability) bool {
	caps, ok := roleCapabilities[roleID]
	if !ok {
		return false
	}
	return caps[c]
}

// RoleNameByID maps a role ID to its canonical name, empty for unknown IDs.
func RoleNameByID(roleID int) string {
	switch roleID {
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDDoctor:
		return RoleDoctor
	case RoleIDPatient:
		return RolePatient
	}
	return ""
}
