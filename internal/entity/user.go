package entity

type User struct {
	Base
	Email string `gorm:"unique"`
	Name  string
	Role  string `gorm:"default:USER"`
	Bio   string

	// Running totals, kept in sync with points_logs and donations inside
	// the same transaction that writes those rows.
	ParticipationCount int
	DonationPoints     int

	HasApplied   bool
	ReferralCode string `gorm:"unique"`
}

const (
	SuperAdminRole = "SUPER_ADMIN"
	AdminRole      = "ADMIN"
	UserRole       = "USER"
)

var GlobalAdminRoles = []string{SuperAdminRole, AdminRole}
