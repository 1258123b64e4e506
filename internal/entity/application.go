package entity

type ApplicationStatus string

const (
	ApplicationReceived  ApplicationStatus = "received"
	ApplicationReviewing ApplicationStatus = "reviewing"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
)

type VolunteerApplication struct {
	Base
	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	FirstName string
	LastName  string
	Email     string
	Phone     string
	Position  string
	ResumeURL string

	AgreedToTerms bool
	Status        ApplicationStatus
}
