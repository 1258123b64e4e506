package model

type SubmitApplicationRequest struct {
	// All fields arrive as multipart form-data; the resume file is read
	// from the request directly.
}

type SubmitApplicationResponse struct {
	ApplicationID string      `json:"application_id"`
	Data          Application `json:"data"`
}

type Application struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Position  string `json:"position"`
	ResumeURL string `json:"resume_url,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
