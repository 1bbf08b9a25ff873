package interviews

// CreateInterviewRequest is the POST /interviews request body
type CreateInterviewRequest struct {
	User  string `json:"user"`
	Title string `json:"title"`
}

// UpdateInterviewRequest is the PATCH /interviews request body
type UpdateInterviewRequest struct {
	ID    string `json:"id"`
	User  string `json:"user"`
	Title string `json:"title"`
}

// DeleteInterviewRequest is the DELETE /interviews request body
type DeleteInterviewRequest struct {
	ID string `json:"id"`
}
