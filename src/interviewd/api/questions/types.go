package questions

// CreateQuestionRequest is the POST /questions request body.
// Toggled and Notes are optional; toggled defaults to true.
type CreateQuestionRequest struct {
	User      string `json:"user"`
	Interview string `json:"interview"`
	Body      string `json:"body"`
	Toggled   *bool  `json:"toggled"`
	Notes     string `json:"notes"`
}

// UpdateQuestionRequest is the PATCH /questions request body.
// Toggled and Notes are optional; when omitted the stored values are kept.
type UpdateQuestionRequest struct {
	ID        string  `json:"id"`
	User      string  `json:"user"`
	Interview string  `json:"interview"`
	Body      string  `json:"body"`
	Toggled   *bool   `json:"toggled"`
	Notes     *string `json:"notes"`
}

// DeleteQuestionRequest is the DELETE /questions request body
type DeleteQuestionRequest struct {
	ID string `json:"id"`
}
