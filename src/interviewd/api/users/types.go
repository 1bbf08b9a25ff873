package users

// CreateUserRequest is the POST /users request body
type CreateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// UpdateUserRequest is the PATCH /users request body.
// Password is optional: when omitted the stored hash is left untouched.
// DarkMode and InterviewFontSize are pointers so that absence can be told
// apart from false/zero.
type UpdateUserRequest struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Password          string `json:"password"`
	DarkMode          *bool  `json:"darkMode"`
	InterviewFontSize *int   `json:"interviewFontSize"`
}

// DeleteUserRequest is the DELETE /users request body
type DeleteUserRequest struct {
	ID string `json:"id"`
}
