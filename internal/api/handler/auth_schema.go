package handler

// credentialsRequest is the body shared by register, signup and login.
type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// messageResponse is also the error envelope rendered by the API error handler.
type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type meResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
