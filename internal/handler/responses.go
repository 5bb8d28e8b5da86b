package handler

type SuccessResponse struct {
	Message string `json:"message" example:"User created successfully"`
}
type ErrorResponse struct {
	Error string `json:"error" example:"error cause and description"`
}
type LoginSuccessResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
