package v1

import (
	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/models"
)

type UserSignup struct {
	Username string `json:"username" binding:"required" example:"Emma Richardson"`
	Email    string `json:"email" binding:"required,email" example:"emma@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"` // At least 8 characters
}

type UserLogin struct {
	Email    string `json:"email" binding:"required" example:"emma@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

type User struct {
	models.DefaultModel
	Username string `json:"username" example:"Emma Richardson"`
	Email    string `json:"email" example:"emma@example.com"`
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		Username:     model.Username,
		Email:        model.Email,
	}
}

type UserResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *User   `json:"data"`                                                          // Data for the user
}

type SessionData struct {
	User  User       `json:"user"`  // The authenticated user
	Token auth.Token `json:"token"` // Bearer token for the Authorization header
}

type SessionResponse struct {
	Error *string      `json:"error" example:"the email address or password is incorrect"` // The error, if any occurred
	Data  *SessionData `json:"data"`                                                       // The user and token
}
