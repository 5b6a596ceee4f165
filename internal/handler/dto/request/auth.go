package request

import "roadready/internal/usecase/commands"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r LoginRequest) ToCommand() commands.LoginRequest {
	return commands.LoginRequest{Email: r.Email, Password: r.Password}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

func (r RegisterRequest) ToCommand() commands.RegisterRequest {
	return commands.RegisterRequest{Email: r.Email, Password: r.Password}
}
