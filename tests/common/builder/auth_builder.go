//go:build unit || e2e

package builder

import (
	reqdto "roadready/internal/handler/dto/request"
)

// AuthBuilder produces the login and register bodies, which share a shape.
type AuthBuilder struct {
	email, password string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{email: "renter@example.com", password: "password123"}
}

func (b *AuthBuilder) WithEmail(email string) *AuthBuilder       { b.email = email; return b }
func (b *AuthBuilder) WithPassword(password string) *AuthBuilder { b.password = password; return b }

func (b *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{Email: b.email, Password: b.password}
}

func (b *AuthBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{Email: b.email, Password: b.password}
}
