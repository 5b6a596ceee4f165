package response

import (
	"time"

	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func FromUserView(v *queries.UserView) (*UserResponse, error) {
	var res UserResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromUserViews(vs []*queries.UserView) ([]*UserResponse, error) {
	res := make([]*UserResponse, 0, len(vs))
	if err := copier.Copy(&res, vs); err != nil {
		return nil, err
	}
	return res, nil
}
