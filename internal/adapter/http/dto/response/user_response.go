package response

import (
	"time"

	"repairdesk/internal/domain/entities"
)

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

func FromUser(u entities.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
}

func FromUsers(users []entities.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}

// InviteResponse includes the token: delivering it to the invitee is the
// caller's job.
type InviteResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func FromInvite(i entities.Invite) InviteResponse {
	return InviteResponse{ID: i.ID, Email: i.Email, Role: string(i.Role), Token: i.Token, ExpiresAt: i.ExpiresAt}
}
