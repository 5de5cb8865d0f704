package entities

import "time"

// Invite binds a not-yet-registered e-mail to a role. It can be used once.
type Invite struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Used      bool      `json:"used"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i Invite) Active(now time.Time) bool {
	return !i.Used && now.Before(i.ExpiresAt)
}
