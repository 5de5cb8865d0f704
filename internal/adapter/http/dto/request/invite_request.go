package request

type CreateInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=admin semiadmin technician viewer"`
}

type AcceptInviteRequest struct {
	Token string `json:"token" binding:"required"`
}
