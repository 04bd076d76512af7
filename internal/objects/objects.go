package objects

// ErrorResponse is the transport error envelope.
type ErrorResponse struct {
	Error Error `json:"error"`
}

type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// UserInfo is the user payload returned by auth endpoints. Password and
// permission internals never leave the server through this shape.
type UserInfo struct {
	ID          int      `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	Roles       []string `json:"roles"`
}
