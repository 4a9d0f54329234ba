package dto

// LoginRequest cuerpo de POST /auth/login y /auth/sub-user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido más la identidad básica del caller.
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Role     int    `json:"role"`
	VendorID string `json:"vendorId,omitempty"`
	StoreID  string `json:"storeId,omitempty"`
	SubUser  bool   `json:"subUser,omitempty"`
}
