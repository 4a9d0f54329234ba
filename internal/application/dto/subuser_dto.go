package dto

import "time"

// CreateSubUserRequest cuerpo de POST /sub-users/create.
type CreateSubUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// UpdateSubUserRequest cuerpo de POST /sub-users/update/:id. Punteros: los
// campos ausentes no se tocan (update parcial).
type UpdateSubUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// RejectSubUserRequest cuerpo de POST /sub-users/reject/:id.
type RejectSubUserRequest struct {
	Reason string `json:"reason"`
}

// SubUserResponse representación de un sub-usuario. Nunca incluye el password.
type SubUserResponse struct {
	ID              string     `json:"id"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	Status          string     `json:"status"`
	VendorID        string     `json:"vendorId,omitempty"`
	StoreID         string     `json:"storeId,omitempty"`
	CreatedBy       string     `json:"createdBy"`
	ApprovedBy      string     `json:"approvedBy,omitempty"`
	RejectedBy      string     `json:"rejectedBy,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// PendingSubUserResponse fila del listado de aprobación del admin.
type PendingSubUserResponse struct {
	SubUserResponse
	CreatorName string `json:"creatorName,omitempty"`
	VendorName  string `json:"vendorName,omitempty"`
	StoreName   string `json:"storeName,omitempty"`
}

// SubUserListResponse listado de sub-usuarios.
type SubUserListResponse struct {
	Items []SubUserResponse `json:"items"`
}

// SubUserSummaryResponse conteos del dashboard.
type SubUserSummaryResponse struct {
	Total    int                   `json:"total"`
	Pending  int                   `json:"pending"`
	Approved int                   `json:"approved"`
	Rejected int                   `json:"rejected"`
	Recent   SubUserSummaryWindows `json:"recent"`
}

// SubUserSummaryWindows ventanas de 7 días del resumen.
type SubUserSummaryWindows struct {
	Created  int `json:"created"`
	Approved int `json:"approved"`
}
