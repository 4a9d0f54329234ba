package entity

import "time"

// Estados del ciclo de vida de un SubUser.
//
//	pending --approve--> approved   (terminal de éxito)
//	pending --reject--->  rejected  (terminal de fallo, requiere motivo)
//	approved --reject-->  rejected  (degradación permitida)
//
// Ninguna transición sale de rejected ni vuelve a pending.
const (
	SubUserStatusPending  = "pending"
	SubUserStatusApproved = "approved"
	SubUserStatusRejected = "rejected"
)

// SubUser es una cuenta delegada creada por un vendor o una tienda.
// Requiere aprobación de un admin antes de poder autenticarse.
// VendorID o StoreID refleja la identidad del creador; exactamente uno está presente.
type SubUser struct {
	ID              string
	FirstName       string
	LastName        string
	Email           string // único entre users y sub_users, en minúsculas
	Phone           string
	PasswordHash    string
	Status          string
	VendorID        string
	StoreID         string
	CreatedBy       string // User.ID del creador
	ApprovedBy      string
	RejectedBy      string
	RejectionReason string
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PendingSubUser es un SubUser pendiente con los nombres del creador y del
// tenant ya resueltos (para el listado de aprobación del admin).
type PendingSubUser struct {
	SubUser
	CreatorName string
	VendorName  string
	StoreName   string
}

// SubUserSummary son los conteos del dashboard de sub-usuarios. Las ventanas
// "recientes" son de 7 días.
type SubUserSummary struct {
	Total          int
	Pending        int
	Approved       int
	Rejected       int
	RecentCreated  int
	RecentApproved int
}
