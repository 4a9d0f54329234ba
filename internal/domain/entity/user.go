package entity

import "time"

// User representa una cuenta principal de la plataforma (admin, vendor o tienda).
// VendorID o StoreID se llena según el rol; nunca ambos.
type User struct {
	ID           string
	Role         int // domain.RoleAdmin, RoleCustomer, RoleVendor, RoleStore
	VendorID     string
	StoreID      string
	Email        string // almacenado en minúsculas
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	Name         string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
