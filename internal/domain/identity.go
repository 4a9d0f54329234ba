package domain

// Códigos de rol heredados del frontend: se comparan como enteros en el token.
const (
	RoleAdmin    = 0
	RoleCustomer = 1
	RoleVendor   = 2
	RoleStore    = 3
)

// Identity es la identidad del caller, construida UNA sola vez en el middleware
// de autenticación a partir de los claims del JWT. Evita el null-coalescing
// repetido de "vendorId o storeId" en cada operación.
type Identity struct {
	UserID   string
	Role     int
	VendorID string
	StoreID  string
}

// IsAdmin informa si el caller es administrador de la plataforma.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// IsTenant informa si el caller es un tenant (vendor o tienda) con identidad propia.
func (i Identity) IsTenant() bool {
	return (i.Role == RoleVendor && i.VendorID != "") || (i.Role == RoleStore && i.StoreID != "")
}

// TenantID devuelve el id del tenant: VendorID si está presente, si no StoreID.
func (i Identity) TenantID() string {
	if i.VendorID != "" {
		return i.VendorID
	}
	return i.StoreID
}
