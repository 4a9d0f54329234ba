package entity

// ValidMenuKeys es el catálogo fijo de llaves de menú. No se persiste: acota
// toda operación de permisos. El orden es el que espera el frontend.
var ValidMenuKeys = []string{
	"Vendors",
	"Vendor",
	"Stores",
	"Categories",
	"Products",
	"Customer",
	"Subscriptions",
	"Orders",
	"Inventory",
	"Billing",
	"Settings",
}

// MenuRegistry es el catálogo de llaves más el valor por defecto para llaves
// sin fila persistida. Es un valor inmutable que se inyecta al autorizador en
// su construcción, en lugar de condicionales dispersos.
//
// La asimetría es deliberada y debe preservarse: los sub-usuarios NO son
// confiables por defecto (false); las tiendas SÍ (true).
type MenuRegistry struct {
	Keys           []string
	DefaultEnabled bool
}

// Valid informa si key pertenece al catálogo.
func (r MenuRegistry) Valid(key string) bool {
	for _, k := range r.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// SubUserMenuRegistry catálogo para permisos de sub-usuario (default false).
func SubUserMenuRegistry() MenuRegistry {
	return MenuRegistry{Keys: ValidMenuKeys, DefaultEnabled: false}
}

// StoreMenuRegistry catálogo para permisos de tienda (default true).
func StoreMenuRegistry() MenuRegistry {
	return MenuRegistry{Keys: ValidMenuKeys, DefaultEnabled: true}
}

// MenuPermission es una fila (sujeto, llave) -> enabled. El sujeto puede ser un
// sub-usuario o una tienda según la tabla de origen. La ausencia de fila
// significa "no establecido explícitamente" y se resuelve con el default del
// registry en el read path.
type MenuPermission struct {
	SubjectID string
	MenuKey   string
	Enabled   bool
}
