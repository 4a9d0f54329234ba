package entity

import "time"

// Store es una tienda del marketplace. Aquí solo se usan los campos que
// necesitan los chequeos de existencia y la resolución de nombres.
type Store struct {
	ID        string
	StoreName string
	Email     string
	Status    string
	CreatedAt time.Time
}

// Vendor es un vendedor del marketplace.
type Vendor struct {
	ID        string
	Name      string
	Email     string
	Status    string
	CreatedAt time.Time
}
