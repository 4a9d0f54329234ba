package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más la identidad de la aplicación.
// Role viaja como código entero (admin=0, customer=1, vendor=2, store=3) para
// que los middlewares puedan decidir sin consultar la DB. VendorID o StoreID
// se llena según el rol; SubUser marca tokens emitidos a cuentas delegadas.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Role     int    `json:"role"`
	VendorID string `json:"vendor_id,omitempty"`
	StoreID  string `json:"store_id,omitempty"`
	SubUser  bool   `json:"sub_user,omitempty"`
}

// Identity son los campos propios extraídos de un token válido.
type Identity struct {
	UserID   string
	Role     int
	VendorID string
	StoreID  string
	SubUser  bool
}

// Generate genera un token JWT firmado con la identidad indicada.
func Generate(secret, issuer string, expMinutes int, ident Identity) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   ident.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:   ident.UserID,
		Role:     ident.Role,
		VendorID: ident.VendorID,
		StoreID:  ident.StoreID,
		SubUser:  ident.SubUser,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	return Identity{
		UserID:   claims.UserID,
		Role:     claims.Role,
		VendorID: claims.VendorID,
		StoreID:  claims.StoreID,
		SubUser:  claims.SubUser,
	}, nil
}
