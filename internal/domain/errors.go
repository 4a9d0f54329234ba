package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrAccessDenied       = errors.New("acceso denegado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrAlreadyApproved    = errors.New("el sub-usuario ya fue aprobado")
	ErrAlreadyRejected    = errors.New("el sub-usuario ya fue rechazado")
	ErrRejectedIsFinal    = errors.New("no se puede aprobar un sub-usuario rechazado")
)

// ValidationError agrupa los campos o llaves inválidos de una petición.
// La validación es exhaustiva: el mensaje lista TODOS los campos con problema,
// no solo el primero.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validación: " + strings.Join(e.Fields, ", ")
}

// NewValidationError construye un ValidationError con los campos indicados.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidation informa si err es (o envuelve) un ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ReferentialBlockError indica que un borrado fue rechazado porque existen
// dependientes. Reporta los conteos exactos que bloquean la operación.
type ReferentialBlockError struct {
	IsDefault   bool
	StoreCount  int
	VendorCount int
	BillCount   int
}

func (e *ReferentialBlockError) Error() string {
	if e.IsDefault {
		return "no se puede eliminar el formato por defecto"
	}
	return fmt.Sprintf("formato en uso: %d tiendas, %d vendors, %d facturas",
		e.StoreCount, e.VendorCount, e.BillCount)
}

// AsReferentialBlock informa si err es (o envuelve) un ReferentialBlockError.
func AsReferentialBlock(err error) (*ReferentialBlockError, bool) {
	var rbe *ReferentialBlockError
	if errors.As(err, &rbe) {
		return rbe, true
	}
	return nil, false
}
