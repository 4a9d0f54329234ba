package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Counts solo se llena en errores de borrado bloqueado por referencias.
	Counts *BlockingCounts `json:"counts,omitempty"`
}

// BlockingCounts conteos que bloquean el borrado de un formato.
type BlockingCounts struct {
	Stores  int `json:"stores"`
	Vendors int `json:"vendors"`
	Bills   int `json:"bills"`
}
