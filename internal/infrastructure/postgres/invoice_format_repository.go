package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

var _ repository.InvoiceFormatRepository = (*InvoiceFormatRepo)(nil)

// InvoiceFormatRepo implementación del puerto InvoiceFormatRepository sobre
// PostgreSQL: formatos más las dos tablas de asignación.
type InvoiceFormatRepo struct {
	q Querier
}

// NewInvoiceFormatRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceFormatRepository(q Querier) *InvoiceFormatRepo {
	return &InvoiceFormatRepo{q: q}
}

const formatColumns = `id, name, description, header_template, template, footer_template, is_default, created_at, updated_at`

// Create persiste un formato nuevo.
func (r *InvoiceFormatRepo) Create(f *entity.InvoiceFormat) error {
	query := `
		INSERT INTO invoice_formats (` + formatColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.Name, f.Description, f.HeaderTemplate, f.Template, f.FooterTemplate,
		f.IsDefault, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice_format: %w", err)
	}
	return nil
}

// GetByID obtiene un formato por ID.
func (r *InvoiceFormatRepo) GetByID(id string) (*entity.InvoiceFormat, error) {
	query := `SELECT ` + formatColumns + ` FROM invoice_formats WHERE id = $1`
	return scanFormat(r.q.QueryRow(context.Background(), query, id), "get invoice_format by id")
}

// GetByName obtiene un formato por nombre (único).
func (r *InvoiceFormatRepo) GetByName(name string) (*entity.InvoiceFormat, error) {
	query := `SELECT ` + formatColumns + ` FROM invoice_formats WHERE name = $1`
	return scanFormat(r.q.QueryRow(context.Background(), query, name), "get invoice_format by name")
}

// List lista todos los formatos, default primero.
func (r *InvoiceFormatRepo) List() ([]*entity.InvoiceFormat, error) {
	query := `SELECT ` + formatColumns + ` FROM invoice_formats ORDER BY is_default DESC, name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list invoice_formats: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoiceFormat
	for rows.Next() {
		var f entity.InvoiceFormat
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Description, &f.HeaderTemplate, &f.Template, &f.FooterTemplate,
			&f.IsDefault, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice_format: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Update actualiza un formato.
func (r *InvoiceFormatRepo) Update(f *entity.InvoiceFormat) error {
	query := `
		UPDATE invoice_formats
		SET name = $2, description = $3, header_template = $4, template = $5,
		    footer_template = $6, is_default = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.Name, f.Description, f.HeaderTemplate, f.Template, f.FooterTemplate,
		f.IsDefault, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update invoice_format: %w", err)
	}
	return nil
}

// Delete elimina un formato (el guard de referencias vive en el caso de uso).
func (r *InvoiceFormatRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoice_formats WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice_format: %w", err)
	}
	return nil
}

// GetDefault devuelve el formato default, o (nil, nil) si no hay.
func (r *InvoiceFormatRepo) GetDefault() (*entity.InvoiceFormat, error) {
	query := `SELECT ` + formatColumns + ` FROM invoice_formats WHERE is_default = TRUE LIMIT 1`
	return scanFormat(r.q.QueryRow(context.Background(), query), "get default invoice_format")
}

// ClearDefault apaga el flag en todos los formatos.
func (r *InvoiceFormatRepo) ClearDefault() error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoice_formats SET is_default = FALSE, updated_at = now() WHERE is_default = TRUE`)
	if err != nil {
		return fmt.Errorf("clear default invoice_format: %w", err)
	}
	return nil
}

// MarkDefault enciende el flag en el formato indicado.
func (r *InvoiceFormatRepo) MarkDefault(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoice_formats SET is_default = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark default invoice_format: %w", err)
	}
	return nil
}

// UsageCounts cuenta referencias al formato en las tres tablas en una sola
// consulta.
func (r *InvoiceFormatRepo) UsageCounts(formatID string) (stores, vendors, bills int, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM store_invoice_formats WHERE format_id = $1),
			(SELECT COUNT(*) FROM vendor_invoice_formats WHERE format_id = $1),
			(SELECT COUNT(*) FROM bills WHERE invoice_format_id = $1)`
	if err = r.q.QueryRow(context.Background(), query, formatID).Scan(&stores, &vendors, &bills); err != nil {
		return 0, 0, 0, fmt.Errorf("invoice_format usage counts: %w", err)
	}
	return stores, vendors, bills, nil
}

// AssignToStore asigna el formato a la tienda (upsert sobre store_id).
func (r *InvoiceFormatRepo) AssignToStore(storeID, formatID string) error {
	query := `
		INSERT INTO store_invoice_formats (store_id, format_id, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (store_id)
		DO UPDATE SET format_id = EXCLUDED.format_id, updated_at = now()`
	if _, err := r.q.Exec(context.Background(), query, storeID, formatID); err != nil {
		return fmt.Errorf("assign invoice_format to store: %w", err)
	}
	return nil
}

// AssignToVendor asigna el formato al vendor (upsert sobre vendor_id).
func (r *InvoiceFormatRepo) AssignToVendor(vendorID, formatID string) error {
	query := `
		INSERT INTO vendor_invoice_formats (vendor_id, format_id, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (vendor_id)
		DO UPDATE SET format_id = EXCLUDED.format_id, updated_at = now()`
	if _, err := r.q.Exec(context.Background(), query, vendorID, formatID); err != nil {
		return fmt.Errorf("assign invoice_format to vendor: %w", err)
	}
	return nil
}

// GetStoreAssignment devuelve la asignación de la tienda, o (nil, nil).
func (r *InvoiceFormatRepo) GetStoreAssignment(storeID string) (*entity.StoreInvoiceFormat, error) {
	query := `SELECT store_id, format_id, updated_at FROM store_invoice_formats WHERE store_id = $1`
	var a entity.StoreInvoiceFormat
	err := r.q.QueryRow(context.Background(), query, storeID).Scan(&a.StoreID, &a.FormatID, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store assignment: %w", err)
	}
	return &a, nil
}

// GetVendorAssignment devuelve la asignación del vendor, o (nil, nil).
func (r *InvoiceFormatRepo) GetVendorAssignment(vendorID string) (*entity.VendorInvoiceFormat, error) {
	query := `SELECT vendor_id, format_id, updated_at FROM vendor_invoice_formats WHERE vendor_id = $1`
	var a entity.VendorInvoiceFormat
	err := r.q.QueryRow(context.Background(), query, vendorID).Scan(&a.VendorID, &a.FormatID, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor assignment: %w", err)
	}
	return &a, nil
}

// ListStoreAssignments lista todas las asignaciones por tienda.
func (r *InvoiceFormatRepo) ListStoreAssignments() ([]entity.StoreInvoiceFormat, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT store_id, format_id, updated_at FROM store_invoice_formats ORDER BY store_id`)
	if err != nil {
		return nil, fmt.Errorf("list store assignments: %w", err)
	}
	defer rows.Close()

	var list []entity.StoreInvoiceFormat
	for rows.Next() {
		var a entity.StoreInvoiceFormat
		if err := rows.Scan(&a.StoreID, &a.FormatID, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store assignment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// ListVendorAssignments lista todas las asignaciones por vendor.
func (r *InvoiceFormatRepo) ListVendorAssignments() ([]entity.VendorInvoiceFormat, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT vendor_id, format_id, updated_at FROM vendor_invoice_formats ORDER BY vendor_id`)
	if err != nil {
		return nil, fmt.Errorf("list vendor assignments: %w", err)
	}
	defer rows.Close()

	var list []entity.VendorInvoiceFormat
	for rows.Next() {
		var a entity.VendorInvoiceFormat
		if err := rows.Scan(&a.VendorID, &a.FormatID, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor assignment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanFormat(row pgx.Row, op string) (*entity.InvoiceFormat, error) {
	var f entity.InvoiceFormat
	err := row.Scan(
		&f.ID, &f.Name, &f.Description, &f.HeaderTemplate, &f.Template, &f.FooterTemplate,
		&f.IsDefault, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &f, nil
}
