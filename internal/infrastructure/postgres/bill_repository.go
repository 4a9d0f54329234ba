package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implementación del puerto BillRepository sobre PostgreSQL.
// Las líneas de producto se persisten como jsonb.
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, store_id, customer_name, customer_email, customer_phone, products,
	subtotal, discount, discount_percent, tax, tax_percent, total, notes,
	invoice_format_id, invoice_type, created_at`

// Create persiste una factura.
func (r *BillRepo) Create(b *entity.Bill) error {
	products, err := json.Marshal(b.Products)
	if err != nil {
		return fmt.Errorf("marshal bill products: %w", err)
	}
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.q.Exec(context.Background(), query,
		b.ID, b.StoreID, b.CustomerName, b.CustomerEmail, b.CustomerPhone, products,
		b.Subtotal, b.Discount, b.DiscountPercent, b.Tax, b.TaxPercent, b.Total, b.Notes,
		b.InvoiceFormatID, b.InvoiceType, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *BillRepo) GetByID(id string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`
	var b entity.Bill
	var products []byte
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.StoreID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &products,
		&b.Subtotal, &b.Discount, &b.DiscountPercent, &b.Tax, &b.TaxPercent, &b.Total, &b.Notes,
		&b.InvoiceFormatID, &b.InvoiceType, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill by id: %w", err)
	}
	if err := json.Unmarshal(products, &b.Products); err != nil {
		return nil, fmt.Errorf("unmarshal bill products: %w", err)
	}
	return &b, nil
}

// ListByStore lista facturas de una tienda, más recientes primero.
func (r *BillRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Bill, error) {
	query := `
		SELECT ` + billColumns + ` FROM bills
		WHERE store_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var list []*entity.Bill
	for rows.Next() {
		var b entity.Bill
		var products []byte
		if err := rows.Scan(
			&b.ID, &b.StoreID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &products,
			&b.Subtotal, &b.Discount, &b.DiscountPercent, &b.Tax, &b.TaxPercent, &b.Total, &b.Notes,
			&b.InvoiceFormatID, &b.InvoiceType, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		if err := json.Unmarshal(products, &b.Products); err != nil {
			return nil, fmt.Errorf("unmarshal bill products: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
