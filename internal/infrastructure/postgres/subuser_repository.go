package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

var _ repository.SubUserRepository = (*SubUserRepo)(nil)

// SubUserRepo implementación del puerto SubUserRepository sobre PostgreSQL.
type SubUserRepo struct {
	q Querier
}

// NewSubUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubUserRepository(q Querier) *SubUserRepo {
	return &SubUserRepo{q: q}
}

const subUserColumns = `id, first_name, last_name, email, phone, password_hash, status,
	vendor_id, store_id, created_by, approved_by, rejected_by, rejection_reason,
	approved_at, rejected_at, created_at, updated_at`

// Create persiste un nuevo sub-usuario.
func (r *SubUserRepo) Create(su *entity.SubUser) error {
	query := `
		INSERT INTO sub_users (` + subUserColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		su.ID, su.FirstName, su.LastName, su.Email, su.Phone, su.PasswordHash, su.Status,
		su.VendorID, su.StoreID, su.CreatedBy, su.ApprovedBy, su.RejectedBy, su.RejectionReason,
		su.ApprovedAt, su.RejectedAt, su.CreatedAt, su.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert sub_user: %w", err)
	}
	return nil
}

// GetByID obtiene un sub-usuario por ID.
func (r *SubUserRepo) GetByID(id string) (*entity.SubUser, error) {
	query := `SELECT ` + subUserColumns + ` FROM sub_users WHERE id = $1`
	return scanSubUser(r.q.QueryRow(context.Background(), query, id), "get sub_user by id")
}

// GetByEmail obtiene un sub-usuario por email.
func (r *SubUserRepo) GetByEmail(email string) (*entity.SubUser, error) {
	query := `SELECT ` + subUserColumns + ` FROM sub_users WHERE email = $1 LIMIT 1`
	return scanSubUser(r.q.QueryRow(context.Background(), query, email), "get sub_user by email")
}

// ListByTenant lista los sub-usuarios del vendor o de la tienda.
func (r *SubUserRepo) ListByTenant(vendorID, storeID string) ([]*entity.SubUser, error) {
	query := `
		SELECT ` + subUserColumns + ` FROM sub_users
		WHERE ($1 = '' OR vendor_id = $1) AND ($2 = '' OR store_id = $2)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, vendorID, storeID)
	if err != nil {
		return nil, fmt.Errorf("list sub_users: %w", err)
	}
	defer rows.Close()
	return collectSubUsers(rows)
}

// ListByStatus filtra por estado; vendorID/storeID vacíos = sin scoping.
func (r *SubUserRepo) ListByStatus(vendorID, storeID, status string) ([]*entity.SubUser, error) {
	query := `
		SELECT ` + subUserColumns + ` FROM sub_users
		WHERE status = $3
		  AND ($1 = '' OR vendor_id = $1) AND ($2 = '' OR store_id = $2)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, vendorID, storeID, status)
	if err != nil {
		return nil, fmt.Errorf("list sub_users by status: %w", err)
	}
	defer rows.Close()
	return collectSubUsers(rows)
}

// ListPending devuelve los pendientes con los nombres del creador y del tenant
// ya resueltos, más antiguos primero (orden de cola de aprobación).
func (r *SubUserRepo) ListPending() ([]*entity.PendingSubUser, error) {
	query := `
		SELECT su.id, su.first_name, su.last_name, su.email, su.phone, su.password_hash, su.status,
		       su.vendor_id, su.store_id, su.created_by, su.approved_by, su.rejected_by, su.rejection_reason,
		       su.approved_at, su.rejected_at, su.created_at, su.updated_at,
		       COALESCE(u.name, ''), COALESCE(v.name, ''), COALESCE(s.store_name, '')
		FROM sub_users su
		LEFT JOIN users u ON u.id = su.created_by
		LEFT JOIN vendors v ON v.id = su.vendor_id
		LEFT JOIN stores s ON s.id = su.store_id
		WHERE su.status = 'pending'
		ORDER BY su.created_at ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list pending sub_users: %w", err)
	}
	defer rows.Close()

	var list []*entity.PendingSubUser
	for rows.Next() {
		var p entity.PendingSubUser
		if err := rows.Scan(
			&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.PasswordHash, &p.Status,
			&p.VendorID, &p.StoreID, &p.CreatedBy, &p.ApprovedBy, &p.RejectedBy, &p.RejectionReason,
			&p.ApprovedAt, &p.RejectedAt, &p.CreatedAt, &p.UpdatedAt,
			&p.CreatorName, &p.VendorName, &p.StoreName,
		); err != nil {
			return nil, fmt.Errorf("scan pending sub_user: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables de un sub-usuario.
func (r *SubUserRepo) Update(su *entity.SubUser) error {
	query := `
		UPDATE sub_users
		SET first_name = $2, last_name = $3, email = $4, phone = $5, password_hash = $6,
		    status = $7, approved_by = $8, rejected_by = $9, rejection_reason = $10,
		    approved_at = $11, rejected_at = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		su.ID, su.FirstName, su.LastName, su.Email, su.Phone, su.PasswordHash,
		su.Status, su.ApprovedBy, su.RejectedBy, su.RejectionReason,
		su.ApprovedAt, su.RejectedAt, su.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update sub_user: %w", err)
	}
	return nil
}

// Delete elimina un sub-usuario por ID.
func (r *SubUserRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sub_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sub_user: %w", err)
	}
	return nil
}

// EmailTaken informa si el email ya existe en users o en sub_users.
// El chequeo cruza ambas tablas: un sub-usuario no puede reusar el email de
// una cuenta principal ni viceversa.
func (r *SubUserRepo) EmailTaken(email, excludeSubUserID string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
		    OR EXISTS (SELECT 1 FROM sub_users WHERE email = $1 AND id <> $2)`
	var taken bool
	if err := r.q.QueryRow(context.Background(), query, email, excludeSubUserID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check email taken: %w", err)
	}
	return taken, nil
}

// ApproveIfPending aprueba solo si el estado actual es pending. El conteo de
// filas afectadas es la señal: 0 filas significa que otro admin llegó primero
// o que el sub-usuario ya no está pendiente.
func (r *SubUserRepo) ApproveIfPending(id, adminID string, now time.Time) (bool, error) {
	query := `
		UPDATE sub_users
		SET status = 'approved', approved_by = $2, approved_at = $3, updated_at = $3,
		    rejected_by = '', rejection_reason = '', rejected_at = NULL
		WHERE id = $1 AND status = 'pending'`
	tag, err := r.q.Exec(context.Background(), query, id, adminID, now)
	if err != nil {
		return false, fmt.Errorf("approve sub_user: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// RejectIfNotRejected rechaza salvo que ya esté rechazado. Rechazar un
// aprobado está permitido (degradación); re-rechazar no.
func (r *SubUserRepo) RejectIfNotRejected(id, adminID, reason string, now time.Time) (bool, error) {
	query := `
		UPDATE sub_users
		SET status = 'rejected', rejected_by = $2, rejection_reason = $3,
		    rejected_at = $4, updated_at = $4
		WHERE id = $1 AND status <> 'rejected'`
	tag, err := r.q.Exec(context.Background(), query, id, adminID, reason, now)
	if err != nil {
		return false, fmt.Errorf("reject sub_user: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Summary calcula los conteos del dashboard en una sola consulta con
// agregados FILTER. Ventana "reciente" = 7 días.
func (r *SubUserRepo) Summary(vendorID, storeID string) (*entity.SubUserSummary, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'approved'),
		       COUNT(*) FILTER (WHERE status = 'rejected'),
		       COUNT(*) FILTER (WHERE created_at >= now() - interval '7 days'),
		       COUNT(*) FILTER (WHERE approved_at >= now() - interval '7 days')
		FROM sub_users
		WHERE ($1 = '' OR vendor_id = $1) AND ($2 = '' OR store_id = $2)`
	var s entity.SubUserSummary
	err := r.q.QueryRow(context.Background(), query, vendorID, storeID).Scan(
		&s.Total, &s.Pending, &s.Approved, &s.Rejected, &s.RecentCreated, &s.RecentApproved,
	)
	if err != nil {
		return nil, fmt.Errorf("sub_user summary: %w", err)
	}
	return &s, nil
}

func scanSubUser(row pgx.Row, op string) (*entity.SubUser, error) {
	var su entity.SubUser
	err := row.Scan(
		&su.ID, &su.FirstName, &su.LastName, &su.Email, &su.Phone, &su.PasswordHash, &su.Status,
		&su.VendorID, &su.StoreID, &su.CreatedBy, &su.ApprovedBy, &su.RejectedBy, &su.RejectionReason,
		&su.ApprovedAt, &su.RejectedAt, &su.CreatedAt, &su.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &su, nil
}

func collectSubUsers(rows pgx.Rows) ([]*entity.SubUser, error) {
	var list []*entity.SubUser
	for rows.Next() {
		var su entity.SubUser
		if err := rows.Scan(
			&su.ID, &su.FirstName, &su.LastName, &su.Email, &su.Phone, &su.PasswordHash, &su.Status,
			&su.VendorID, &su.StoreID, &su.CreatedBy, &su.ApprovedBy, &su.RejectedBy, &su.RejectionReason,
			&su.ApprovedAt, &su.RejectedAt, &su.CreatedAt, &su.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sub_user: %w", err)
		}
		list = append(list, &su)
	}
	return list, rows.Err()
}
