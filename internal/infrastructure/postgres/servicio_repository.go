package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-app/internal/domain"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
	"github.com/jhoicas/catalogo-app/internal/domain/repository"
)

var _ repository.ServicioRepository = (*ServicioRepo)(nil)

const servicioColumns = `s.id, s.nombre, s.descripcion, s.activo, s.created_at, s.updated_at`

// ServicioRepo implementación del puerto ServicioRepository sobre PostgreSQL (usable con pool o tx).
type ServicioRepo struct {
	q Querier
}

// NewServicioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServicioRepository(q Querier) *ServicioRepo {
	return &ServicioRepo{q: q}
}

// Create inserta el servicio (sin vínculos) y asigna ID y timestamps.
func (r *ServicioRepo) Create(ctx context.Context, s *entity.Servicio) error {
	query := `
		INSERT INTO servicios (nombre, descripcion, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, s.Nombre, s.Descripcion, s.Activo, s.CreatedAt, s.UpdatedAt).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert servicio: %w", err)
	}
	return nil
}

// GetByID obtiene un servicio con sus categorías; nil, nil si no existe.
func (r *ServicioRepo) GetByID(ctx context.Context, id int) (*entity.Servicio, error) {
	return r.getOne(ctx, `SELECT `+servicioColumns+` FROM servicios s WHERE s.id = $1`, id)
}

// GetByNombre obtiene un servicio por nombre exacto.
func (r *ServicioRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Servicio, error) {
	return r.getOne(ctx, `SELECT `+servicioColumns+` FROM servicios s WHERE s.nombre = $1`, nombre)
}

// Update reescribe las columnas editables (no toca los vínculos).
func (r *ServicioRepo) Update(ctx context.Context, s *entity.Servicio) error {
	query := `
		UPDATE servicios SET nombre = $2, descripcion = $3, activo = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, s.ID, s.Nombre, s.Descripcion, s.Activo, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update servicio: %w", err)
	}
	return nil
}

// ReplaceCategorias borra los vínculos actuales e inserta el conjunto nuevo.
// Debe correr dentro de la transacción de TxRunner.RunServicio.
func (r *ServicioRepo) ReplaceCategorias(ctx context.Context, servicioID int, categoriaIDs []int) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM servicio_categorias WHERE servicio_id = $1`, servicioID); err != nil {
		return fmt.Errorf("delete servicio_categorias: %w", err)
	}
	if len(categoriaIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO servicio_categorias (servicio_id, categoria_id)
		SELECT $1, unnest($2::int[])
		ON CONFLICT DO NOTHING`
	if _, err := r.q.Exec(ctx, query, servicioID, categoriaIDs); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert servicio_categorias: %w", err)
	}
	return nil
}

// List lista con filtros, ordenado por nombre. CategoriaID filtra por el vínculo N:N.
func (r *ServicioRepo) List(ctx context.Context, f repository.ServicioListFilter) ([]*entity.Servicio, error) {
	query := `
		SELECT ` + servicioColumns + `
		FROM servicios s
		WHERE ($1 = FALSE OR s.activo)
		  AND ($2 = 0 OR EXISTS (
		      SELECT 1 FROM servicio_categorias sc WHERE sc.servicio_id = s.id AND sc.categoria_id = $2))
		ORDER BY s.nombre, s.id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.SoloActivos, f.CategoriaID, f.Limit, f.Skip)
	if err != nil {
		return nil, fmt.Errorf("list servicios: %w", err)
	}
	defer rows.Close()
	list := []*entity.Servicio{}
	for rows.Next() {
		s, err := scanServicio(rows)
		if err != nil {
			return nil, fmt.Errorf("scan servicio: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadCategorias(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Count cuenta todos o solo los activos.
func (r *ServicioRepo) Count(ctx context.Context, soloActivos bool) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM servicios WHERE ($1 = FALSE OR activo)`, soloActivos).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count servicios: %w", err)
	}
	return n, nil
}

// Delete elimina por ID; servicio_categorias se limpia por ON DELETE CASCADE.
func (r *ServicioRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM servicios WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete servicio: %w", err)
	}
	return nil
}

func (r *ServicioRepo) getOne(ctx context.Context, query string, arg any) (*entity.Servicio, error) {
	s, err := scanServicio(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get servicio: %w", err)
	}
	if err := r.loadCategorias(ctx, []*entity.Servicio{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// loadCategorias resuelve en una sola consulta las categorías de todos los servicios de list.
func (r *ServicioRepo) loadCategorias(ctx context.Context, list []*entity.Servicio) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]int, 0, len(list))
	byID := make(map[int]*entity.Servicio, len(list))
	for _, s := range list {
		s.Categorias = []entity.CategoriaSimple{}
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}

	query := `
		SELECT sc.servicio_id, c.id, c.nombre, c.icono, c.activo
		FROM servicio_categorias sc
		JOIN categorias c ON c.id = sc.categoria_id
		WHERE sc.servicio_id = ANY($1)
		ORDER BY c.nombre, c.id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list categorias de servicios: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var servicioID int
		var c entity.CategoriaSimple
		if err := rows.Scan(&servicioID, &c.ID, &c.Nombre, &c.Icono, &c.Activo); err != nil {
			return fmt.Errorf("scan categoria de servicio: %w", err)
		}
		if s := byID[servicioID]; s != nil {
			s.Categorias = append(s.Categorias, c)
		}
	}
	return rows.Err()
}

func scanServicio(row pgxScanner) (*entity.Servicio, error) {
	var s entity.Servicio
	if err := row.Scan(&s.ID, &s.Nombre, &s.Descripcion, &s.Activo, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
