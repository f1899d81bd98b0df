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

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

const categoriaColumns = `id, nombre, descripcion, icono, activo, categoria_padre_id, created_at, updated_at`

// CategoriaRepo implementación del puerto CategoriaRepository sobre PostgreSQL (usable con pool o tx).
type CategoriaRepo struct {
	q Querier
}

// NewCategoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

// Create inserta la categoría y asigna ID y timestamps desde la BD.
func (r *CategoriaRepo) Create(ctx context.Context, c *entity.Categoria) error {
	query := `
		INSERT INTO categorias (nombre, descripcion, icono, activo, categoria_padre_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		c.Nombre, c.Descripcion, c.Icono, c.Activo, c.CategoriaPadreID, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID; nil, nil si no existe.
func (r *CategoriaRepo) GetByID(ctx context.Context, id int) (*entity.Categoria, error) {
	return r.getOne(ctx, `SELECT `+categoriaColumns+` FROM categorias WHERE id = $1`, id)
}

// GetByNombre obtiene una categoría por nombre exacto.
func (r *CategoriaRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Categoria, error) {
	return r.getOne(ctx, `SELECT `+categoriaColumns+` FROM categorias WHERE nombre = $1`, nombre)
}

// Update reescribe las columnas editables.
func (r *CategoriaRepo) Update(ctx context.Context, c *entity.Categoria) error {
	query := `
		UPDATE categorias
		SET nombre = $2, descripcion = $3, icono = $4, activo = $5, categoria_padre_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Nombre, c.Descripcion, c.Icono, c.Activo, c.CategoriaPadreID, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update categoria: %w", err)
	}
	return nil
}

// List lista con filtros, ordenado por nombre.
func (r *CategoriaRepo) List(ctx context.Context, f repository.CategoriaListFilter) ([]*entity.Categoria, error) {
	query := `
		SELECT ` + categoriaColumns + `
		FROM categorias
		WHERE ($1 = FALSE OR activo) AND ($2 = FALSE OR categoria_padre_id IS NULL)
		ORDER BY nombre, id
		LIMIT $3 OFFSET $4`
	return r.list(ctx, query, f.SoloActivos, f.SoloRaiz, f.Limit, f.Skip)
}

// ListAll todas las categorías ordenadas por nombre.
func (r *CategoriaRepo) ListAll(ctx context.Context) ([]*entity.Categoria, error) {
	return r.list(ctx, `SELECT `+categoriaColumns+` FROM categorias ORDER BY nombre, id`)
}

// ListByParent hijas directas ordenadas por nombre.
func (r *CategoriaRepo) ListByParent(ctx context.Context, parentID int) ([]*entity.Categoria, error) {
	return r.list(ctx, `SELECT `+categoriaColumns+` FROM categorias WHERE categoria_padre_id = $1 ORDER BY nombre, id`, parentID)
}

// ListByIDs categorías existentes entre ids, ordenadas por nombre.
func (r *CategoriaRepo) ListByIDs(ctx context.Context, ids []int) ([]*entity.Categoria, error) {
	if len(ids) == 0 {
		return []*entity.Categoria{}, nil
	}
	return r.list(ctx, `SELECT `+categoriaColumns+` FROM categorias WHERE id = ANY($1) ORDER BY nombre, id`, ids)
}

// Count cuenta todas o solo las activas.
func (r *CategoriaRepo) Count(ctx context.Context, soloActivos bool) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM categorias WHERE ($1 = FALSE OR activo)`, soloActivos).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count categorias: %w", err)
	}
	return n, nil
}

// CountChildren cantidad de subcategorías directas.
func (r *CategoriaRepo) CountChildren(ctx context.Context, id int) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM categorias WHERE categoria_padre_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count subcategorias: %w", err)
	}
	return n, nil
}

// Delete elimina por ID; los vínculos con servicios se borran en cascada.
func (r *CategoriaRepo) Delete(ctx context.Context, id int) error {
	_, err := r.q.Exec(ctx, `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete categoria: %w", err)
	}
	return nil
}

func (r *CategoriaRepo) getOne(ctx context.Context, query string, arg any) (*entity.Categoria, error) {
	c, err := scanCategoria(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return c, nil
}

func (r *CategoriaRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Categoria, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()
	list := []*entity.Categoria{}
	for rows.Next() {
		c, err := scanCategoria(rows)
		if err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// pgxScanner abstrae pgx.Row y pgx.Rows.
type pgxScanner interface {
	Scan(dest ...any) error
}

func scanCategoria(row pgxScanner) (*entity.Categoria, error) {
	var c entity.Categoria
	err := row.Scan(
		&c.ID, &c.Nombre, &c.Descripcion, &c.Icono, &c.Activo,
		&c.CategoriaPadreID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
