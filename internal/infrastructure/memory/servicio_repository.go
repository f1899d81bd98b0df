package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/catalogo-app/internal/application/ports"
	"github.com/jhoicas/catalogo-app/internal/domain"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
	"github.com/jhoicas/catalogo-app/internal/domain/repository"
)

var _ repository.ServicioRepository = (*ServicioRepo)(nil)
var _ ports.TxRunner = (*TxRunner)(nil)

// ServicioRepo servicios en memoria. Las categorías vinculadas se resuelven contra CategoriaRepo.
type ServicioRepo struct {
	categorias *CategoriaRepo

	mu     sync.RWMutex
	nextID int
	rows   map[int]entity.Servicio
	links  map[int][]int // servicio_id -> categoria_ids
}

// NewServicioRepository construye el repositorio y registra la cascada al borrar categorías.
func NewServicioRepository(categorias *CategoriaRepo) *ServicioRepo {
	r := &ServicioRepo{
		categorias: categorias,
		nextID:     1,
		rows:       make(map[int]entity.Servicio),
		links:      make(map[int][]int),
	}
	categorias.mu.Lock()
	categorias.onDelete = r.unlinkCategoria
	categorias.mu.Unlock()
	return r
}

func (r *ServicioRepo) Create(_ context.Context, s *entity.Servicio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nombreEnUso(s.Nombre, 0) {
		return domain.ErrDuplicate
	}
	s.ID = r.nextID
	r.nextID++
	row := *s
	row.Categorias = nil
	r.rows[s.ID] = row
	return nil
}

func (r *ServicioRepo) GetByID(ctx context.Context, id int) (*entity.Servicio, error) {
	r.mu.RLock()
	s, ok := r.rows[id]
	ids := slices.Clone(r.links[id])
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.resolve(ctx, s, ids)
}

func (r *ServicioRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Servicio, error) {
	r.mu.RLock()
	var found *entity.Servicio
	for _, s := range r.rows {
		if s.Nombre == nombre {
			found = &s
			break
		}
	}
	r.mu.RUnlock()
	if found == nil {
		return nil, nil
	}
	return r.GetByID(ctx, found.ID)
}

func (r *ServicioRepo) Update(_ context.Context, s *entity.Servicio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[s.ID]; !ok {
		return nil
	}
	if r.nombreEnUso(s.Nombre, s.ID) {
		return domain.ErrDuplicate
	}
	row := *s
	row.Categorias = nil
	r.rows[s.ID] = row
	return nil
}

func (r *ServicioRepo) ReplaceCategorias(_ context.Context, servicioID int, categoriaIDs []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[servicioID] = slices.Clone(categoriaIDs)
	return nil
}

func (r *ServicioRepo) List(ctx context.Context, f repository.ServicioListFilter) ([]*entity.Servicio, error) {
	r.mu.RLock()
	var ids []int
	for id, s := range r.rows {
		if f.SoloActivos && !s.Activo {
			continue
		}
		if f.CategoriaID != 0 && !slices.Contains(r.links[id], f.CategoriaID) {
			continue
		}
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	out := make([]*entity.Servicio, 0, len(ids))
	for _, id := range ids {
		s, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if s != nil {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Servicio) int {
		return cmp.Or(cmp.Compare(a.Nombre, b.Nombre), cmp.Compare(a.ID, b.ID))
	})
	return page(out, f.Skip, f.Limit), nil
}

func (r *ServicioRepo) Count(_ context.Context, soloActivos bool) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, s := range r.rows {
		if !soloActivos || s.Activo {
			n++
		}
	}
	return n, nil
}

func (r *ServicioRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	delete(r.links, id)
	return nil
}

func (r *ServicioRepo) unlinkCategoria(categoriaID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, cats := range r.links {
		r.links[id] = slices.DeleteFunc(cats, func(c int) bool { return c == categoriaID })
	}
}

func (r *ServicioRepo) nombreEnUso(nombre string, exceptID int) bool {
	for id, s := range r.rows {
		if id != exceptID && s.Nombre == nombre {
			return true
		}
	}
	return false
}

// resolve completa Categorias ordenadas por nombre, como el join de PostgreSQL.
func (r *ServicioRepo) resolve(ctx context.Context, s entity.Servicio, ids []int) (*entity.Servicio, error) {
	cats, err := r.categorias.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	s.Categorias = make([]entity.CategoriaSimple, 0, len(cats))
	for _, c := range cats {
		s.Categorias = append(s.Categorias, c.Simple())
	}
	return &s, nil
}

// TxRunner transacción en memoria: serializa las transacciones y, si fn falla, deshace solo las
// filas y vínculos que fn escribió. Las escrituras hechas fuera de la transacción se conservan.
// Los IDs consumidos no se devuelven, igual que una secuencia.
type TxRunner struct {
	mu        sync.Mutex
	servicios *ServicioRepo
}

// NewTxRunner construye el runner sobre el repositorio de servicios.
func NewTxRunner(servicios *ServicioRepo) *TxRunner {
	return &TxRunner{servicios: servicios}
}

func (t *TxRunner) RunServicio(_ context.Context, fn func(servicios repository.ServicioRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tx := &servicioTx{ServicioRepo: t.servicios, antes: make(map[int]imagenServicio)}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// imagenServicio estado de un servicio antes de la primera escritura de la transacción.
type imagenServicio struct {
	row     entity.Servicio
	rowOK   bool
	links   []int
	linksOK bool
}

type servicioTx struct {
	*ServicioRepo
	antes map[int]imagenServicio
}

func (tx *servicioTx) Create(ctx context.Context, s *entity.Servicio) error {
	if err := tx.ServicioRepo.Create(ctx, s); err != nil {
		return err
	}
	if _, ok := tx.antes[s.ID]; !ok {
		tx.antes[s.ID] = imagenServicio{}
	}
	return nil
}

func (tx *servicioTx) Update(ctx context.Context, s *entity.Servicio) error {
	tx.guardar(s.ID)
	return tx.ServicioRepo.Update(ctx, s)
}

func (tx *servicioTx) ReplaceCategorias(ctx context.Context, servicioID int, categoriaIDs []int) error {
	tx.guardar(servicioID)
	return tx.ServicioRepo.ReplaceCategorias(ctx, servicioID, categoriaIDs)
}

func (tx *servicioTx) Delete(ctx context.Context, id int) error {
	tx.guardar(id)
	return tx.ServicioRepo.Delete(ctx, id)
}

func (tx *servicioTx) guardar(id int) {
	if _, ok := tx.antes[id]; ok {
		return
	}
	r := tx.ServicioRepo
	r.mu.RLock()
	defer r.mu.RUnlock()
	var img imagenServicio
	img.row, img.rowOK = r.rows[id]
	var links []int
	links, img.linksOK = r.links[id]
	img.links = slices.Clone(links)
	tx.antes[id] = img
}

func (tx *servicioTx) rollback() {
	r := tx.ServicioRepo
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, img := range tx.antes {
		if img.rowOK {
			r.rows[id] = img.row
		} else {
			delete(r.rows, id)
		}
		if img.linksOK {
			r.links[id] = img.links
		} else {
			delete(r.links, id)
		}
	}
}
