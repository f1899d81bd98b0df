// Package cache mantiene en el cliente una copia de trabajo de las entidades del catálogo
// (colección plana, entidad seleccionada, banderas de carga y error) y la reconcilia con la
// API remota. Nunca aplica un cambio local antes de que el servidor lo confirme: en cada
// escritura se incorpora el snapshot devuelto por el servidor, no el payload enviado.
package cache

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/catalogo-app/internal/domain"
	"github.com/jhoicas/catalogo-app/pkg/logger"
)

// Gateway operaciones remotas comunes a todo tipo de entidad.
// ports.CategoriaGateway y ports.ServicioGateway la satisfacen.
type Gateway[T Entity, F, C, U any] interface {
	List(ctx context.Context, filter F) ([]T, error)
	Count(ctx context.Context, soloActivos bool) (int, error)
	Get(ctx context.Context, id int) (T, error)
	Create(ctx context.Context, in C) (T, error)
	Update(ctx context.Context, id int, in U) (T, error)
	ToggleActive(ctx context.Context, id int) (T, error)
	Delete(ctx context.Context, id int) error
}

// Mensajes textos de error por operación, usados cuando el servidor no envía "detail".
type Mensajes struct {
	Listar        string
	Arbol         string
	Obtener       string
	Crear         string
	Actualizar    string
	CambiarEstado string
	Eliminar      string
}

// Store cache de un tipo de entidad. Se construye una vez por sesión y se comparte por puntero.
//
// Las operaciones pueden llamarse desde varias goroutines. El mutex protege solo el estado local y
// nunca se mantiene durante la llamada remota: si dos escrituras se solapan, gana la que termina
// última, y la primera en terminar baja la bandera de carga aunque la otra siga en vuelo.
type Store[T Entity, F, C, U any] struct {
	gw   Gateway[T, F, C, U]
	log  *logger.Logger
	msgs Mensajes

	mu       sync.Mutex
	items    []T
	selected *T
	total    int
	loading  bool
	errMsg   string
}

// NewStore construye un store vacío. recurso identifica el tipo en los logs ("categorias").
func NewStore[T Entity, F, C, U any](gw Gateway[T, F, C, U], recurso string, msgs Mensajes, log *logger.Logger) *Store[T, F, C, U] {
	if log == nil {
		log = logger.Nop()
	}
	return &Store[T, F, C, U]{
		gw:    gw,
		log:   log.Named("cache." + recurso),
		msgs:  msgs,
		items: []T{},
	}
}

// LoadList reemplaza la colección por el resultado del servidor, en el orden recibido.
// Si falla, la colección anterior queda intacta.
func (s *Store[T, F, C, U]) LoadList(ctx context.Context, filter F) error {
	s.begin()
	defer s.finish()

	items, err := s.gw.List(ctx, filter)
	if err != nil {
		return s.fail("listar", err, s.msgs.Listar)
	}
	items, dup := uniqueByID(items)
	if dup > 0 {
		s.log.Warn().Int("duplicados", dup).Msg("la lista remota trae IDs repetidos; se conserva la primera aparición")
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// LoadCount actualiza el total. Es informativo: un fallo solo se registra en el log y
// no toca error, loading ni la colección.
func (s *Store[T, F, C, U]) LoadCount(ctx context.Context, soloActivos bool) {
	n, err := s.gw.Count(ctx, soloActivos)
	if err != nil {
		s.log.Warn().Err(err).Bool("solo_activos", soloActivos).Msg("error al cargar conteo")
		return
	}
	s.mu.Lock()
	s.total = n
	s.mu.Unlock()
}

// Load obtiene una entidad y la deja como seleccionada.
func (s *Store[T, F, C, U]) Load(ctx context.Context, id int) (T, error) {
	s.begin()
	defer s.finish()

	e, err := s.gw.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, s.fail("obtener", err, s.msgs.Obtener)
	}
	s.mu.Lock()
	s.selected = &e
	s.mu.Unlock()
	return e, nil
}

// Create crea la entidad en el servidor y agrega al final el snapshot devuelto (con su ID asignado).
// Si ese ID ya estaba en la colección (por una recarga concurrente), se reemplaza en su lugar.
func (s *Store[T, F, C, U]) Create(ctx context.Context, in C) (T, error) {
	s.begin()
	defer s.finish()

	e, err := s.gw.Create(ctx, in)
	if err != nil {
		var zero T
		return zero, s.fail("crear", err, s.msgs.Crear)
	}
	s.mu.Lock()
	if indexOf(s.items, e.GetID()) >= 0 {
		s.items, s.selected = Reconcile(s.items, s.selected, Updated(e))
	} else {
		s.items = append(slices.Clip(s.items), e)
	}
	s.mu.Unlock()
	return e, nil
}

// Update aplica un cambio parcial. La entrada conserva su posición.
func (s *Store[T, F, C, U]) Update(ctx context.Context, id int, in U) (T, error) {
	s.begin()
	defer s.finish()

	e, err := s.gw.Update(ctx, id, in)
	if err != nil {
		var zero T
		return zero, s.fail("actualizar", err, s.msgs.Actualizar)
	}
	s.apply(Updated(e))
	return e, nil
}

// ToggleActive cambia el estado activo en el servidor; el nuevo valor sale solo de la respuesta.
func (s *Store[T, F, C, U]) ToggleActive(ctx context.Context, id int) (T, error) {
	s.begin()
	defer s.finish()

	e, err := s.gw.ToggleActive(ctx, id)
	if err != nil {
		var zero T
		return zero, s.fail("cambiar_estado", err, s.msgs.CambiarEstado)
	}
	s.apply(Updated(e))
	return e, nil
}

// Delete elimina en el servidor y, confirmado, quita la entrada y limpia la selección si coincide.
func (s *Store[T, F, C, U]) Delete(ctx context.Context, id int) error {
	s.begin()
	defer s.finish()

	if err := s.gw.Delete(ctx, id); err != nil {
		return s.fail("eliminar", err, s.msgs.Eliminar)
	}
	s.apply(Deleted[T](id))
	return nil
}

// ClearError limpia el mensaje de error.
func (s *Store[T, F, C, U]) ClearError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
}

// ClearSelected limpia la entidad seleccionada.
func (s *Store[T, F, C, U]) ClearSelected() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}

// Reset vuelve al estado de construcción (sin datos, sin error, total 0).
func (s *Store[T, F, C, U]) Reset() {
	s.mu.Lock()
	s.items = []T{}
	s.selected = nil
	s.total = 0
	s.loading = false
	s.errMsg = ""
	s.mu.Unlock()
}

// Items copia de la colección plana.
func (s *Store[T, F, C, U]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Actives entidades activas de la colección (vista derivada, no se almacena).
func (s *Store[T, F, C, U]) Actives() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(s.items))
	for _, it := range s.items {
		if it.IsActive() {
			out = append(out, it)
		}
	}
	return out
}

// Selected entidad seleccionada, si hay.
func (s *Store[T, F, C, U]) Selected() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		var zero T
		return zero, false
	}
	return *s.selected, true
}

// Loading indica si hay una operación en curso.
func (s *Store[T, F, C, U]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err mensaje de error para el usuario; vacío si no hay error.
func (s *Store[T, F, C, U]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Total último conteo cargado.
func (s *Store[T, F, C, U]) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *Store[T, F, C, U]) begin() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *Store[T, F, C, U]) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Store[T, F, C, U]) apply(m Mutation[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.Kind == MutationUpdate && indexOf(s.items, m.ID) < 0 {
		// Un resultado cuyo id no está en la colección deja la lista sin cambios.
		s.log.Debug().Int("id", m.ID).Msg("resultado de una entidad ausente de la colección; lista sin cambios")
	}
	s.items, s.selected = Reconcile(s.items, s.selected, m)
}

// fail registra el mensaje para el usuario (detail del servidor o el mensaje por defecto)
// y devuelve el error original al llamador.
func (s *Store[T, F, C, U]) fail(op string, err error, fallback string) error {
	msg := fallback
	if d, ok := domain.RemoteDetail(err); ok {
		msg = d
	}
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
	s.log.Debug().Err(err).Str("operacion", op).Msg(msg)
	return err
}
