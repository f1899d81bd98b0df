package cache

import "slices"

// Entity es lo mínimo que el cache necesita de una entidad: identidad estable y estado activo.
type Entity interface {
	GetID() int
	IsActive() bool
}

// MutationKind tipo de mutación confirmada por el servidor.
type MutationKind int

const (
	// MutationUpdate cubre update y toggle de activo: el resultado reemplaza la entrada.
	MutationUpdate MutationKind = iota
	// MutationDelete elimina la entrada con ID.
	MutationDelete
)

// Mutation resultado confirmado de una operación remota de escritura.
type Mutation[T Entity] struct {
	Kind   MutationKind
	ID     int
	Result T // solo en MutationUpdate
}

// Updated mutación de reemplazo con el snapshot devuelto por el servidor.
func Updated[T Entity](result T) Mutation[T] {
	return Mutation[T]{Kind: MutationUpdate, ID: result.GetID(), Result: result}
}

// Deleted mutación de borrado confirmado.
func Deleted[T Entity](id int) Mutation[T] {
	return Mutation[T]{Kind: MutationDelete, ID: id}
}

// Reconcile incorpora una mutación confirmada a la colección y al seleccionado.
// No modifica sus argumentos: devuelve una colección nueva cuando hay cambios.
//
// Update: reemplaza en su misma posición la entrada con el mismo ID y, si el seleccionado
// tiene ese ID, también lo reemplaza. Si el ID no está en la colección, la colección queda igual.
// Delete: quita la entrada y limpia el seleccionado si coincide.
func Reconcile[T Entity](items []T, selected *T, m Mutation[T]) ([]T, *T) {
	switch m.Kind {
	case MutationDelete:
		out := make([]T, 0, len(items))
		for _, it := range items {
			if it.GetID() != m.ID {
				out = append(out, it)
			}
		}
		if selected != nil && (*selected).GetID() == m.ID {
			selected = nil
		}
		return out, selected
	default:
		out := items
		if i := indexOf(items, m.ID); i >= 0 {
			out = slices.Clone(items)
			out[i] = m.Result
		}
		if selected != nil && (*selected).GetID() == m.ID {
			r := m.Result
			selected = &r
		}
		return out, selected
	}
}

func indexOf[T Entity](items []T, id int) int {
	return slices.IndexFunc(items, func(it T) bool { return it.GetID() == id })
}

// uniqueByID conserva la primera aparición de cada ID, respetando el orden recibido.
func uniqueByID[T Entity](items []T) ([]T, int) {
	seen := make(map[int]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.GetID()]; ok {
			continue
		}
		seen[it.GetID()] = struct{}{}
		out = append(out, it)
	}
	return out, len(items) - len(out)
}
