package cache

import (
	"context"
	"slices"

	"github.com/jhoicas/catalogo-app/internal/application/dto"
	"github.com/jhoicas/catalogo-app/internal/application/ports"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
	"github.com/jhoicas/catalogo-app/pkg/logger"
)

// MensajesCategoria mensajes por defecto cuando el servidor no envía detail.
var MensajesCategoria = Mensajes{
	Listar:        "Error al cargar categorías",
	Arbol:         "Error al cargar árbol de categorías",
	Obtener:       "Error al obtener categoría",
	Crear:         "Error al crear categoría",
	Actualizar:    "Error al actualizar categoría",
	CambiarEstado: "Error al cambiar estado",
	Eliminar:      "Error al eliminar categoría",
}

// CategoriaStore cache de categorías: colección plana, seleccionada y, aparte, el árbol.
// El árbol y la colección se recargan por separado; el árbol puede quedar desactualizado
// respecto de la lista hasta el próximo LoadTree.
type CategoriaStore struct {
	*Store[entity.Categoria, dto.CategoriaFilter, dto.CreateCategoriaRequest, dto.UpdateCategoriaRequest]
	categorias ports.CategoriaGateway
	tree       []entity.CategoriaTree
}

// NewCategoriaStore construye el cache de categorías sobre el gateway.
func NewCategoriaStore(gw ports.CategoriaGateway, log *logger.Logger) *CategoriaStore {
	return &CategoriaStore{
		Store:      NewStore[entity.Categoria, dto.CategoriaFilter, dto.CreateCategoriaRequest, dto.UpdateCategoriaRequest](gw, "categorias", MensajesCategoria, log),
		categorias: gw,
		tree:       []entity.CategoriaTree{},
	}
}

// LoadTree reemplaza el árbol completo. Si falla, el árbol anterior se conserva.
func (s *CategoriaStore) LoadTree(ctx context.Context, soloActivos bool) error {
	s.begin()
	defer s.finish()

	tree, err := s.categorias.Tree(ctx, soloActivos)
	if err != nil {
		return s.fail("arbol", err, s.msgs.Arbol)
	}
	s.mu.Lock()
	s.tree = tree
	s.mu.Unlock()
	return nil
}

// Tree último árbol cargado. Los nodos no se modifican nunca en el cliente.
func (s *CategoriaStore) Tree() []entity.CategoriaTree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tree)
}

// Selector proyección {value, label, disabled} de la colección, calculada en cada llamada.
func (s *CategoriaStore) Selector() []dto.SelectorOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.SelectorOption, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, dto.SelectorOption{Value: c.ID, Label: c.Nombre, Disabled: !c.Activo})
	}
	return out
}

// Reset limpia colección, seleccionada, árbol y banderas.
func (s *CategoriaStore) Reset() {
	s.Store.Reset()
	s.mu.Lock()
	s.tree = []entity.CategoriaTree{}
	s.mu.Unlock()
}
