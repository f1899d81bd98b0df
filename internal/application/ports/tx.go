package ports

import (
	"context"

	"github.com/jhoicas/catalogo-app/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que un servicio y su conjunto de categorías se escriben juntos.
type TxRunner interface {
	RunServicio(ctx context.Context, fn func(servicios repository.ServicioRepository) error) error
}
