package repository

import (
	"time"

	"github.com/dcastano/farmacia-api/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia para traspasos.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// CloseIfPending fija el estado terminal (approved/rejected) solo si el
	// traspaso sigue pending, como una única operación condicional. Si ya fue
	// procesado retorna domain.ErrAlreadyProcessed.
	CloseIfPending(id, status string) error
	List(from, to *time.Time, status string) ([]*entity.Transfer, error)
	// ListApprovedBetween lista traspasos aprobados de sender a receiver en la
	// ventana dada, para el reporte de valor transferido.
	ListApprovedBetween(senderStoreID, receiverStoreID string, from, to time.Time) ([]*entity.Transfer, error)
}
