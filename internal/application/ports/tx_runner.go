package ports

import (
	"context"

	"github.com/dcastano/farmacia-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción de BD. El
// TxRunner los construye sobre la tx y los pasa al callback; ningún caso de
// uso debe mezclar repos de transacciones distintas.
type Repos struct {
	Brands          repository.BrandRepository
	Batches         repository.BatchRepository
	Movements       repository.MovementRepository
	Transfers       repository.TransferRepository
	Sales           repository.SaleRepository
	CreditSales     repository.CreditSaleRepository
	DeletedSales    repository.DeletedSaleRepository
	CreditCustomers repository.CreditCustomerRepository
	Damaged         repository.DamagedRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD: Commit si fn retorna
// nil, Rollback si retorna error. Toda mutación multi-documento (stock +
// kardex + registro) pasa por aquí para garantizar todo-o-nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
