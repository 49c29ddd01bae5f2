package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcastano/farmacia-api/internal/domain/entity"
	"github.com/dcastano/farmacia-api/internal/domain/stock"
)

func mov(received, issued int64) *entity.Movement {
	return &entity.Movement{ReceivedQuantity: received, IssuedQuantity: issued}
}

func TestRunningBalance_SinMovimientos(t *testing.T) {
	assert.EqualValues(t, 0, stock.RunningBalance(nil),
		"sin movimientos el saldo debe ser cero")
}

func TestRunningBalance_EntradasYSalidas(t *testing.T) {
	movs := []*entity.Movement{
		mov(100, 0), // compra inicial
		mov(0, 30),  // venta
		mov(0, 15),  // venta
		mov(20, 0),  // refill
		mov(0, 5),   // baja por daño
	}
	assert.EqualValues(t, 70, stock.RunningBalance(movs),
		"el saldo debe ser la suma de recibidos menos emitidos")
}

func TestRunningBalance_ReversaRestauraSaldo(t *testing.T) {
	movs := []*entity.Movement{
		mov(50, 0),
		mov(0, 10),
	}
	antes := stock.RunningBalance(movs)

	// La reversa no borra la salida: agrega una entrada compensatoria.
	movs = append(movs, mov(10, 0))
	assert.EqualValues(t, antes+10, stock.RunningBalance(movs))
	assert.Len(t, movs, 3, "la auditoría conserva las tres filas")
}

func TestBalanceSeries_SaldoPorFila(t *testing.T) {
	movs := []*entity.Movement{mov(10, 0), mov(0, 4), mov(6, 0)}
	assert.Equal(t, []int64{10, 6, 12}, stock.BalanceSeries(movs))
}

func TestBrand_StockedOut(t *testing.T) {
	b := &entity.Brand{Quantity: 7, MinStock: 5}
	assert.False(t, b.StockedOut(), "7 > 5 no es quiebre de stock")

	b.Quantity = 5
	assert.True(t, b.StockedOut(), "igual al mínimo cuenta como quiebre")

	b.Quantity = 2
	assert.True(t, b.StockedOut())
}
