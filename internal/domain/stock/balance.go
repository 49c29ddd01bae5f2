package stock

import "github.com/dcastano/farmacia-api/internal/domain/entity"

// RunningBalance pliega received - issued sobre los movimientos en el orden
// recibido y devuelve el saldo final. El kardex no guarda saldos
// precalculados: este pliegue es la única fuente del saldo corriente.
func RunningBalance(movements []*entity.Movement) int64 {
	var balance int64
	for _, m := range movements {
		balance += m.ReceivedQuantity - m.IssuedQuantity
	}
	return balance
}

// BalanceSeries devuelve el saldo acumulado después de cada movimiento, en el
// mismo orden de entrada. Útil para el kardex impreso, donde cada fila muestra
// su saldo a la fecha.
func BalanceSeries(movements []*entity.Movement) []int64 {
	series := make([]int64, len(movements))
	var balance int64
	for i, m := range movements {
		balance += m.ReceivedQuantity - m.IssuedQuantity
		series[i] = balance
	}
	return series
}
