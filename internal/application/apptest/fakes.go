// Package apptest provee dobles en memoria de los puertos de persistencia y
// un TxRunner que revierte el estado cuando el callback falla. Los tests de
// casos de uso se apoyan aquí en vez de duplicar fakes por paquete.
package apptest

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastano/farmacia-api/internal/application/ports"
	"github.com/dcastano/farmacia-api/internal/domain"
	"github.com/dcastano/farmacia-api/internal/domain/entity"
)

// Fixture agrupa todos los fakes y el TxRunner que los gobierna.
type Fixture struct {
	Brands          *FakeBrandRepo
	Batches         *FakeBatchRepo
	Movements       *FakeMovementRepo
	Transfers       *FakeTransferRepo
	Sales           *FakeSaleRepo
	CreditSales     *FakeCreditSaleRepo
	DeletedSales    *FakeDeletedSaleRepo
	CreditCustomers *FakeCreditCustomerRepo
	Damaged         *FakeDamagedRepo
	Stores          *FakeStoreRepo
	Suppliers       *FakeSupplierRepo
	Patients        *FakePatientRepo
	Users           *FakeUserRepo
	Tx              *FakeTxRunner
}

// NewFixture arma un fixture vacío listo para sembrar.
func NewFixture() *Fixture {
	f := &Fixture{
		Brands:          &FakeBrandRepo{byID: map[string]*entity.Brand{}},
		Batches:         &FakeBatchRepo{byID: map[string]*entity.ProductBatch{}},
		Movements:       &FakeMovementRepo{},
		Transfers:       &FakeTransferRepo{byID: map[string]*entity.Transfer{}},
		Sales:           &FakeSaleRepo{byID: map[string]*entity.Sale{}},
		CreditSales:     &FakeCreditSaleRepo{byID: map[string]*entity.CreditSale{}},
		DeletedSales:    &FakeDeletedSaleRepo{},
		CreditCustomers: &FakeCreditCustomerRepo{byID: map[string]*entity.CreditCustomer{}},
		Damaged:         &FakeDamagedRepo{},
		Stores:          &FakeStoreRepo{byID: map[string]*entity.Store{}},
		Suppliers:       &FakeSupplierRepo{byID: map[string]*entity.Supplier{}},
		Patients:        &FakePatientRepo{byID: map[string]*entity.Patient{}},
		Users:           &FakeUserRepo{byID: map[string]*entity.User{}},
	}
	f.Tx = &FakeTxRunner{fixture: f}
	return f
}

// Repos devuelve los mismos fakes empaquetados como ports.Repos, igual que
// haría el TxRunner real sobre una transacción.
func (f *Fixture) Repos() ports.Repos {
	return ports.Repos{
		Brands:          f.Brands,
		Batches:         f.Batches,
		Movements:       f.Movements,
		Transfers:       f.Transfers,
		Sales:           f.Sales,
		CreditSales:     f.CreditSales,
		DeletedSales:    f.DeletedSales,
		CreditCustomers: f.CreditCustomers,
		Damaged:         f.Damaged,
	}
}

// FakeTxRunner ejecuta el callback sobre los fakes y, si retorna error,
// restaura una instantánea tomada al inicio. Así los tests pueden afirmar
// el todo-o-nada sin una base de datos.
type FakeTxRunner struct {
	fixture *Fixture
	// Calls cuenta las transacciones ejecutadas.
	Calls int
}

func (t *FakeTxRunner) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	t.Calls++
	snap := t.fixture.snapshot()
	if err := fn(t.fixture.Repos()); err != nil {
		t.fixture.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	brands       map[string]*entity.Brand
	batches      map[string]*entity.ProductBatch
	movements    []*entity.Movement
	transfers    map[string]*entity.Transfer
	sales        map[string]*entity.Sale
	creditSales  map[string]*entity.CreditSale
	deletedSales []*entity.DeletedSale
	customers    map[string]*entity.CreditCustomer
	damaged      []*entity.DamagedReport
}

func (f *Fixture) snapshot() snapshot {
	return snapshot{
		brands:       cloneMap(f.Brands.byID),
		batches:      cloneMap(f.Batches.byID),
		movements:    cloneSlice(f.Movements.rows),
		transfers:    cloneMap(f.Transfers.byID),
		sales:        cloneMap(f.Sales.byID),
		creditSales:  cloneMap(f.CreditSales.byID),
		deletedSales: cloneSlice(f.DeletedSales.rows),
		customers:    cloneMap(f.CreditCustomers.byID),
		damaged:      cloneSlice(f.Damaged.rows),
	}
}

func (f *Fixture) restore(s snapshot) {
	f.Brands.byID = s.brands
	f.Batches.byID = s.batches
	f.Movements.rows = s.movements
	f.Transfers.byID = s.transfers
	f.Sales.byID = s.sales
	f.CreditSales.byID = s.creditSales
	f.DeletedSales.rows = s.deletedSales
	f.CreditCustomers.byID = s.customers
	f.Damaged.rows = s.damaged
}

func cloneMap[T any](in map[string]*T) map[string]*T {
	out := make(map[string]*T, len(in))
	for k, v := range in {
		cp := *v
		out[k] = &cp
	}
	return out
}

func cloneSlice[T any](in []*T) []*T {
	out := make([]*T, len(in))
	for i, v := range in {
		cp := *v
		out[i] = &cp
	}
	return out
}

// FakeBrandRepo doble en memoria de BrandRepository.
type FakeBrandRepo struct {
	byID map[string]*entity.Brand
	// CreateErr fuerza el fallo de Create para probar el rollback.
	CreateErr error
}

func (r *FakeBrandRepo) Seed(b *entity.Brand) { r.byID[b.ID] = b }

func (r *FakeBrandRepo) Create(b *entity.Brand) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.byID[b.ID] = b
	return nil
}

func (r *FakeBrandRepo) GetByID(id string) (*entity.Brand, error) {
	return r.byID[id], nil
}

func (r *FakeBrandRepo) GetByNameAndStore(name, storeID string) (*entity.Brand, error) {
	for _, b := range r.byID {
		if b.Name == name && b.StoreID == storeID {
			return b, nil
		}
	}
	return nil, nil
}

func (r *FakeBrandRepo) AdjustQuantity(id string, delta int64) error {
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if b.Quantity+delta < 0 {
		return domain.ErrInsufficientStock
	}
	b.Quantity += delta
	return nil
}

func (r *FakeBrandRepo) UpdatePrice(id string, price decimal.Decimal) error {
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.SellingPrice = price
	return nil
}

func (r *FakeBrandRepo) UpdateMinStock(id string, minStock int64) error {
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.MinStock = minStock
	return nil
}

func (r *FakeBrandRepo) ListByStore(storeID string) ([]*entity.Brand, error) {
	var out []*entity.Brand
	for _, b := range r.byID {
		if b.StoreID == storeID {
			out = append(out, b)
		}
	}
	sortByID(out, func(b *entity.Brand) string { return b.ID })
	return out, nil
}

func (r *FakeBrandRepo) ListStockouts(storeID string) ([]*entity.Brand, error) {
	var out []*entity.Brand
	for _, b := range r.byID {
		if (storeID == "" || b.StoreID == storeID) && b.StockedOut() {
			out = append(out, b)
		}
	}
	sortByID(out, func(b *entity.Brand) string { return b.ID })
	return out, nil
}

// FakeBatchRepo doble en memoria de BatchRepository.
type FakeBatchRepo struct {
	byID      map[string]*entity.ProductBatch
	CreateErr error
}

func (r *FakeBatchRepo) Seed(b *entity.ProductBatch) { r.byID[b.ID] = b }

func (r *FakeBatchRepo) Create(b *entity.ProductBatch) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.byID[b.ID] = b
	return nil
}

func (r *FakeBatchRepo) GetByID(id string) (*entity.ProductBatch, error) {
	return r.byID[id], nil
}

func (r *FakeBatchRepo) GetByNameBatchAndStore(name, batch, storeID string) (*entity.ProductBatch, error) {
	for _, b := range r.byID {
		if b.Name == name && b.Batch == batch && b.StoreID == storeID {
			return b, nil
		}
	}
	return nil, nil
}

func (r *FakeBatchRepo) AdjustQuantity(id string, delta int64) error {
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if b.Quantity+delta < 0 {
		return domain.ErrInsufficientStock
	}
	b.Quantity += delta
	return nil
}

func (r *FakeBatchRepo) ListByBrand(brandID string) ([]*entity.ProductBatch, error) {
	var out []*entity.ProductBatch
	for _, b := range r.byID {
		if b.BrandID == brandID {
			out = append(out, b)
		}
	}
	sortByID(out, func(b *entity.ProductBatch) string { return b.ID })
	return out, nil
}

func (r *FakeBatchRepo) ListExpiringBefore(limit time.Time, onlyStocked bool) ([]*entity.ProductBatch, error) {
	var out []*entity.ProductBatch
	for _, b := range r.byID {
		if !b.ExpiryDate.Before(limit) {
			continue
		}
		if onlyStocked && b.Quantity <= 0 {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out, nil
}

// FakeMovementRepo kardex en memoria, solo inserción.
type FakeMovementRepo struct {
	rows []*entity.Movement
	// AppendErr fuerza el fallo de Append para probar el rollback.
	AppendErr error
}

func (r *FakeMovementRepo) Append(m *entity.Movement) error {
	if r.AppendErr != nil {
		return r.AppendErr
	}
	r.rows = append(r.rows, m)
	return nil
}

func (r *FakeMovementRepo) ListByStoreAndBrand(storeID, brandID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.rows {
		if m.StoreID == storeID && m.BrandID == brandID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *FakeMovementRepo) ListByStore(storeID string, from, to *time.Time) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.rows {
		if m.StoreID != storeID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// All devuelve todas las filas del kardex, para aserciones.
func (r *FakeMovementRepo) All() []*entity.Movement { return r.rows }

// FakeTransferRepo doble en memoria de TransferRepository.
type FakeTransferRepo struct {
	byID map[string]*entity.Transfer
}

func (r *FakeTransferRepo) Seed(t *entity.Transfer) { r.byID[t.ID] = t }

func (r *FakeTransferRepo) Create(t *entity.Transfer) error {
	r.byID[t.ID] = t
	return nil
}

func (r *FakeTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	return r.byID[id], nil
}

func (r *FakeTransferRepo) CloseIfPending(id, status string) error {
	t, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if t.Status != entity.TransferPending {
		return domain.ErrAlreadyProcessed
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	return nil
}

func (r *FakeTransferRepo) List(from, to *time.Time, status string) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, t := range r.byID {
		if status != "" && t.Status != status {
			continue
		}
		if from != nil && t.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && t.CreatedAt.After(*to) {
			continue
		}
		out = append(out, t)
	}
	sortByID(out, func(t *entity.Transfer) string { return t.ID })
	return out, nil
}

func (r *FakeTransferRepo) ListApprovedBetween(senderStoreID, receiverStoreID string, from, to time.Time) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, t := range r.byID {
		if t.Status != entity.TransferApproved {
			continue
		}
		if t.SenderStoreID != senderStoreID || t.ReceiverStoreID != receiverStoreID {
			continue
		}
		if t.CreatedAt.Before(from) || t.CreatedAt.After(to) {
			continue
		}
		out = append(out, t)
	}
	sortByID(out, func(t *entity.Transfer) string { return t.ID })
	return out, nil
}

// FakeSaleRepo doble en memoria de SaleRepository.
type FakeSaleRepo struct {
	byID map[string]*entity.Sale
}

func (r *FakeSaleRepo) Seed(s *entity.Sale) { r.byID[s.ID] = s }

func (r *FakeSaleRepo) Create(s *entity.Sale) error {
	r.byID[s.ID] = s
	return nil
}

func (r *FakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.byID[id], nil
}

func (r *FakeSaleRepo) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *FakeSaleRepo) ListByStoreAndDate(storeID string, from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.byID {
		if storeID != "" && s.StoreID != storeID {
			continue
		}
		if s.CreatedAt.Before(from) || s.CreatedAt.After(to) {
			continue
		}
		out = append(out, s)
	}
	sortByID(out, func(s *entity.Sale) string { return s.ID })
	return out, nil
}

// FakeCreditSaleRepo doble en memoria de CreditSaleRepository.
type FakeCreditSaleRepo struct {
	byID map[string]*entity.CreditSale
}

func (r *FakeCreditSaleRepo) Seed(s *entity.CreditSale) { r.byID[s.ID] = s }

func (r *FakeCreditSaleRepo) Create(s *entity.CreditSale) error {
	r.byID[s.ID] = s
	return nil
}

func (r *FakeCreditSaleRepo) GetByID(id string) (*entity.CreditSale, error) {
	return r.byID[id], nil
}

func (r *FakeCreditSaleRepo) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *FakeCreditSaleRepo) ListByStoreAndDate(storeID string, from, to time.Time) ([]*entity.CreditSale, error) {
	var out []*entity.CreditSale
	for _, s := range r.byID {
		if storeID != "" && s.StoreID != storeID {
			continue
		}
		if s.CreatedAt.Before(from) || s.CreatedAt.After(to) {
			continue
		}
		out = append(out, s)
	}
	sortByID(out, func(s *entity.CreditSale) string { return s.ID })
	return out, nil
}

// FakeDeletedSaleRepo archivo en memoria de ventas reversadas.
type FakeDeletedSaleRepo struct {
	rows []*entity.DeletedSale
	// CreateErr fuerza el fallo de Create para probar el rollback.
	CreateErr error
}

func (r *FakeDeletedSaleRepo) Create(d *entity.DeletedSale) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.rows = append(r.rows, d)
	return nil
}

func (r *FakeDeletedSaleRepo) List(storeID string, from, to *time.Time) ([]*entity.DeletedSale, error) {
	var out []*entity.DeletedSale
	for _, d := range r.rows {
		if storeID != "" && d.StoreID != storeID {
			continue
		}
		if from != nil && d.OriginalSaleDate.Before(*from) {
			continue
		}
		if to != nil && d.OriginalSaleDate.After(*to) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// All devuelve el archivo completo, para aserciones.
func (r *FakeDeletedSaleRepo) All() []*entity.DeletedSale { return r.rows }

// FakeCreditCustomerRepo doble en memoria de CreditCustomerRepository.
type FakeCreditCustomerRepo struct {
	byID map[string]*entity.CreditCustomer
}

func (r *FakeCreditCustomerRepo) Seed(c *entity.CreditCustomer) { r.byID[c.ID] = c }

func (r *FakeCreditCustomerRepo) Create(c *entity.CreditCustomer) error {
	r.byID[c.ID] = c
	return nil
}

func (r *FakeCreditCustomerRepo) GetByID(id string) (*entity.CreditCustomer, error) {
	return r.byID[id], nil
}

func (r *FakeCreditCustomerRepo) List() ([]*entity.CreditCustomer, error) {
	var out []*entity.CreditCustomer
	for _, c := range r.byID {
		out = append(out, c)
	}
	sortByID(out, func(c *entity.CreditCustomer) string { return c.ID })
	return out, nil
}

func (r *FakeCreditCustomerRepo) AdjustBalance(id string, delta decimal.Decimal) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Balance = c.Balance.Add(delta)
	return nil
}

func (r *FakeCreditCustomerRepo) SetValidity(id string, isValid bool) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.IsValid = isValid
	return nil
}

func (r *FakeCreditCustomerRepo) Update(c *entity.CreditCustomer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

// FakeDamagedRepo reportes de daño en memoria.
type FakeDamagedRepo struct {
	rows []*entity.DamagedReport
}

func (r *FakeDamagedRepo) Create(d *entity.DamagedReport) error {
	r.rows = append(r.rows, d)
	return nil
}

func (r *FakeDamagedRepo) List(storeID string, from, to time.Time) ([]*entity.DamagedReport, error) {
	var out []*entity.DamagedReport
	for _, d := range r.rows {
		if storeID != "" && d.StoreID != storeID {
			continue
		}
		if d.CreatedAt.Before(from) || d.CreatedAt.After(to) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// All devuelve todos los reportes, para aserciones.
func (r *FakeDamagedRepo) All() []*entity.DamagedReport { return r.rows }

// FakeStoreRepo tiendas de solo lectura.
type FakeStoreRepo struct {
	byID map[string]*entity.Store
}

func (r *FakeStoreRepo) Seed(s *entity.Store) { r.byID[s.ID] = s }

func (r *FakeStoreRepo) GetByID(id string) (*entity.Store, error) {
	return r.byID[id], nil
}

func (r *FakeStoreRepo) Exists(id string) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

// FakeSupplierRepo proveedores de solo lectura.
type FakeSupplierRepo struct {
	byID map[string]*entity.Supplier
}

func (r *FakeSupplierRepo) Seed(s *entity.Supplier) { r.byID[s.ID] = s }

func (r *FakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.byID[id], nil
}

// FakePatientRepo pacientes de solo lectura.
type FakePatientRepo struct {
	byID map[string]*entity.Patient
}

func (r *FakePatientRepo) Seed(p *entity.Patient) { r.byID[p.ID] = p }

func (r *FakePatientRepo) GetByID(id string) (*entity.Patient, error) {
	return r.byID[id], nil
}

// FakeUserRepo operadores de solo lectura.
type FakeUserRepo struct {
	byID map[string]*entity.User
}

func (r *FakeUserRepo) Seed(u *entity.User) { r.byID[u.ID] = u }

func (r *FakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.byID[id], nil
}

func sortByID[T any](in []*T, id func(*T) string) {
	sort.Slice(in, func(i, j int) bool { return id(in[i]) < id(in[j]) })
}
