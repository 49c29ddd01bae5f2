package repository

import "github.com/dcastano/farmacia-api/internal/domain/entity"

// Puertos de solo lectura para los colaboradores externos del núcleo: el CRUD
// de estas colecciones vive fuera; aquí solo se validan referencias antes de
// mutar stock.

// StoreRepository consulta tiendas y sus personas de contacto.
type StoreRepository interface {
	GetByID(id string) (*entity.Store, error)
	Exists(id string) (bool, error)
}

// SupplierRepository consulta proveedores.
type SupplierRepository interface {
	GetByID(id string) (*entity.Supplier, error)
}

// PatientRepository consulta pacientes.
type PatientRepository interface {
	GetByID(id string) (*entity.Patient, error)
}

// UserRepository consulta operadores.
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
}
