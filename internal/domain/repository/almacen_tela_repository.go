package repository

import "github.com/tht-textil/telas-api/internal/domain/entity"

// AlmacenTelaRepository define el puerto para las asignaciones tela-almacén.
// La unicidad de la fila ACTIVO por (almacén, tela) se garantiza por consulta,
// no por constraint: GetActive/GetActiveForUpdate devuelven esa fila única.
type AlmacenTelaRepository interface {
	Create(at *entity.AlmacenTela) error
	Update(at *entity.AlmacenTela) error
	// GetByAlmacenAndTela busca sin filtrar por estado (actualización de peso).
	GetByAlmacenAndTela(almacenID, telaID int64) (*entity.AlmacenTela, error)
	GetActive(almacenID, telaID int64) (*entity.AlmacenTela, error)
	// GetActiveForUpdate bloquea la fila ACTIVO de origen durante un traslado.
	GetActiveForUpdate(almacenID, telaID int64) (*entity.AlmacenTela, error)
	ListByAlmacen(almacenID int64) ([]*entity.AlmacenTela, error)
	ListActiveByAlmacen(almacenID int64) ([]*entity.AlmacenTela, error)
}
