package repository

import "github.com/tht-textil/telas-api/internal/domain/entity"

// AlmacenRepository define el puerto de persistencia para almacenes.
type AlmacenRepository interface {
	Create(almacen *entity.Almacen) error
	GetByID(id int64) (*entity.Almacen, error)
	List() ([]*entity.Almacen, error)
}
