package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tht-textil/telas-api/internal/domain"
	"github.com/tht-textil/telas-api/internal/domain/entity"
	"github.com/tht-textil/telas-api/internal/domain/repository"
)

var _ repository.AlmacenRepository = (*AlmacenRepo)(nil)

const almacenColumns = `
	id, codigo_almacen, nombre_almacen, abreviatura, descripcion, estado,
	tipo_almacen, local, fecha_registro, fecha_actualizacion`

// AlmacenRepo implementación de AlmacenRepository sobre PostgreSQL.
type AlmacenRepo struct {
	q Querier
}

// NewAlmacenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlmacenRepository(q Querier) *AlmacenRepo {
	return &AlmacenRepo{q: q}
}

func scanAlmacen(row pgx.Row) (*entity.Almacen, error) {
	var a entity.Almacen
	err := row.Scan(
		&a.ID, &a.CodigoAlmacen, &a.NombreAlmacen, &a.Abreviatura,
		&a.Descripcion, &a.Estado, &a.TipoAlmacen, &a.Local,
		&a.FechaRegistro, &a.FechaActualizacion,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserta el almacén. El código de almacén es único: un duplicado
// devuelve ErrDuplicate.
func (r *AlmacenRepo) Create(a *entity.Almacen) error {
	query := `
		INSERT INTO almacenes (
			codigo_almacen, nombre_almacen, abreviatura, descripcion, estado,
			tipo_almacen, local, fecha_registro, fecha_actualizacion
		) VALUES ($1,$2,$3,$4,$5,$6,$7,now(),now())
		RETURNING id, fecha_registro, fecha_actualizacion`
	err := r.q.QueryRow(context.Background(), query,
		a.CodigoAlmacen, a.NombreAlmacen, a.Abreviatura, a.Descripcion,
		a.Estado, a.TipoAlmacen, a.Local,
	).Scan(&a.ID, &a.FechaRegistro, &a.FechaActualizacion)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create almacen: %w", err)
	}
	return nil
}

// GetByID devuelve el almacén o nil si no existe.
func (r *AlmacenRepo) GetByID(id int64) (*entity.Almacen, error) {
	query := `SELECT` + almacenColumns + ` FROM almacenes WHERE id = $1`
	a, err := scanAlmacen(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get almacen: %w", err)
	}
	return a, nil
}

// List devuelve todos los almacenes ordenados por código.
func (r *AlmacenRepo) List() ([]*entity.Almacen, error) {
	query := `SELECT` + almacenColumns + ` FROM almacenes ORDER BY codigo_almacen`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list almacenes: %w", err)
	}
	defer rows.Close()
	var out []*entity.Almacen
	for rows.Next() {
		a, err := scanAlmacen(rows)
		if err != nil {
			return nil, fmt.Errorf("scan almacen: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
