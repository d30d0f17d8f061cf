package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tht-textil/telas-api/internal/domain/entity"
	"github.com/tht-textil/telas-api/internal/domain/repository"
)

var _ repository.TelaRepository = (*TelaRepo)(nil)

const telaColumns = `
	id, num_guia, partida, os, proveedor, fecha_ingreso, cliente, marca, op,
	tipo_tela, descripcion, ench, cant_rollos_ingresado, peso_ingresado,
	stock_real, estado, almacen, fecha_registro, fecha_actualizacion`

// TelaRepo implementación de TelaRepository sobre PostgreSQL (usable con pool o tx).
type TelaRepo struct {
	q Querier
}

// NewTelaRepository construye el adaptador de telas. Pasar pool o tx (Querier).
func NewTelaRepository(q Querier) *TelaRepo {
	return &TelaRepo{q: q}
}

func scanTela(row pgx.Row) (*entity.Tela, error) {
	var t entity.Tela
	err := row.Scan(
		&t.ID, &t.NumGuia, &t.Partida, &t.OS, &t.Proveedor, &t.FechaIngreso,
		&t.Cliente, &t.Marca, &t.OP, &t.TipoTela, &t.Descripcion, &t.Ench,
		&t.CantRollosIngresado, &t.PesoIngresado, &t.StockReal, &t.Estado,
		&t.Almacen, &t.FechaRegistro, &t.FechaActualizacion,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTelas(rows pgx.Rows) ([]*entity.Tela, error) {
	defer rows.Close()
	var out []*entity.Tela
	for rows.Next() {
		t, err := scanTela(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tela: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create inserta el lote y completa su ID y timestamps.
func (r *TelaRepo) Create(t *entity.Tela) error {
	query := `
		INSERT INTO telas (
			num_guia, partida, os, proveedor, fecha_ingreso, cliente, marca, op,
			tipo_tela, descripcion, ench, cant_rollos_ingresado, peso_ingresado,
			stock_real, estado, almacen, fecha_registro, fecha_actualizacion
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,now(),now())
		RETURNING id, fecha_registro, fecha_actualizacion`
	err := r.q.QueryRow(context.Background(), query,
		t.NumGuia, t.Partida, t.OS, t.Proveedor, t.FechaIngreso, t.Cliente,
		t.Marca, t.OP, t.TipoTela, t.Descripcion, t.Ench,
		t.CantRollosIngresado, t.PesoIngresado, t.StockReal, t.Estado, t.Almacen,
	).Scan(&t.ID, &t.FechaRegistro, &t.FechaActualizacion)
	if err != nil {
		return fmt.Errorf("create tela: %w", err)
	}
	return nil
}

// GetByID devuelve el lote o nil si no existe.
func (r *TelaRepo) GetByID(id int64) (*entity.Tela, error) {
	query := `SELECT` + telaColumns + ` FROM telas WHERE id = $1`
	t, err := scanTela(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tela: %w", err)
	}
	return t, nil
}

// GetByIDForUpdate devuelve el lote bloqueando su fila (SELECT FOR UPDATE).
func (r *TelaRepo) GetByIDForUpdate(id int64) (*entity.Tela, error) {
	query := `SELECT` + telaColumns + ` FROM telas WHERE id = $1 FOR UPDATE`
	t, err := scanTela(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tela for update: %w", err)
	}
	return t, nil
}

// Update persiste todos los campos mutables del lote.
func (r *TelaRepo) Update(t *entity.Tela) error {
	query := `
		UPDATE telas SET
			num_guia = $2, partida = $3, os = $4, proveedor = $5,
			fecha_ingreso = $6, cliente = $7, marca = $8, op = $9,
			tipo_tela = $10, descripcion = $11, ench = $12,
			cant_rollos_ingresado = $13, peso_ingresado = $14, stock_real = $15,
			estado = $16, almacen = $17, fecha_actualizacion = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		t.ID, t.NumGuia, t.Partida, t.OS, t.Proveedor, t.FechaIngreso,
		t.Cliente, t.Marca, t.OP, t.TipoTela, t.Descripcion, t.Ench,
		t.CantRollosIngresado, t.PesoIngresado, t.StockReal, t.Estado, t.Almacen,
	)
	if err != nil {
		return fmt.Errorf("update tela: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update tela: id %d no existe", t.ID)
	}
	return nil
}

// List devuelve una página de lotes ordenada por fecha de registro descendente.
func (r *TelaRepo) List(limit, offset int) ([]*entity.Tela, error) {
	query := `SELECT` + telaColumns + ` FROM telas ORDER BY fecha_registro DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list telas: %w", err)
	}
	return collectTelas(rows)
}

// ListAll devuelve todos los lotes ordenados por fecha de registro descendente.
func (r *TelaRepo) ListAll() ([]*entity.Tela, error) {
	query := `SELECT` + telaColumns + ` FROM telas ORDER BY fecha_registro DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list telas: %w", err)
	}
	return collectTelas(rows)
}

// ListByFechaIngresoBetween devuelve los lotes cuyo ingreso cae en el rango.
func (r *TelaRepo) ListByFechaIngresoBetween(desde, hasta time.Time) ([]*entity.Tela, error) {
	query := `SELECT` + telaColumns + `
		FROM telas
		WHERE fecha_ingreso BETWEEN $1 AND $2
		ORDER BY fecha_ingreso DESC`
	rows, err := r.q.Query(context.Background(), query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("list telas por fecha: %w", err)
	}
	return collectTelas(rows)
}

// Count devuelve el total de lotes.
func (r *TelaRepo) Count() (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM telas`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count telas: %w", err)
	}
	return total, nil
}
