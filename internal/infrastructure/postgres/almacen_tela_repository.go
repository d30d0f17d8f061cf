package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tht-textil/telas-api/internal/domain/entity"
	"github.com/tht-textil/telas-api/internal/domain/repository"
)

var _ repository.AlmacenTelaRepository = (*AlmacenTelaRepo)(nil)

const almacenTelaColumns = `id, almacen_id, tela_id, peso, fecha_asignacion, estado`

// AlmacenTelaRepo implementación de AlmacenTelaRepository sobre PostgreSQL.
type AlmacenTelaRepo struct {
	q Querier
}

// NewAlmacenTelaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlmacenTelaRepository(q Querier) *AlmacenTelaRepo {
	return &AlmacenTelaRepo{q: q}
}

func scanAlmacenTela(row pgx.Row) (*entity.AlmacenTela, error) {
	var at entity.AlmacenTela
	err := row.Scan(&at.ID, &at.AlmacenID, &at.TelaID, &at.Peso, &at.FechaAsignacion, &at.Estado)
	if err != nil {
		return nil, err
	}
	return &at, nil
}

// Create inserta la asignación y completa su ID.
func (r *AlmacenTelaRepo) Create(at *entity.AlmacenTela) error {
	query := `
		INSERT INTO almacen_telas (almacen_id, tela_id, peso, fecha_asignacion, estado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		at.AlmacenID, at.TelaID, at.Peso, at.FechaAsignacion, at.Estado,
	).Scan(&at.ID)
	if err != nil {
		return fmt.Errorf("create almacen_tela: %w", err)
	}
	return nil
}

// Update persiste peso y estado de la asignación.
func (r *AlmacenTelaRepo) Update(at *entity.AlmacenTela) error {
	query := `UPDATE almacen_telas SET peso = $2, estado = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, at.ID, at.Peso, at.Estado)
	if err != nil {
		return fmt.Errorf("update almacen_tela: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update almacen_tela: id %d no existe", at.ID)
	}
	return nil
}

// GetByAlmacenAndTela devuelve la asignación más reciente del par, en
// cualquier estado, o nil.
func (r *AlmacenTelaRepo) GetByAlmacenAndTela(almacenID, telaID int64) (*entity.AlmacenTela, error) {
	query := `
		SELECT ` + almacenTelaColumns + `
		FROM almacen_telas
		WHERE almacen_id = $1 AND tela_id = $2
		ORDER BY id DESC
		LIMIT 1`
	at, err := scanAlmacenTela(r.q.QueryRow(context.Background(), query, almacenID, telaID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get almacen_tela: %w", err)
	}
	return at, nil
}

// GetActive devuelve la asignación ACTIVA del par o nil.
func (r *AlmacenTelaRepo) GetActive(almacenID, telaID int64) (*entity.AlmacenTela, error) {
	return r.getActive(almacenID, telaID, false)
}

// GetActiveForUpdate devuelve la asignación ACTIVA bloqueando su fila.
func (r *AlmacenTelaRepo) GetActiveForUpdate(almacenID, telaID int64) (*entity.AlmacenTela, error) {
	return r.getActive(almacenID, telaID, true)
}

func (r *AlmacenTelaRepo) getActive(almacenID, telaID int64, forUpdate bool) (*entity.AlmacenTela, error) {
	query := `
		SELECT ` + almacenTelaColumns + `
		FROM almacen_telas
		WHERE almacen_id = $1 AND tela_id = $2 AND estado = $3`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	at, err := scanAlmacenTela(r.q.QueryRow(context.Background(), query, almacenID, telaID, entity.AlmacenTelaActivo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get almacen_tela activa: %w", err)
	}
	return at, nil
}

func (r *AlmacenTelaRepo) listQuery(query string, args ...any) ([]*entity.AlmacenTela, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list almacen_telas: %w", err)
	}
	defer rows.Close()
	var out []*entity.AlmacenTela
	for rows.Next() {
		at, err := scanAlmacenTela(rows)
		if err != nil {
			return nil, fmt.Errorf("scan almacen_tela: %w", err)
		}
		out = append(out, at)
	}
	return out, rows.Err()
}

// ListByAlmacen devuelve todas las asignaciones del almacén.
func (r *AlmacenTelaRepo) ListByAlmacen(almacenID int64) ([]*entity.AlmacenTela, error) {
	query := `
		SELECT ` + almacenTelaColumns + `
		FROM almacen_telas
		WHERE almacen_id = $1
		ORDER BY fecha_asignacion DESC, id DESC`
	return r.listQuery(query, almacenID)
}

// ListActiveByAlmacen devuelve las asignaciones ACTIVAS del almacén.
func (r *AlmacenTelaRepo) ListActiveByAlmacen(almacenID int64) ([]*entity.AlmacenTela, error) {
	query := `
		SELECT ` + almacenTelaColumns + `
		FROM almacen_telas
		WHERE almacen_id = $1 AND estado = $2
		ORDER BY fecha_asignacion DESC, id DESC`
	return r.listQuery(query, almacenID, entity.AlmacenTelaActivo)
}
