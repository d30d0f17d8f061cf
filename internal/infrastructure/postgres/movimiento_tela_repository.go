package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/tht-textil/telas-api/internal/domain/entity"
	"github.com/tht-textil/telas-api/internal/domain/repository"
)

var _ repository.MovimientoTelaRepository = (*MovimientoTelaRepo)(nil)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var movimientoColumns = []string{
	"id", "tela_id", "area_origen", "area_destino", "cantidad",
	"fecha_movimiento", "tipo", "referencia_documento", "usuario_responsable",
	"estado", "observaciones",
}

// MovimientoTelaRepo implementación del ledger de movimientos sobre
// PostgreSQL. Los listados se arman con squirrel y se escanean con scany.
type MovimientoTelaRepo struct {
	q Querier
}

// NewMovimientoTelaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoTelaRepository(q Querier) *MovimientoTelaRepo {
	return &MovimientoTelaRepo{q: q}
}

// Create inserta el movimiento y completa su ID. El ledger es de solo
// agregado: no existe update general, solo el cambio de estado.
func (r *MovimientoTelaRepo) Create(m *entity.MovimientoTela) error {
	query, args, err := psql.Insert("movimientos_tela").
		Columns(movimientoColumns[1:]...).
		Values(m.TelaID, m.AreaOrigen, m.AreaDestino, m.Cantidad,
			m.FechaMovimiento, m.Tipo, m.ReferenciaDocumento,
			m.UsuarioResponsable, m.Estado, m.Observaciones).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert movimiento: %w", err)
	}
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&m.ID); err != nil {
		return fmt.Errorf("create movimiento: %w", err)
	}
	return nil
}

// GetByID devuelve el movimiento o nil si no existe.
func (r *MovimientoTelaRepo) GetByID(id int64) (*entity.MovimientoTela, error) {
	return r.getOne(sq.Eq{"id": id}, false)
}

// GetByIDForUpdate devuelve el movimiento bloqueando su fila.
func (r *MovimientoTelaRepo) GetByIDForUpdate(id int64) (*entity.MovimientoTela, error) {
	return r.getOne(sq.Eq{"id": id}, true)
}

func (r *MovimientoTelaRepo) getOne(pred any, forUpdate bool) (*entity.MovimientoTela, error) {
	b := psql.Select(movimientoColumns...).From("movimientos_tela").Where(pred)
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select movimiento: %w", err)
	}
	var m entity.MovimientoTela
	if err := pgxscan.Get(context.Background(), r.q, &m, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return &m, nil
}

// UpdateEstado cambia solo el estado del movimiento (COMPLETADO -> ANULADO).
func (r *MovimientoTelaRepo) UpdateEstado(id int64, estado string) error {
	query, args, err := psql.Update("movimientos_tela").
		Set("estado", estado).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update estado: %w", err)
	}
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("update estado movimiento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update estado movimiento: id %d no existe", id)
	}
	return nil
}

func (r *MovimientoTelaRepo) list(b sq.SelectBuilder) ([]*entity.MovimientoTela, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list movimientos: %w", err)
	}
	var movs []*entity.MovimientoTela
	if err := pgxscan.Select(context.Background(), r.q, &movs, query, args...); err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	return movs, nil
}

func (r *MovimientoTelaRepo) listWhere(pred any) ([]*entity.MovimientoTela, error) {
	return r.list(psql.Select(movimientoColumns...).
		From("movimientos_tela").
		Where(pred).
		OrderBy("fecha_movimiento DESC", "id DESC"))
}

func (r *MovimientoTelaRepo) ListByTela(telaID int64) ([]*entity.MovimientoTela, error) {
	return r.listWhere(sq.Eq{"tela_id": telaID})
}

func (r *MovimientoTelaRepo) ListByReferencia(referencia string) ([]*entity.MovimientoTela, error) {
	return r.listWhere(sq.Eq{"referencia_documento": referencia})
}

func (r *MovimientoTelaRepo) ListByTipo(tipo entity.TipoMovimiento) ([]*entity.MovimientoTela, error) {
	return r.listWhere(sq.Eq{"tipo": tipo})
}

func (r *MovimientoTelaRepo) ListByAreaOrigen(area string) ([]*entity.MovimientoTela, error) {
	return r.listWhere(sq.Eq{"area_origen": area})
}

func (r *MovimientoTelaRepo) ListByAreaDestino(area string) ([]*entity.MovimientoTela, error) {
	return r.listWhere(sq.Eq{"area_destino": area})
}

func (r *MovimientoTelaRepo) ListByFechaBetween(desde, hasta time.Time) ([]*entity.MovimientoTela, error) {
	return r.listWhere(sq.And{
		sq.GtOrEq{"fecha_movimiento": desde},
		sq.LtOrEq{"fecha_movimiento": hasta},
	})
}

func (r *MovimientoTelaRepo) ListByUsuario(usuario string) ([]*entity.MovimientoTela, error) {
	return r.listWhere(sq.Eq{"usuario_responsable": usuario})
}

func (r *MovimientoTelaRepo) ListByEstado(estado string) ([]*entity.MovimientoTela, error) {
	return r.listWhere(sq.Eq{"estado": estado})
}

func (r *MovimientoTelaRepo) ListAll() ([]*entity.MovimientoTela, error) {
	return r.list(psql.Select(movimientoColumns...).
		From("movimientos_tela").
		OrderBy("fecha_movimiento DESC", "id DESC"))
}

// ListRecent devuelve los n movimientos más recientes.
func (r *MovimientoTelaRepo) ListRecent(n int) ([]*entity.MovimientoTela, error) {
	return r.list(psql.Select(movimientoColumns...).
		From("movimientos_tela").
		OrderBy("fecha_movimiento DESC", "id DESC").
		Limit(uint64(n)))
}

// Count devuelve el total de movimientos del ledger.
func (r *MovimientoTelaRepo) Count() (int64, error) {
	query, args, err := psql.Select("count(*)").From("movimientos_tela").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count movimientos: %w", err)
	}
	var total int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movimientos: %w", err)
	}
	return total, nil
}

// CountByTipo devuelve cuántos movimientos hay de cada tipo.
func (r *MovimientoTelaRepo) CountByTipo() (map[entity.TipoMovimiento]int64, error) {
	query, args, err := psql.Select("tipo", "count(*)").
		From("movimientos_tela").
		GroupBy("tipo").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count por tipo: %w", err)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("count por tipo: %w", err)
	}
	defer rows.Close()

	out := make(map[entity.TipoMovimiento]int64)
	for rows.Next() {
		var tipo entity.TipoMovimiento
		var total int64
		if err := rows.Scan(&tipo, &total); err != nil {
			return nil, fmt.Errorf("scan count por tipo: %w", err)
		}
		out[tipo] = total
	}
	return out, rows.Err()
}
