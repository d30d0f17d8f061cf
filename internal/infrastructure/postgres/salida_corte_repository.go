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

var _ repository.SalidaCorteRepository = (*SalidaCorteRepo)(nil)

var salidaColumns = []string{
	"id", "tela_id", "servicio_corte", "fecha_salida", "nota_salida", "op",
	"salida_corte", "area_destino", "estado", "usuario_responsable",
	"fecha_registro", "fecha_actualizacion",
}

// SalidaCorteRepo implementación de SalidaCorteRepository sobre PostgreSQL.
type SalidaCorteRepo struct {
	q Querier
}

// NewSalidaCorteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalidaCorteRepository(q Querier) *SalidaCorteRepo {
	return &SalidaCorteRepo{q: q}
}

// Create inserta la salida y completa su ID y timestamps.
func (r *SalidaCorteRepo) Create(s *entity.SalidaCorte) error {
	query, args, err := psql.Insert("salidas_corte").
		Columns("tela_id", "servicio_corte", "fecha_salida", "nota_salida",
			"op", "salida_corte", "area_destino", "estado",
			"usuario_responsable", "fecha_registro", "fecha_actualizacion").
		Values(s.TelaID, s.ServicioCorte, s.FechaSalida, s.NotaSalida, s.OP,
			s.SalidaCorte, s.AreaDestino, s.Estado, s.UsuarioResponsable,
			sq.Expr("now()"), sq.Expr("now()")).
		Suffix("RETURNING id, fecha_registro, fecha_actualizacion").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert salida: %w", err)
	}
	err = r.q.QueryRow(context.Background(), query, args...).
		Scan(&s.ID, &s.FechaRegistro, &s.FechaActualizacion)
	if err != nil {
		return fmt.Errorf("create salida corte: %w", err)
	}
	return nil
}

// GetByID devuelve la salida o nil si no existe.
func (r *SalidaCorteRepo) GetByID(id int64) (*entity.SalidaCorte, error) {
	return r.getOne(id, false)
}

// GetByIDForUpdate devuelve la salida bloqueando su fila.
func (r *SalidaCorteRepo) GetByIDForUpdate(id int64) (*entity.SalidaCorte, error) {
	return r.getOne(id, true)
}

func (r *SalidaCorteRepo) getOne(id int64, forUpdate bool) (*entity.SalidaCorte, error) {
	b := psql.Select(salidaColumns...).From("salidas_corte").Where(sq.Eq{"id": id})
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select salida: %w", err)
	}
	var s entity.SalidaCorte
	if err := pgxscan.Get(context.Background(), r.q, &s, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get salida corte: %w", err)
	}
	return &s, nil
}

// Update persiste los campos mutables de la salida (cantidad y estado).
func (r *SalidaCorteRepo) Update(s *entity.SalidaCorte) error {
	query, args, err := psql.Update("salidas_corte").
		Set("servicio_corte", s.ServicioCorte).
		Set("fecha_salida", s.FechaSalida).
		Set("nota_salida", s.NotaSalida).
		Set("op", s.OP).
		Set("salida_corte", s.SalidaCorte).
		Set("area_destino", s.AreaDestino).
		Set("estado", s.Estado).
		Set("fecha_actualizacion", sq.Expr("now()")).
		Where(sq.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update salida: %w", err)
	}
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("update salida corte: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update salida corte: id %d no existe", s.ID)
	}
	return nil
}

func (r *SalidaCorteRepo) listWhere(pred any) ([]*entity.SalidaCorte, error) {
	b := psql.Select(salidaColumns...).
		From("salidas_corte").
		OrderBy("fecha_registro DESC", "id DESC")
	if pred != nil {
		b = b.Where(pred)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list salidas: %w", err)
	}
	var salidas []*entity.SalidaCorte
	if err := pgxscan.Select(context.Background(), r.q, &salidas, query, args...); err != nil {
		return nil, fmt.Errorf("list salidas corte: %w", err)
	}
	return salidas, nil
}

func (r *SalidaCorteRepo) ListByTela(telaID int64) ([]*entity.SalidaCorte, error) {
	return r.listWhere(sq.Eq{"tela_id": telaID})
}

func (r *SalidaCorteRepo) ListByOP(op string) ([]*entity.SalidaCorte, error) {
	return r.listWhere(sq.Eq{"op": op})
}

func (r *SalidaCorteRepo) ListByAreaDestino(area string) ([]*entity.SalidaCorte, error) {
	return r.listWhere(sq.Eq{"area_destino": area})
}

func (r *SalidaCorteRepo) ListByFechaSalidaBetween(desde, hasta time.Time) ([]*entity.SalidaCorte, error) {
	return r.listWhere(sq.And{
		sq.GtOrEq{"fecha_salida": desde},
		sq.LtOrEq{"fecha_salida": hasta},
	})
}

func (r *SalidaCorteRepo) ListAll() ([]*entity.SalidaCorte, error) {
	return r.listWhere(nil)
}
