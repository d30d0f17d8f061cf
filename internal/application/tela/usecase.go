package tela

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tht-textil/telas-api/internal/application/listado"
	"github.com/tht-textil/telas-api/internal/domain"
	"github.com/tht-textil/telas-api/internal/domain/entity"
	"github.com/tht-textil/telas-api/internal/domain/repository"
	"github.com/tht-textil/telas-api/pkg/logger"
)

// UseCase maneja el ingreso y consulta de lotes de tela.
type UseCase struct {
	tx          TxRunner
	telaRepo    repository.TelaRepository
	almacenRepo repository.AlmacenRepository
	tracer      trace.Tracer
}

func NewUseCase(tx TxRunner, telaRepo repository.TelaRepository, almacenRepo repository.AlmacenRepository) *UseCase {
	return &UseCase{
		tx:          tx,
		telaRepo:    telaRepo,
		almacenRepo: almacenRepo,
		tracer:      otel.Tracer("telas-api/tela"),
	}
}

// CrearInput datos del lote que ingresa. AlmacenID en cero significa que el
// lote no se asigna a ningún almacén al ingresar.
type CrearInput struct {
	NumGuia             string
	Partida             string
	OS                  string
	Proveedor           string
	FechaIngreso        *time.Time
	Cliente             string
	Marca               string
	OP                  string
	TipoTela            string
	Descripcion         string
	Ench                string
	CantRollosIngresado int
	PesoIngresado       decimal.Decimal
	Almacen             string
	AlmacenID           int64
}

// Crear registra el lote con stock igual al peso ingresado. Si viene un
// almacén, la asignación inicial se crea en la misma transacción.
func (uc *UseCase) Crear(ctx context.Context, input CrearInput) (*entity.Tela, error) {
	ctx, span := uc.tracer.Start(ctx, "tela.Crear")
	defer span.End()

	if !input.PesoIngresado.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if input.Partida == "" || input.TipoTela == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.AlmacenID != 0 {
		almacen, err := uc.almacenRepo.GetByID(input.AlmacenID)
		if err != nil {
			return nil, err
		}
		if almacen == nil {
			return nil, domain.ErrNotFound
		}
	}

	tela := &entity.Tela{
		NumGuia:             input.NumGuia,
		Partida:             input.Partida,
		OS:                  input.OS,
		Proveedor:           input.Proveedor,
		FechaIngreso:        input.FechaIngreso,
		Cliente:             input.Cliente,
		Marca:               input.Marca,
		OP:                  input.OP,
		TipoTela:            input.TipoTela,
		Descripcion:         input.Descripcion,
		Ench:                input.Ench,
		CantRollosIngresado: input.CantRollosIngresado,
		PesoIngresado:       input.PesoIngresado,
		StockReal:           input.PesoIngresado,
		Estado:              entity.TelaEstadoActivo,
		Almacen:             input.Almacen,
	}
	err := uc.tx.RunIntake(ctx, func(telaRepo repository.TelaRepository, atRepo repository.AlmacenTelaRepository) error {
		if err := telaRepo.Create(tela); err != nil {
			return err
		}
		if input.AlmacenID == 0 {
			return nil
		}
		return atRepo.Create(&entity.AlmacenTela{
			AlmacenID:       input.AlmacenID,
			TelaID:          tela.ID,
			Peso:            input.PesoIngresado,
			FechaAsignacion: time.Now(),
			Estado:          entity.AlmacenTelaActivo,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Int64("tela_id", tela.ID).
		Str("partida", tela.Partida).
		Str("peso", tela.PesoIngresado.String()).
		Msg("lote de tela ingresado")
	return tela, nil
}

// ObtenerPorID devuelve el lote o ErrNotFound.
func (uc *UseCase) ObtenerPorID(ctx context.Context, id int64) (*entity.Tela, error) {
	tela, err := uc.telaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tela == nil {
		return nil, domain.ErrNotFound
	}
	return tela, nil
}

// ActualizarInput campos descriptivos editables del lote. El stock solo se
// mueve por movimientos, nunca por esta vía.
type ActualizarInput struct {
	NumGuia     string
	OS          string
	Proveedor   string
	Cliente     string
	Marca       string
	OP          string
	Descripcion string
	Ench        string
	Almacen     string
}

// Actualizar modifica los datos descriptivos del lote.
func (uc *UseCase) Actualizar(ctx context.Context, id int64, input ActualizarInput) (*entity.Tela, error) {
	tela, err := uc.telaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tela == nil {
		return nil, domain.ErrNotFound
	}
	tela.NumGuia = input.NumGuia
	tela.OS = input.OS
	tela.Proveedor = input.Proveedor
	tela.Cliente = input.Cliente
	tela.Marca = input.Marca
	tela.OP = input.OP
	tela.Descripcion = input.Descripcion
	tela.Ench = input.Ench
	tela.Almacen = input.Almacen
	if err := uc.telaRepo.Update(tela); err != nil {
		return nil, err
	}
	return tela, nil
}

// Desactivar marca el lote como INACTIVO sin tocar su stock.
func (uc *UseCase) Desactivar(ctx context.Context, id int64) error {
	tela, err := uc.telaRepo.GetByID(id)
	if err != nil {
		return err
	}
	if tela == nil {
		return domain.ErrNotFound
	}
	if tela.Estado == entity.TelaEstadoInactivo {
		return domain.ErrInvalidOperation
	}
	tela.Estado = entity.TelaEstadoInactivo
	return uc.telaRepo.Update(tela)
}

// Busqueda criterios de búsqueda de lotes.
type Busqueda struct {
	Texto       string
	Estado      string
	FechaInicio *time.Time
	FechaFin    *time.Time
}

// Buscar trae los lotes (acotados por fecha de ingreso si viene el rango),
// filtra por texto sin distinguir mayúsculas ni tildes, ordena por fecha de
// ingreso descendente y pagina.
func (uc *UseCase) Buscar(ctx context.Context, b Busqueda, pagina, tamanoPagina int) (listado.Resultado[*entity.Tela], error) {
	var (
		telas []*entity.Tela
		err   error
	)
	if b.FechaInicio != nil && b.FechaFin != nil {
		telas, err = uc.telaRepo.ListByFechaIngresoBetween(*b.FechaInicio, *b.FechaFin)
	} else {
		telas, err = uc.telaRepo.ListAll()
	}
	if err != nil {
		return listado.Resultado[*entity.Tela]{}, err
	}
	if b.Estado != "" {
		telas = listado.Filtrar(telas, func(t *entity.Tela) bool { return t.Estado == b.Estado })
	}
	if b.Texto != "" {
		telas = listado.Filtrar(telas, func(t *entity.Tela) bool {
			return listado.ContieneFold(t.Partida, b.Texto) ||
				listado.ContieneFold(t.NumGuia, b.Texto) ||
				listado.ContieneFold(t.Proveedor, b.Texto) ||
				listado.ContieneFold(t.Cliente, b.Texto) ||
				listado.ContieneFold(t.TipoTela, b.Texto) ||
				listado.ContieneFold(t.OP, b.Texto) ||
				listado.ContieneFold(t.Descripcion, b.Texto)
		})
	}
	listado.Ordenar(telas, func(a, b *entity.Tela) int {
		return listado.CompararFechas(a.FechaIngreso, b.FechaIngreso)
	}, true)
	return listado.Paginar(telas, pagina, tamanoPagina)
}
