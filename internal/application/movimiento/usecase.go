package movimiento

import (
	"context"
	"fmt"
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

// UseCase es el recorder del ledger de movimientos: registra eventos que
// afectan stock y los compensa con anulaciones, siempre en una sola
// transacción junto con la mutación de la tela.
type UseCase struct {
	tx       TxRunner
	telaRepo repository.TelaRepository
	movRepo  repository.MovimientoTelaRepository
	tracer   trace.Tracer
}

// NewUseCase construye el caso de uso. telaRepo y movRepo se usan solo para
// consultas (fuera de transacción).
func NewUseCase(tx TxRunner, telaRepo repository.TelaRepository, movRepo repository.MovimientoTelaRepository) *UseCase {
	return &UseCase{
		tx:       tx,
		telaRepo: telaRepo,
		movRepo:  movRepo,
		tracer:   otel.Tracer("telas-api/movimiento"),
	}
}

// RegistrarInput entrada para registrar un movimiento manual.
type RegistrarInput struct {
	TelaID              int64
	AreaOrigen          string
	AreaDestino         string
	Cantidad            decimal.Decimal
	Tipo                entity.TipoMovimiento
	ReferenciaDocumento string
	UsuarioResponsable  string
	Observaciones       string
}

// Registrar valida la entrada, bloquea la fila de la tela (FOR UPDATE), aplica
// el efecto del tipo sobre el stock y persiste tela + movimiento COMPLETADO
// como una unidad. ENTRADA aumenta; SALIDA y TRASLADO disminuyen (propagando
// ErrInsufficientStock); cualquier otro tipo se rechaza.
func (uc *UseCase) Registrar(ctx context.Context, input RegistrarInput) (*entity.MovimientoTela, error) {
	ctx, span := uc.tracer.Start(ctx, "movimiento.Registrar")
	defer span.End()

	if !input.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if input.AreaOrigen == "" || input.AreaDestino == "" {
		return nil, domain.ErrInvalidInput
	}
	switch input.Tipo {
	case entity.MovimientoEntrada, entity.MovimientoSalida, entity.MovimientoTraslado:
	default:
		// Tipos derivados (anulaciones, devoluciones) solo los emite el motor.
		return nil, domain.ErrInvalidInput
	}

	logger.FromContext(ctx).Info().
		Int64("tela_id", input.TelaID).
		Str("tipo", string(input.Tipo)).
		Str("origen", input.AreaOrigen).
		Str("destino", input.AreaDestino).
		Msg("registrando movimiento de tela")

	var creado *entity.MovimientoTela
	err := uc.tx.Run(ctx, func(telaRepo repository.TelaRepository, movRepo repository.MovimientoTelaRepository) error {
		tela, err := telaRepo.GetByIDForUpdate(input.TelaID)
		if err != nil {
			return err
		}
		if tela == nil {
			return domain.ErrNotFound
		}

		switch input.Tipo {
		case entity.MovimientoEntrada:
			err = tela.IncreaseStock(input.Cantidad)
		case entity.MovimientoSalida, entity.MovimientoTraslado:
			err = tela.DecreaseStock(input.Cantidad)
		}
		if err != nil {
			return err
		}
		if err := telaRepo.Update(tela); err != nil {
			return err
		}

		mov := &entity.MovimientoTela{
			TelaID:              input.TelaID,
			AreaOrigen:          input.AreaOrigen,
			AreaDestino:         input.AreaDestino,
			Cantidad:            input.Cantidad,
			FechaMovimiento:     time.Now(),
			Tipo:                input.Tipo,
			ReferenciaDocumento: input.ReferenciaDocumento,
			UsuarioResponsable:  input.UsuarioResponsable,
			Estado:              entity.MovimientoEstadoCompletado,
			Observaciones:       input.Observaciones,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		creado = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return creado, nil
}

// Anular compensa un movimiento COMPLETADO: aplica el efecto inverso sobre la
// tela, marca el original como ANULADO y agrega un movimiento
// ANULACION_<tipo> con origen y destino invertidos. Una sola transacción.
// Anular la ENTRADA de una tela ya consumida falla con ErrInsufficientStock.
func (uc *UseCase) Anular(ctx context.Context, movimientoID int64, motivo, usuario string) (*entity.MovimientoTela, error) {
	ctx, span := uc.tracer.Start(ctx, "movimiento.Anular")
	defer span.End()

	logger.FromContext(ctx).Info().Int64("movimiento_id", movimientoID).Msg("anulando movimiento")

	var anulacion *entity.MovimientoTela
	err := uc.tx.Run(ctx, func(telaRepo repository.TelaRepository, movRepo repository.MovimientoTelaRepository) error {
		mov, err := movRepo.GetByIDForUpdate(movimientoID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if mov.Estado != entity.MovimientoEstadoCompletado {
			return domain.ErrInvalidOperation
		}
		tipoAnulacion, ok := mov.Tipo.Anulacion()
		if !ok {
			return domain.ErrInvalidOperation
		}

		tela, err := telaRepo.GetByIDForUpdate(mov.TelaID)
		if err != nil {
			return err
		}
		if tela == nil {
			return domain.ErrNotFound
		}

		switch mov.Tipo {
		case entity.MovimientoSalida, entity.MovimientoTraslado:
			err = tela.IncreaseStock(mov.Cantidad)
		case entity.MovimientoEntrada:
			err = tela.DecreaseStock(mov.Cantidad)
		}
		if err != nil {
			return err
		}
		if err := telaRepo.Update(tela); err != nil {
			return err
		}
		if err := movRepo.UpdateEstado(mov.ID, entity.MovimientoEstadoAnulado); err != nil {
			return err
		}

		comp := &entity.MovimientoTela{
			TelaID:              mov.TelaID,
			AreaOrigen:          mov.AreaDestino,
			AreaDestino:         mov.AreaOrigen,
			Cantidad:            mov.Cantidad,
			FechaMovimiento:     time.Now(),
			Tipo:                tipoAnulacion,
			ReferenciaDocumento: mov.ReferenciaDocumento,
			UsuarioResponsable:  usuario,
			Estado:              entity.MovimientoEstadoCompletado,
			Observaciones:       fmt.Sprintf("Anulación de movimiento ID: %d. Motivo: %s", movimientoID, motivo),
		}
		if err := movRepo.Create(comp); err != nil {
			return err
		}
		anulacion = comp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return anulacion, nil
}

// Historial devuelve los movimientos de una tela, más recientes primero,
// enriquecidos con la tela.
func (uc *UseCase) Historial(ctx context.Context, telaID int64) ([]*entity.MovimientoTela, error) {
	tela, err := uc.telaRepo.GetByID(telaID)
	if err != nil {
		return nil, err
	}
	if tela == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movRepo.ListByTela(telaID)
	if err != nil {
		return nil, err
	}
	for _, m := range movs {
		m.Tela = tela
	}
	return movs, nil
}

// PorReferencia devuelve los movimientos asociados a un documento de
// referencia (por ejemplo el ID de una salida a corte).
func (uc *UseCase) PorReferencia(ctx context.Context, referencia string) ([]*entity.MovimientoTela, error) {
	movs, err := uc.movRepo.ListByReferencia(referencia)
	if err != nil {
		return nil, err
	}
	return uc.enriquecer(movs)
}

// Filtro criterios de búsqueda de movimientos; se aplica el primero no vacío.
type Filtro struct {
	TelaID      int64
	Tipo        entity.TipoMovimiento
	AreaOrigen  string
	AreaDestino string
	FechaInicio *time.Time
	FechaFin    *time.Time
	Usuario     string
	Estado      string
}

// Buscar aplica el primer filtro no vacío, enriquece con las telas y pagina.
func (uc *UseCase) Buscar(ctx context.Context, filtro Filtro, pagina, tamanoPagina int) (listado.Resultado[*entity.MovimientoTela], error) {
	var (
		movs []*entity.MovimientoTela
		err  error
	)
	switch {
	case filtro.TelaID != 0:
		movs, err = uc.movRepo.ListByTela(filtro.TelaID)
	case filtro.Tipo != "":
		if !filtro.Tipo.Valid() {
			return listado.Resultado[*entity.MovimientoTela]{}, domain.ErrInvalidInput
		}
		movs, err = uc.movRepo.ListByTipo(filtro.Tipo)
	case filtro.AreaOrigen != "":
		movs, err = uc.movRepo.ListByAreaOrigen(filtro.AreaOrigen)
	case filtro.AreaDestino != "":
		movs, err = uc.movRepo.ListByAreaDestino(filtro.AreaDestino)
	case filtro.FechaInicio != nil && filtro.FechaFin != nil:
		movs, err = uc.movRepo.ListByFechaBetween(*filtro.FechaInicio, *filtro.FechaFin)
	case filtro.Usuario != "":
		movs, err = uc.movRepo.ListByUsuario(filtro.Usuario)
	case filtro.Estado != "":
		movs, err = uc.movRepo.ListByEstado(filtro.Estado)
	default:
		movs, err = uc.movRepo.ListAll()
	}
	if err != nil {
		return listado.Resultado[*entity.MovimientoTela]{}, err
	}
	movs, err = uc.enriquecer(movs)
	if err != nil {
		return listado.Resultado[*entity.MovimientoTela]{}, err
	}
	return listado.Paginar(movs, pagina, tamanoPagina)
}

// Estadisticas resumen del ledger.
type Estadisticas struct {
	TotalMovimientos   int64                           `json:"totalMovimientos"`
	UltimosMovimientos []*entity.MovimientoTela        `json:"ultimosMovimientos"`
	MovimientosPorTipo map[entity.TipoMovimiento]int64 `json:"movimientosPorTipo"`
}

// ObtenerEstadisticas devuelve total, últimos 10 movimientos y conteos por tipo.
func (uc *UseCase) ObtenerEstadisticas(ctx context.Context) (*Estadisticas, error) {
	total, err := uc.movRepo.Count()
	if err != nil {
		return nil, err
	}
	ultimos, err := uc.movRepo.ListRecent(10)
	if err != nil {
		return nil, err
	}
	ultimos, err = uc.enriquecer(ultimos)
	if err != nil {
		return nil, err
	}
	porTipo, err := uc.movRepo.CountByTipo()
	if err != nil {
		return nil, err
	}
	return &Estadisticas{
		TotalMovimientos:   total,
		UltimosMovimientos: ultimos,
		MovimientosPorTipo: porTipo,
	}, nil
}

// enriquecer adjunta la tela a cada movimiento; un movimiento cuya tela no se
// encuentra se devuelve sin enriquecer.
func (uc *UseCase) enriquecer(movs []*entity.MovimientoTela) ([]*entity.MovimientoTela, error) {
	telas := make(map[int64]*entity.Tela)
	for _, m := range movs {
		tela, ok := telas[m.TelaID]
		if !ok {
			var err error
			tela, err = uc.telaRepo.GetByID(m.TelaID)
			if err != nil {
				return nil, err
			}
			telas[m.TelaID] = tela
		}
		m.Tela = tela
	}
	return movs, nil
}
