package corte

import (
	"context"
	"fmt"
	"strconv"
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

// AreaAlmacen es el área origen de toda salida a corte y el destino de sus
// reversiones y devoluciones.
const AreaAlmacen = "ALMACEN"

// UseCase maneja el ciclo de vida de las salidas a servicio de corte:
// despacho, anulación y corrección por consumo real. Cada operación muta la
// tela, el ledger y la salida en una sola transacción.
type UseCase struct {
	tx         TxRunner
	telaRepo   repository.TelaRepository
	salidaRepo repository.SalidaCorteRepository
	tracer     trace.Tracer
}

func NewUseCase(tx TxRunner, telaRepo repository.TelaRepository, salidaRepo repository.SalidaCorteRepository) *UseCase {
	return &UseCase{
		tx:         tx,
		telaRepo:   telaRepo,
		salidaRepo: salidaRepo,
		tracer:     otel.Tracer("telas-api/corte"),
	}
}

// RegistrarInput datos para despachar tela a un servicio de corte.
type RegistrarInput struct {
	TelaID             int64
	ServicioCorte      string
	FechaSalida        *time.Time
	NotaSalida         string
	OP                 string
	Cantidad           decimal.Decimal
	AreaDestino        string
	UsuarioResponsable string
}

// Registrar despacha tela a corte: descuenta el stock del lote, crea la
// salida COMPLETADA y deja un movimiento SALIDA referenciando la salida.
func (uc *UseCase) Registrar(ctx context.Context, input RegistrarInput) (*entity.SalidaCorte, error) {
	ctx, span := uc.tracer.Start(ctx, "corte.Registrar")
	defer span.End()

	if !input.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if input.AreaDestino == "" || input.ServicioCorte == "" {
		return nil, domain.ErrInvalidInput
	}

	var creada *entity.SalidaCorte
	err := uc.tx.RunCorte(ctx, func(
		telaRepo repository.TelaRepository,
		movRepo repository.MovimientoTelaRepository,
		salidaRepo repository.SalidaCorteRepository,
	) error {
		tela, err := telaRepo.GetByIDForUpdate(input.TelaID)
		if err != nil {
			return err
		}
		if tela == nil {
			return domain.ErrNotFound
		}
		if err := tela.DecreaseStock(input.Cantidad); err != nil {
			return err
		}
		if err := telaRepo.Update(tela); err != nil {
			return err
		}

		salida := &entity.SalidaCorte{
			TelaID:             input.TelaID,
			ServicioCorte:      input.ServicioCorte,
			FechaSalida:        input.FechaSalida,
			NotaSalida:         input.NotaSalida,
			OP:                 input.OP,
			SalidaCorte:        input.Cantidad,
			AreaDestino:        input.AreaDestino,
			Estado:             entity.SalidaEstadoCompletado,
			UsuarioResponsable: input.UsuarioResponsable,
			FechaRegistro:      time.Now(),
		}
		if err := salidaRepo.Create(salida); err != nil {
			return err
		}

		mov := &entity.MovimientoTela{
			TelaID:              input.TelaID,
			AreaOrigen:          AreaAlmacen,
			AreaDestino:         input.AreaDestino,
			Cantidad:            input.Cantidad,
			FechaMovimiento:     time.Now(),
			Tipo:                entity.MovimientoSalida,
			ReferenciaDocumento: strconv.FormatInt(salida.ID, 10),
			UsuarioResponsable:  input.UsuarioResponsable,
			Estado:              entity.MovimientoEstadoCompletado,
			Observaciones:       fmt.Sprintf("OP: %s, Nota: %s", input.OP, input.NotaSalida),
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		creada = salida
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Int64("salida_id", creada.ID).
		Int64("tela_id", input.TelaID).
		Str("cantidad", input.Cantidad.String()).
		Msg("salida a corte registrada")
	return creada, nil
}

// Anular revierte una salida COMPLETADA: devuelve al lote la cantidad vigente
// de la salida (el consumo real si ya fue corregida), marca la salida como
// ANULADA y deja un movimiento ANULACION_SALIDA de regreso al almacén.
func (uc *UseCase) Anular(ctx context.Context, salidaID int64, motivo, usuario string) error {
	ctx, span := uc.tracer.Start(ctx, "corte.Anular")
	defer span.End()

	err := uc.tx.RunCorte(ctx, func(
		telaRepo repository.TelaRepository,
		movRepo repository.MovimientoTelaRepository,
		salidaRepo repository.SalidaCorteRepository,
	) error {
		salida, err := salidaRepo.GetByIDForUpdate(salidaID)
		if err != nil {
			return err
		}
		if salida == nil {
			return domain.ErrNotFound
		}
		if salida.Estado != entity.SalidaEstadoCompletado {
			return domain.ErrInvalidOperation
		}

		tela, err := telaRepo.GetByIDForUpdate(salida.TelaID)
		if err != nil {
			return err
		}
		if tela == nil {
			return domain.ErrNotFound
		}
		if err := tela.IncreaseStock(salida.SalidaCorte); err != nil {
			return err
		}
		if err := telaRepo.Update(tela); err != nil {
			return err
		}

		salida.Estado = entity.SalidaEstadoAnulado
		if err := salidaRepo.Update(salida); err != nil {
			return err
		}

		mov := &entity.MovimientoTela{
			TelaID:              salida.TelaID,
			AreaOrigen:          salida.AreaDestino,
			AreaDestino:         AreaAlmacen,
			Cantidad:            salida.SalidaCorte,
			FechaMovimiento:     time.Now(),
			Tipo:                entity.MovimientoAnulacionSalida,
			ReferenciaDocumento: strconv.FormatInt(salida.ID, 10),
			UsuarioResponsable:  usuario,
			Estado:              entity.MovimientoEstadoCompletado,
			Observaciones:       fmt.Sprintf("Anulación de salida a corte ID: %d. Motivo: %s", salidaID, motivo),
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Int64("salida_id", salidaID).Msg("salida a corte anulada")
	return nil
}

// RegistrarConsumoReal corrige una salida con lo que el servicio de corte
// consumió de verdad. El sobrante vuelve al stock del lote con un movimiento
// DEVOLUCION_SOBRANTE y la cantidad de la salida queda sobrescrita con el
// consumo real. Correcciones sucesivas se calculan contra la cantidad ya
// corregida, no contra la original.
func (uc *UseCase) RegistrarConsumoReal(ctx context.Context, salidaID int64, consumoReal decimal.Decimal, observacion, usuario string) (*entity.SalidaCorte, error) {
	ctx, span := uc.tracer.Start(ctx, "corte.RegistrarConsumoReal")
	defer span.End()

	var corregida *entity.SalidaCorte
	err := uc.tx.RunCorte(ctx, func(
		telaRepo repository.TelaRepository,
		movRepo repository.MovimientoTelaRepository,
		salidaRepo repository.SalidaCorteRepository,
	) error {
		salida, err := salidaRepo.GetByIDForUpdate(salidaID)
		if err != nil {
			return err
		}
		if salida == nil {
			return domain.ErrNotFound
		}
		if salida.Estado != entity.SalidaEstadoCompletado {
			return domain.ErrInvalidOperation
		}
		if !consumoReal.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidOperation
		}
		if consumoReal.GreaterThan(salida.SalidaCorte) {
			return domain.ErrInvalidOperation
		}

		sobrante := salida.SalidaCorte.Sub(consumoReal)
		if sobrante.IsZero() {
			corregida = salida
			return nil
		}

		tela, err := telaRepo.GetByIDForUpdate(salida.TelaID)
		if err != nil {
			return err
		}
		if tela == nil {
			return domain.ErrNotFound
		}
		if err := tela.IncreaseStock(sobrante); err != nil {
			return err
		}
		if err := telaRepo.Update(tela); err != nil {
			return err
		}

		mov := &entity.MovimientoTela{
			TelaID:              salida.TelaID,
			AreaOrigen:          salida.AreaDestino,
			AreaDestino:         AreaAlmacen,
			Cantidad:            sobrante,
			FechaMovimiento:     time.Now(),
			Tipo:                entity.MovimientoDevolucionSobrante,
			ReferenciaDocumento: strconv.FormatInt(salida.ID, 10),
			UsuarioResponsable:  usuario,
			Estado:              entity.MovimientoEstadoCompletado,
			Observaciones:       "Devolución de sobrante. " + observacion,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		salida.SalidaCorte = consumoReal
		if err := salidaRepo.Update(salida); err != nil {
			return err
		}
		corregida = salida
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Int64("salida_id", salidaID).
		Str("consumo_real", consumoReal.String()).
		Msg("consumo real registrado")
	return corregida, nil
}

// ObtenerPorID devuelve la salida enriquecida con su tela.
func (uc *UseCase) ObtenerPorID(ctx context.Context, salidaID int64) (*entity.SalidaCorte, error) {
	salida, err := uc.salidaRepo.GetByID(salidaID)
	if err != nil {
		return nil, err
	}
	if salida == nil {
		return nil, domain.ErrNotFound
	}
	salidas, err := uc.enriquecer([]*entity.SalidaCorte{salida})
	if err != nil {
		return nil, err
	}
	return salidas[0], nil
}

// Filtro criterios de búsqueda de salidas; se aplica el primero no vacío.
type Filtro struct {
	TelaID      int64
	OP          string
	AreaDestino string
	FechaInicio *time.Time
	FechaFin    *time.Time
}

// Buscar aplica el primer filtro no vacío, enriquece y pagina.
func (uc *UseCase) Buscar(ctx context.Context, filtro Filtro, pagina, tamanoPagina int) (listado.Resultado[*entity.SalidaCorte], error) {
	var (
		salidas []*entity.SalidaCorte
		err     error
	)
	switch {
	case filtro.TelaID != 0:
		salidas, err = uc.salidaRepo.ListByTela(filtro.TelaID)
	case filtro.OP != "":
		salidas, err = uc.salidaRepo.ListByOP(filtro.OP)
	case filtro.AreaDestino != "":
		salidas, err = uc.salidaRepo.ListByAreaDestino(filtro.AreaDestino)
	case filtro.FechaInicio != nil && filtro.FechaFin != nil:
		salidas, err = uc.salidaRepo.ListByFechaSalidaBetween(*filtro.FechaInicio, *filtro.FechaFin)
	default:
		salidas, err = uc.salidaRepo.ListAll()
	}
	if err != nil {
		return listado.Resultado[*entity.SalidaCorte]{}, err
	}
	salidas, err = uc.enriquecer(salidas)
	if err != nil {
		return listado.Resultado[*entity.SalidaCorte]{}, err
	}
	return listado.Paginar(salidas, pagina, tamanoPagina)
}

func (uc *UseCase) enriquecer(salidas []*entity.SalidaCorte) ([]*entity.SalidaCorte, error) {
	telas := make(map[int64]*entity.Tela)
	for _, s := range salidas {
		tela, ok := telas[s.TelaID]
		if !ok {
			var err error
			tela, err = uc.telaRepo.GetByID(s.TelaID)
			if err != nil {
				return nil, err
			}
			telas[s.TelaID] = tela
		}
		s.Tela = tela
	}
	return salidas, nil
}
