package almacentela

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

// UseCase administra las asignaciones de peso de tela por almacén. Las
// asignaciones llevan su propio peso por almacén y NO registran movimientos
// en el ledger de la tela: son dos contabilidades independientes.
type UseCase struct {
	tx              TxRunner
	almacenRepo     repository.AlmacenRepository
	telaRepo        repository.TelaRepository
	almacenTelaRepo repository.AlmacenTelaRepository
	tracer          trace.Tracer
}

func NewUseCase(
	tx TxRunner,
	almacenRepo repository.AlmacenRepository,
	telaRepo repository.TelaRepository,
	almacenTelaRepo repository.AlmacenTelaRepository,
) *UseCase {
	return &UseCase{
		tx:              tx,
		almacenRepo:     almacenRepo,
		telaRepo:        telaRepo,
		almacenTelaRepo: almacenTelaRepo,
		tracer:          otel.Tracer("telas-api/almacentela"),
	}
}

// Asignar crea una asignación ACTIVA de peso para la tela en el almacén. Si
// ya existe una asignación ACTIVA para el par almacén-tela devuelve
// ErrDuplicate; una CONSUMIDA anterior no estorba, se crea fila nueva.
func (uc *UseCase) Asignar(ctx context.Context, almacenID, telaID int64, peso decimal.Decimal) (*entity.AlmacenTela, error) {
	ctx, span := uc.tracer.Start(ctx, "almacentela.Asignar")
	defer span.End()

	if !peso.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	almacen, err := uc.almacenRepo.GetByID(almacenID)
	if err != nil {
		return nil, err
	}
	if almacen == nil {
		return nil, domain.ErrNotFound
	}
	tela, err := uc.telaRepo.GetByID(telaID)
	if err != nil {
		return nil, err
	}
	if tela == nil {
		return nil, domain.ErrNotFound
	}

	var creada *entity.AlmacenTela
	err = uc.tx.RunTransferencia(ctx, func(repo repository.AlmacenTelaRepository) error {
		existente, err := repo.GetActiveForUpdate(almacenID, telaID)
		if err != nil {
			return err
		}
		if existente != nil {
			return domain.ErrDuplicate
		}
		at := &entity.AlmacenTela{
			AlmacenID:       almacenID,
			TelaID:          telaID,
			Peso:            peso,
			FechaAsignacion: time.Now(),
			Estado:          entity.AlmacenTelaActivo,
		}
		if err := repo.Create(at); err != nil {
			return err
		}
		creada = at
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Int64("almacen_id", almacenID).
		Int64("tela_id", telaID).
		Str("peso", peso.String()).
		Msg("tela asignada a almacén")
	return creada, nil
}

// ActualizarPeso fija el peso de la asignación del par almacén-tela. Es una
// corrección administrativa: no genera movimiento en el ledger de la tela.
func (uc *UseCase) ActualizarPeso(ctx context.Context, almacenID, telaID int64, peso decimal.Decimal) (*entity.AlmacenTela, error) {
	ctx, span := uc.tracer.Start(ctx, "almacentela.ActualizarPeso")
	defer span.End()

	if peso.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var actualizada *entity.AlmacenTela
	err := uc.tx.RunTransferencia(ctx, func(repo repository.AlmacenTelaRepository) error {
		at, err := repo.GetByAlmacenAndTela(almacenID, telaID)
		if err != nil {
			return err
		}
		if at == nil {
			return domain.ErrNotFound
		}
		at.Peso = peso
		if err := repo.Update(at); err != nil {
			return err
		}
		actualizada = at
		return nil
	})
	if err != nil {
		return nil, err
	}
	return actualizada, nil
}

// Transferir mueve peso de la asignación ACTIVA de la tela en el almacén
// origen hacia el destino. Si el origen queda exactamente en cero pasa a
// CONSUMIDO; si el destino no tiene asignación ACTIVA se crea una nueva.
// El traslado no escribe en el ledger de movimientos de la tela: el peso por
// almacén y el stock del lote se llevan por separado.
func (uc *UseCase) Transferir(ctx context.Context, origenID, destinoID, telaID int64, peso decimal.Decimal) error {
	ctx, span := uc.tracer.Start(ctx, "almacentela.Transferir")
	defer span.End()

	if !peso.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if origenID == destinoID {
		return domain.ErrInvalidInput
	}
	destino, err := uc.almacenRepo.GetByID(destinoID)
	if err != nil {
		return err
	}
	if destino == nil {
		return domain.ErrNotFound
	}

	err = uc.tx.RunTransferencia(ctx, func(repo repository.AlmacenTelaRepository) error {
		origen, err := repo.GetActiveForUpdate(origenID, telaID)
		if err != nil {
			return err
		}
		if origen == nil {
			return domain.ErrNotFound
		}
		if origen.Peso.LessThan(peso) {
			return domain.ErrInsufficientStock
		}

		origen.Peso = origen.Peso.Sub(peso)
		if origen.Peso.IsZero() {
			origen.Estado = entity.AlmacenTelaConsumido
		}
		if err := repo.Update(origen); err != nil {
			return err
		}

		dest, err := repo.GetActiveForUpdate(destinoID, telaID)
		if err != nil {
			return err
		}
		if dest == nil {
			dest = &entity.AlmacenTela{
				AlmacenID:       destinoID,
				TelaID:          telaID,
				Peso:            decimal.Zero,
				FechaAsignacion: time.Now(),
				Estado:          entity.AlmacenTelaActivo,
			}
			dest.Peso = dest.Peso.Add(peso)
			return repo.Create(dest)
		}
		dest.Peso = dest.Peso.Add(peso)
		return repo.Update(dest)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info().
		Int64("origen_id", origenID).
		Int64("destino_id", destinoID).
		Int64("tela_id", telaID).
		Str("peso", peso.String()).
		Msg("peso trasladado entre almacenes")
	return nil
}

// ListarPorAlmacen devuelve todas las asignaciones del almacén (activas y
// consumidas), enriquecidas con la tela.
func (uc *UseCase) ListarPorAlmacen(ctx context.Context, almacenID int64) ([]*entity.AlmacenTela, error) {
	almacen, err := uc.almacenRepo.GetByID(almacenID)
	if err != nil {
		return nil, err
	}
	if almacen == nil {
		return nil, domain.ErrNotFound
	}
	asignaciones, err := uc.almacenTelaRepo.ListByAlmacen(almacenID)
	if err != nil {
		return nil, err
	}
	return uc.enriquecer(asignaciones)
}

// Busqueda parámetros de búsqueda dentro de un almacén. Campo vacío busca el
// término en todos los campos; OrdenCampo vacío deja el orden del repositorio.
type Busqueda struct {
	Termino    string
	Campo      string // numGuia | partida | proveedor | cliente
	OrdenCampo string // numGuia | partida | proveedor | cliente | fechaIngreso
	OrdenDir   string // asc | desc
}

func campoValido(campo string) bool {
	switch campo {
	case "numGuia", "partida", "proveedor", "cliente":
		return true
	}
	return false
}

// campoTexto devuelve el valor del campo buscable de la tela.
func campoTexto(t *entity.Tela, campo string) string {
	if t == nil {
		return ""
	}
	switch campo {
	case "numGuia":
		return t.NumGuia
	case "partida":
		return t.Partida
	case "proveedor":
		return t.Proveedor
	case "cliente":
		return t.Cliente
	}
	return ""
}

// BuscarEnAlmacen busca entre las asignaciones ACTIVAS del almacén cuyo lote
// coincide con el término (en un campo o en todos), sin distinguir mayúsculas
// ni tildes, ordena y pagina el resultado.
func (uc *UseCase) BuscarEnAlmacen(ctx context.Context, almacenID int64, b Busqueda, pagina, tamanoPagina int) (listado.Resultado[*entity.AlmacenTela], error) {
	var vacio listado.Resultado[*entity.AlmacenTela]
	if b.Campo != "" && !campoValido(b.Campo) {
		return vacio, domain.ErrInvalidInput
	}
	almacen, err := uc.almacenRepo.GetByID(almacenID)
	if err != nil {
		return vacio, err
	}
	if almacen == nil {
		return vacio, domain.ErrNotFound
	}
	asignaciones, err := uc.almacenTelaRepo.ListActiveByAlmacen(almacenID)
	if err != nil {
		return vacio, err
	}
	asignaciones, err = uc.enriquecer(asignaciones)
	if err != nil {
		return vacio, err
	}
	if b.Termino != "" {
		asignaciones = listado.Filtrar(asignaciones, func(at *entity.AlmacenTela) bool {
			if at.Tela == nil {
				return false
			}
			if b.Campo != "" {
				return listado.ContieneFold(campoTexto(at.Tela, b.Campo), b.Termino)
			}
			return listado.ContieneFold(at.Tela.NumGuia, b.Termino) ||
				listado.ContieneFold(at.Tela.Partida, b.Termino) ||
				listado.ContieneFold(at.Tela.Proveedor, b.Termino) ||
				listado.ContieneFold(at.Tela.Cliente, b.Termino)
		})
	}
	if b.OrdenCampo != "" {
		desc := b.OrdenDir == "desc"
		if b.OrdenCampo == "fechaIngreso" {
			listado.Ordenar(asignaciones, func(a, c *entity.AlmacenTela) int {
				var fa, fc *time.Time
				if a.Tela != nil {
					fa = a.Tela.FechaIngreso
				}
				if c.Tela != nil {
					fc = c.Tela.FechaIngreso
				}
				return listado.CompararFechas(fa, fc)
			}, desc)
		} else {
			if !campoValido(b.OrdenCampo) {
				return vacio, domain.ErrInvalidInput
			}
			listado.Ordenar(asignaciones, func(a, c *entity.AlmacenTela) int {
				return listado.CompararStrings(campoTexto(a.Tela, b.OrdenCampo), campoTexto(c.Tela, b.OrdenCampo))
			}, desc)
		}
	}
	return listado.Paginar(asignaciones, pagina, tamanoPagina)
}

func (uc *UseCase) enriquecer(asignaciones []*entity.AlmacenTela) ([]*entity.AlmacenTela, error) {
	telas := make(map[int64]*entity.Tela)
	for _, at := range asignaciones {
		tela, ok := telas[at.TelaID]
		if !ok {
			var err error
			tela, err = uc.telaRepo.GetByID(at.TelaID)
			if err != nil {
				return nil, err
			}
			telas[at.TelaID] = tela
		}
		at.Tela = tela
	}
	return asignaciones, nil
}
