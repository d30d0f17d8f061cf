package importacion

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tht-textil/telas-api/internal/application/dto"
	"github.com/tht-textil/telas-api/internal/domain"
	"github.com/tht-textil/telas-api/internal/domain/entity"
	"github.com/tht-textil/telas-api/internal/domain/repository"
	"github.com/tht-textil/telas-api/pkg/logger"
)

// UseCase importa lotes de tela en masa desde un archivo Excel hacia un
// almacén. Las filas se procesan en paralelo acotado por workers; cada fila se
// confirma en su propia transacción y las que fallan se reportan sin abortar
// el resto.
type UseCase struct {
	tx          TxRunner
	almacenRepo repository.AlmacenRepository
	parser      Parser
	workers     int
	tracer      trace.Tracer
}

func NewUseCase(tx TxRunner, almacenRepo repository.AlmacenRepository, parser Parser, workers int) *UseCase {
	if workers < 1 {
		workers = 1
	}
	return &UseCase{
		tx:          tx,
		almacenRepo: almacenRepo,
		parser:      parser,
		workers:     workers,
		tracer:      otel.Tracer("telas-api/importacion"),
	}
}

// Importar lee el archivo, valida cada fila y la persiste junto con su
// asignación ACTIVA en el almacén destino. Devuelve el resumen del lote con
// los errores por fila; solo devuelve error si el almacén no existe o el
// archivo mismo no se pudo leer.
func (uc *UseCase) Importar(ctx context.Context, almacenID int64, r io.Reader) (*dto.ImportacionResultado, error) {
	ctx, span := uc.tracer.Start(ctx, "importacion.Importar")
	defer span.End()

	almacen, err := uc.almacenRepo.GetByID(almacenID)
	if err != nil {
		return nil, err
	}
	if almacen == nil {
		return nil, domain.ErrNotFound
	}

	loteID := uuid.NewString()
	log := logger.FromContext(ctx).With().
		Str("lote_id", loteID).
		Int64("almacen_id", almacenID).
		Logger()

	filas, errsParse, err := uc.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	resultado := &dto.ImportacionResultado{
		LoteID:         loteID,
		TotalRegistros: len(filas) + len(errsParse),
	}
	for _, e := range errsParse {
		resultado.Errores = append(resultado.Errores, e.Error())
	}

	type fallo struct {
		numero int
		msg    string
	}
	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		fallos     []fallo
		importadas int
	)
	sem := make(chan struct{}, uc.workers)

	for _, fila := range filas {
		wg.Add(1)
		sem <- struct{}{}
		go func(fila Fila) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := uc.importarFila(ctx, almacenID, fila); err != nil {
				mu.Lock()
				fallos = append(fallos, fallo{
					numero: fila.Numero,
					msg:    fmt.Sprintf("fila %d: %v", fila.Numero, err),
				})
				mu.Unlock()
				return
			}
			mu.Lock()
			importadas++
			mu.Unlock()
		}(fila)
	}
	wg.Wait()

	sort.Slice(fallos, func(i, j int) bool { return fallos[i].numero < fallos[j].numero })
	for _, f := range fallos {
		resultado.Errores = append(resultado.Errores, f.msg)
	}
	resultado.RegistrosImportados = importadas
	resultado.RegistrosFallidos = resultado.TotalRegistros - importadas

	log.Info().
		Int("total", resultado.TotalRegistros).
		Int("importadas", resultado.RegistrosImportados).
		Int("fallidas", resultado.RegistrosFallidos).
		Msg("importación de telas finalizada")
	return resultado, nil
}

func (uc *UseCase) importarFila(ctx context.Context, almacenID int64, fila Fila) error {
	if fila.Partida == "" {
		return fmt.Errorf("partida vacía")
	}
	if fila.TipoTela == "" {
		return fmt.Errorf("tipo de tela vacío")
	}
	if !fila.PesoIngresado.GreaterThan(decimal.Zero) {
		return fmt.Errorf("peso ingresado debe ser mayor a cero")
	}

	tela := &entity.Tela{
		NumGuia:             fila.NumGuia,
		Partida:             fila.Partida,
		OS:                  fila.OS,
		Proveedor:           fila.Proveedor,
		FechaIngreso:        fila.FechaIngreso,
		Cliente:             fila.Cliente,
		Marca:               fila.Marca,
		OP:                  fila.OP,
		TipoTela:            fila.TipoTela,
		Descripcion:         fila.Descripcion,
		Ench:                fila.Ench,
		CantRollosIngresado: fila.CantRollosIngresado,
		PesoIngresado:       fila.PesoIngresado,
		StockReal:           fila.PesoIngresado,
		Estado:              entity.TelaEstadoActivo,
		Almacen:             fila.Almacen,
	}
	return uc.tx.RunIntake(ctx, func(telaRepo repository.TelaRepository, atRepo repository.AlmacenTelaRepository) error {
		if err := telaRepo.Create(tela); err != nil {
			return err
		}
		return atRepo.Create(&entity.AlmacenTela{
			AlmacenID:       almacenID,
			TelaID:          tela.ID,
			Peso:            fila.PesoIngresado,
			FechaAsignacion: time.Now(),
			Estado:          entity.AlmacenTelaActivo,
		})
	})
}
