package movimiento

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tht-textil/telas-api/internal/domain"
	"github.com/tht-textil/telas-api/internal/domain/entity"
	"github.com/tht-textil/telas-api/internal/domain/repository"
)

type telaRepoMem struct {
	telas  map[int64]*entity.Tela
	nextID int64
}

func newTelaRepoMem() *telaRepoMem {
	return &telaRepoMem{telas: make(map[int64]*entity.Tela), nextID: 1}
}

func (r *telaRepoMem) Create(t *entity.Tela) error {
	t.ID = r.nextID
	r.nextID++
	copia := *t
	r.telas[t.ID] = &copia
	return nil
}

func (r *telaRepoMem) GetByID(id int64) (*entity.Tela, error) {
	t, ok := r.telas[id]
	if !ok {
		return nil, nil
	}
	copia := *t
	return &copia, nil
}

func (r *telaRepoMem) GetByIDForUpdate(id int64) (*entity.Tela, error) { return r.GetByID(id) }

func (r *telaRepoMem) Update(t *entity.Tela) error {
	if _, ok := r.telas[t.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *t
	r.telas[t.ID] = &copia
	return nil
}

func (r *telaRepoMem) List(limit, offset int) ([]*entity.Tela, error) { return r.ListAll() }

func (r *telaRepoMem) ListAll() ([]*entity.Tela, error) {
	out := make([]*entity.Tela, 0, len(r.telas))
	for _, t := range r.telas {
		copia := *t
		out = append(out, &copia)
	}
	return out, nil
}

func (r *telaRepoMem) ListByFechaIngresoBetween(desde, hasta time.Time) ([]*entity.Tela, error) {
	return r.ListAll()
}

func (r *telaRepoMem) Count() (int64, error) { return int64(len(r.telas)), nil }

type movRepoMem struct {
	movs   map[int64]*entity.MovimientoTela
	orden  []int64
	nextID int64
}

func newMovRepoMem() *movRepoMem {
	return &movRepoMem{movs: make(map[int64]*entity.MovimientoTela), nextID: 1}
}

func (r *movRepoMem) Create(m *entity.MovimientoTela) error {
	m.ID = r.nextID
	r.nextID++
	copia := *m
	r.movs[m.ID] = &copia
	r.orden = append(r.orden, m.ID)
	return nil
}

func (r *movRepoMem) GetByID(id int64) (*entity.MovimientoTela, error) {
	m, ok := r.movs[id]
	if !ok {
		return nil, nil
	}
	copia := *m
	return &copia, nil
}

func (r *movRepoMem) GetByIDForUpdate(id int64) (*entity.MovimientoTela, error) {
	return r.GetByID(id)
}

func (r *movRepoMem) UpdateEstado(id int64, estado string) error {
	m, ok := r.movs[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Estado = estado
	return nil
}

func (r *movRepoMem) filtrar(pred func(*entity.MovimientoTela) bool) []*entity.MovimientoTela {
	var out []*entity.MovimientoTela
	for i := len(r.orden) - 1; i >= 0; i-- {
		m := r.movs[r.orden[i]]
		if pred(m) {
			copia := *m
			out = append(out, &copia)
		}
	}
	return out
}

func (r *movRepoMem) ListByTela(telaID int64) ([]*entity.MovimientoTela, error) {
	return r.filtrar(func(m *entity.MovimientoTela) bool { return m.TelaID == telaID }), nil
}

func (r *movRepoMem) ListByReferencia(ref string) ([]*entity.MovimientoTela, error) {
	return r.filtrar(func(m *entity.MovimientoTela) bool { return m.ReferenciaDocumento == ref }), nil
}

func (r *movRepoMem) ListByTipo(tipo entity.TipoMovimiento) ([]*entity.MovimientoTela, error) {
	return r.filtrar(func(m *entity.MovimientoTela) bool { return m.Tipo == tipo }), nil
}

func (r *movRepoMem) ListByAreaOrigen(area string) ([]*entity.MovimientoTela, error) {
	return r.filtrar(func(m *entity.MovimientoTela) bool { return m.AreaOrigen == area }), nil
}

func (r *movRepoMem) ListByAreaDestino(area string) ([]*entity.MovimientoTela, error) {
	return r.filtrar(func(m *entity.MovimientoTela) bool { return m.AreaDestino == area }), nil
}

func (r *movRepoMem) ListByFechaBetween(desde, hasta time.Time) ([]*entity.MovimientoTela, error) {
	return r.filtrar(func(m *entity.MovimientoTela) bool {
		return !m.FechaMovimiento.Before(desde) && !m.FechaMovimiento.After(hasta)
	}), nil
}

func (r *movRepoMem) ListByUsuario(usuario string) ([]*entity.MovimientoTela, error) {
	return r.filtrar(func(m *entity.MovimientoTela) bool { return m.UsuarioResponsable == usuario }), nil
}

func (r *movRepoMem) ListByEstado(estado string) ([]*entity.MovimientoTela, error) {
	return r.filtrar(func(m *entity.MovimientoTela) bool { return m.Estado == estado }), nil
}

func (r *movRepoMem) ListAll() ([]*entity.MovimientoTela, error) {
	return r.filtrar(func(*entity.MovimientoTela) bool { return true }), nil
}

func (r *movRepoMem) ListRecent(n int) ([]*entity.MovimientoTela, error) {
	all := r.filtrar(func(*entity.MovimientoTela) bool { return true })
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (r *movRepoMem) Count() (int64, error) { return int64(len(r.movs)), nil }

func (r *movRepoMem) CountByTipo() (map[entity.TipoMovimiento]int64, error) {
	out := make(map[entity.TipoMovimiento]int64)
	for _, m := range r.movs {
		out[m.Tipo]++
	}
	return out, nil
}

// txRunnerMem ejecuta la función directamente contra los repos en memoria.
type txRunnerMem struct {
	telaRepo *telaRepoMem
	movRepo  *movRepoMem
}

func (tx *txRunnerMem) Run(ctx context.Context, fn func(repository.TelaRepository, repository.MovimientoTelaRepository) error) error {
	return fn(tx.telaRepo, tx.movRepo)
}

func nuevaTela(t *testing.T, repo *telaRepoMem, stock string) *entity.Tela {
	t.Helper()
	peso, err := decimal.NewFromString(stock)
	require.NoError(t, err)
	tela := &entity.Tela{
		NumGuia:       "G-001",
		Partida:       "P-100",
		Proveedor:     "Textil Sur",
		TipoTela:      "Jersey 30/1",
		PesoIngresado: peso,
		StockReal:     peso,
		Estado:        entity.TelaEstadoActivo,
	}
	require.NoError(t, repo.Create(tela))
	return tela
}

func setupUseCase(t *testing.T) (*UseCase, *telaRepoMem, *movRepoMem) {
	t.Helper()
	telaRepo := newTelaRepoMem()
	movRepo := newMovRepoMem()
	uc := NewUseCase(&txRunnerMem{telaRepo: telaRepo, movRepo: movRepo}, telaRepo, movRepo)
	return uc, telaRepo, movRepo
}

func TestRegistrarEntrada(t *testing.T) {
	uc, telaRepo, _ := setupUseCase(t)
	tela := nuevaTela(t, telaRepo, "100")

	mov, err := uc.Registrar(context.Background(), RegistrarInput{
		TelaID:             tela.ID,
		AreaOrigen:         "PROVEEDOR",
		AreaDestino:        "ALMACEN",
		Cantidad:           decimal.NewFromInt(25),
		Tipo:               entity.MovimientoEntrada,
		UsuarioResponsable: "jperez",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovimientoEstadoCompletado, mov.Estado)

	actual, err := telaRepo.GetByID(tela.ID)
	require.NoError(t, err)
	assert.True(t, actual.StockReal.Equal(decimal.NewFromInt(125)))
	assert.True(t, actual.PesoIngresado.Equal(decimal.NewFromInt(125)))
}

func TestRegistrarSalidaDescuentaStock(t *testing.T) {
	uc, telaRepo, _ := setupUseCase(t)
	tela := nuevaTela(t, telaRepo, "100")

	_, err := uc.Registrar(context.Background(), RegistrarInput{
		TelaID:      tela.ID,
		AreaOrigen:  "ALMACEN",
		AreaDestino: "CORTE",
		Cantidad:    decimal.NewFromInt(40),
		Tipo:        entity.MovimientoSalida,
	})
	require.NoError(t, err)

	actual, _ := telaRepo.GetByID(tela.ID)
	assert.True(t, actual.StockReal.Equal(decimal.NewFromInt(60)))
	assert.True(t, actual.PesoIngresado.Equal(decimal.NewFromInt(60)))
}

func TestRegistrarSalidaStockInsuficiente(t *testing.T) {
	uc, telaRepo, movRepo := setupUseCase(t)
	tela := nuevaTela(t, telaRepo, "10")

	_, err := uc.Registrar(context.Background(), RegistrarInput{
		TelaID:      tela.ID,
		AreaOrigen:  "ALMACEN",
		AreaDestino: "CORTE",
		Cantidad:    decimal.NewFromInt(40),
		Tipo:        entity.MovimientoSalida,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada quedó escrito: ni tela ni ledger.
	actual, _ := telaRepo.GetByID(tela.ID)
	assert.True(t, actual.StockReal.Equal(decimal.NewFromInt(10)))
	total, _ := movRepo.Count()
	assert.Zero(t, total)
}

func TestRegistrarValidaciones(t *testing.T) {
	uc, telaRepo, _ := setupUseCase(t)
	tela := nuevaTela(t, telaRepo, "100")

	casos := []struct {
		nombre string
		input  RegistrarInput
		esperr error
	}{
		{
			nombre: "cantidad cero",
			input: RegistrarInput{
				TelaID: tela.ID, AreaOrigen: "A", AreaDestino: "B",
				Cantidad: decimal.Zero, Tipo: entity.MovimientoEntrada,
			},
			esperr: domain.ErrInvalidInput,
		},
		{
			nombre: "cantidad negativa",
			input: RegistrarInput{
				TelaID: tela.ID, AreaOrigen: "A", AreaDestino: "B",
				Cantidad: decimal.NewFromInt(-5), Tipo: entity.MovimientoEntrada,
			},
			esperr: domain.ErrInvalidInput,
		},
		{
			nombre: "area origen vacía",
			input: RegistrarInput{
				TelaID: tela.ID, AreaDestino: "B",
				Cantidad: decimal.NewFromInt(5), Tipo: entity.MovimientoEntrada,
			},
			esperr: domain.ErrInvalidInput,
		},
		{
			nombre: "tipo derivado rechazado",
			input: RegistrarInput{
				TelaID: tela.ID, AreaOrigen: "A", AreaDestino: "B",
				Cantidad: decimal.NewFromInt(5), Tipo: entity.MovimientoDevolucionSobrante,
			},
			esperr: domain.ErrInvalidInput,
		},
		{
			nombre: "tela inexistente",
			input: RegistrarInput{
				TelaID: 999, AreaOrigen: "A", AreaDestino: "B",
				Cantidad: decimal.NewFromInt(5), Tipo: entity.MovimientoEntrada,
			},
			esperr: domain.ErrNotFound,
		},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.Registrar(context.Background(), c.input)
			assert.ErrorIs(t, err, c.esperr)
		})
	}
}

func TestAnularSalidaRestauraStock(t *testing.T) {
	uc, telaRepo, movRepo := setupUseCase(t)
	tela := nuevaTela(t, telaRepo, "100")

	mov, err := uc.Registrar(context.Background(), RegistrarInput{
		TelaID:      tela.ID,
		AreaOrigen:  "ALMACEN",
		AreaDestino: "CORTE",
		Cantidad:    decimal.NewFromInt(40),
		Tipo:        entity.MovimientoSalida,
	})
	require.NoError(t, err)

	comp, err := uc.Anular(context.Background(), mov.ID, "guía equivocada", "admin")
	require.NoError(t, err)

	assert.Equal(t, entity.MovimientoAnulacionSalida, comp.Tipo)
	assert.Equal(t, "CORTE", comp.AreaOrigen)
	assert.Equal(t, "ALMACEN", comp.AreaDestino)
	assert.True(t, comp.Cantidad.Equal(decimal.NewFromInt(40)))
	assert.Contains(t, comp.Observaciones, "guía equivocada")

	actual, _ := telaRepo.GetByID(tela.ID)
	assert.True(t, actual.StockReal.Equal(decimal.NewFromInt(100)))

	original, _ := movRepo.GetByID(mov.ID)
	assert.Equal(t, entity.MovimientoEstadoAnulado, original.Estado)
}

func TestAnularEntradaConStockConsumidoFalla(t *testing.T) {
	uc, telaRepo, _ := setupUseCase(t)
	tela := nuevaTela(t, telaRepo, "100")

	entrada, err := uc.Registrar(context.Background(), RegistrarInput{
		TelaID: tela.ID, AreaOrigen: "PROVEEDOR", AreaDestino: "ALMACEN",
		Cantidad: decimal.NewFromInt(50), Tipo: entity.MovimientoEntrada,
	})
	require.NoError(t, err)

	// Se consume casi todo: revertir la entrada dejaría stock negativo.
	_, err = uc.Registrar(context.Background(), RegistrarInput{
		TelaID: tela.ID, AreaOrigen: "ALMACEN", AreaDestino: "CORTE",
		Cantidad: decimal.NewFromInt(120), Tipo: entity.MovimientoSalida,
	})
	require.NoError(t, err)

	_, err = uc.Anular(context.Background(), entrada.ID, "error de digitación", "admin")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El original sigue COMPLETADO.
	hist, err := uc.Historial(context.Background(), tela.ID)
	require.NoError(t, err)
	for _, m := range hist {
		assert.Equal(t, entity.MovimientoEstadoCompletado, m.Estado)
	}
}

func TestAnularDosVecesFalla(t *testing.T) {
	uc, telaRepo, movRepo := setupUseCase(t)
	tela := nuevaTela(t, telaRepo, "100")

	mov, err := uc.Registrar(context.Background(), RegistrarInput{
		TelaID: tela.ID, AreaOrigen: "ALMACEN", AreaDestino: "CORTE",
		Cantidad: decimal.NewFromInt(10), Tipo: entity.MovimientoSalida,
	})
	require.NoError(t, err)

	_, err = uc.Anular(context.Background(), mov.ID, "x", "admin")
	require.NoError(t, err)
	movsAntes := len(movRepo.movs)

	_, err = uc.Anular(context.Background(), mov.ID, "x", "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	// El segundo intento no escribe nada en el ledger ni toca el stock.
	assert.Len(t, movRepo.movs, movsAntes)
	actual, _ := telaRepo.GetByID(tela.ID)
	assert.True(t, actual.StockReal.Equal(decimal.NewFromInt(100)))
}

func TestAnularAnulacionFalla(t *testing.T) {
	uc, telaRepo, _ := setupUseCase(t)
	tela := nuevaTela(t, telaRepo, "100")

	mov, err := uc.Registrar(context.Background(), RegistrarInput{
		TelaID: tela.ID, AreaOrigen: "ALMACEN", AreaDestino: "CORTE",
		Cantidad: decimal.NewFromInt(10), Tipo: entity.MovimientoSalida,
	})
	require.NoError(t, err)

	comp, err := uc.Anular(context.Background(), mov.ID, "x", "admin")
	require.NoError(t, err)

	// Una anulación no es reversible.
	_, err = uc.Anular(context.Background(), comp.ID, "y", "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestHistorialEnriqueceConTela(t *testing.T) {
	uc, telaRepo, _ := setupUseCase(t)
	tela := nuevaTela(t, telaRepo, "100")

	_, err := uc.Registrar(context.Background(), RegistrarInput{
		TelaID: tela.ID, AreaOrigen: "PROVEEDOR", AreaDestino: "ALMACEN",
		Cantidad: decimal.NewFromInt(5), Tipo: entity.MovimientoEntrada,
	})
	require.NoError(t, err)

	hist, err := uc.Historial(context.Background(), tela.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	require.NotNil(t, hist[0].Tela)
	assert.Equal(t, "P-100", hist[0].Tela.Partida)
}

func TestHistorialTelaInexistente(t *testing.T) {
	uc, _, _ := setupUseCase(t)
	_, err := uc.Historial(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuscarPorTipoYPaginar(t *testing.T) {
	uc, telaRepo, _ := setupUseCase(t)
	tela := nuevaTela(t, telaRepo, "1000")

	for i := 0; i < 5; i++ {
		_, err := uc.Registrar(context.Background(), RegistrarInput{
			TelaID: tela.ID, AreaOrigen: "ALMACEN", AreaDestino: "CORTE",
			Cantidad: decimal.NewFromInt(10), Tipo: entity.MovimientoSalida,
		})
		require.NoError(t, err)
	}

	res, err := uc.Buscar(context.Background(), Filtro{Tipo: entity.MovimientoSalida}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Total)
	assert.Len(t, res.Datos, 2)
	assert.Equal(t, 1, res.Pagina)
}

func TestBuscarTipoInvalido(t *testing.T) {
	uc, _, _ := setupUseCase(t)
	_, err := uc.Buscar(context.Background(), Filtro{Tipo: "ROTACION"}, 0, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEstadisticas(t *testing.T) {
	uc, telaRepo, _ := setupUseCase(t)
	tela := nuevaTela(t, telaRepo, "100")

	_, err := uc.Registrar(context.Background(), RegistrarInput{
		TelaID: tela.ID, AreaOrigen: "PROVEEDOR", AreaDestino: "ALMACEN",
		Cantidad: decimal.NewFromInt(5), Tipo: entity.MovimientoEntrada,
	})
	require.NoError(t, err)
	_, err = uc.Registrar(context.Background(), RegistrarInput{
		TelaID: tela.ID, AreaOrigen: "ALMACEN", AreaDestino: "CORTE",
		Cantidad: decimal.NewFromInt(5), Tipo: entity.MovimientoSalida,
	})
	require.NoError(t, err)

	stats, err := uc.ObtenerEstadisticas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalMovimientos)
	assert.Len(t, stats.UltimosMovimientos, 2)
	assert.Equal(t, int64(1), stats.MovimientosPorTipo[entity.MovimientoEntrada])
	assert.Equal(t, int64(1), stats.MovimientosPorTipo[entity.MovimientoSalida])
}
