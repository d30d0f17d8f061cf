package importacion

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
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
	mu     sync.Mutex
	telas  []*entity.Tela
	nextID int64
}

func (r *telaRepoMem) Create(t *entity.Tela) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	t.ID = r.nextID
	copia := *t
	r.telas = append(r.telas, &copia)
	return nil
}

func (r *telaRepoMem) GetByID(int64) (*entity.Tela, error)          { return nil, nil }
func (r *telaRepoMem) GetByIDForUpdate(int64) (*entity.Tela, error) { return nil, nil }
func (r *telaRepoMem) Update(*entity.Tela) error                    { return nil }
func (r *telaRepoMem) List(int, int) ([]*entity.Tela, error)        { return nil, nil }
func (r *telaRepoMem) ListAll() ([]*entity.Tela, error)             { return r.telas, nil }
func (r *telaRepoMem) ListByFechaIngresoBetween(a, b time.Time) ([]*entity.Tela, error) {
	return nil, nil
}
func (r *telaRepoMem) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.telas)), nil
}

type atRepoMem struct {
	mu     sync.Mutex
	filas  []*entity.AlmacenTela
	nextID int64
}

func (r *atRepoMem) Create(at *entity.AlmacenTela) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	at.ID = r.nextID
	copia := *at
	r.filas = append(r.filas, &copia)
	return nil
}

func (r *atRepoMem) Update(*entity.AlmacenTela) error { return nil }
func (r *atRepoMem) GetByAlmacenAndTela(int64, int64) (*entity.AlmacenTela, error) {
	return nil, nil
}
func (r *atRepoMem) GetActive(int64, int64) (*entity.AlmacenTela, error)          { return nil, nil }
func (r *atRepoMem) GetActiveForUpdate(int64, int64) (*entity.AlmacenTela, error) { return nil, nil }
func (r *atRepoMem) ListByAlmacen(almacenID int64) ([]*entity.AlmacenTela, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.AlmacenTela
	for _, at := range r.filas {
		if at.AlmacenID == almacenID {
			copia := *at
			out = append(out, &copia)
		}
	}
	return out, nil
}
func (r *atRepoMem) ListActiveByAlmacen(almacenID int64) ([]*entity.AlmacenTela, error) {
	return r.ListByAlmacen(almacenID)
}

type almacenRepoMem struct {
	almacenes map[int64]*entity.Almacen
}

func (r *almacenRepoMem) Create(*entity.Almacen) error { return nil }
func (r *almacenRepoMem) GetByID(id int64) (*entity.Almacen, error) {
	a, ok := r.almacenes[id]
	if !ok {
		return nil, nil
	}
	copia := *a
	return &copia, nil
}
func (r *almacenRepoMem) List() ([]*entity.Almacen, error) { return nil, nil }

type txRunnerMem struct {
	telaRepo *telaRepoMem
	atRepo   *atRepoMem
}

func (tx *txRunnerMem) RunIntake(ctx context.Context, fn func(
	repository.TelaRepository,
	repository.AlmacenTelaRepository,
) error) error {
	return fn(tx.telaRepo, tx.atRepo)
}

type parserStub struct {
	filas []Fila
	errs  []error
	err   error
}

func (p *parserStub) Parse(io.Reader) ([]Fila, []error, error) {
	return p.filas, p.errs, p.err
}

func fila(numero int, partida string, peso int64) Fila {
	return Fila{
		Numero:        numero,
		Partida:       partida,
		TipoTela:      "Jersey",
		PesoIngresado: decimal.NewFromInt(peso),
	}
}

const almacenID = int64(1)

type fixture struct {
	uc       *UseCase
	telaRepo *telaRepoMem
	atRepo   *atRepoMem
}

func setup(parser Parser, workers int) *fixture {
	telaRepo := &telaRepoMem{}
	atRepo := &atRepoMem{}
	almacenes := &almacenRepoMem{almacenes: map[int64]*entity.Almacen{
		almacenID: {ID: almacenID, NombreAlmacen: "Almacén Principal", Estado: "ACTIVO"},
	}}
	uc := NewUseCase(&txRunnerMem{telaRepo: telaRepo, atRepo: atRepo}, almacenes, parser, workers)
	return &fixture{uc: uc, telaRepo: telaRepo, atRepo: atRepo}
}

func TestImportarTodasLasFilas(t *testing.T) {
	f := setup(&parserStub{filas: []Fila{
		fila(2, "P-1", 100),
		fila(3, "P-2", 200),
		fila(4, "P-3", 300),
	}}, 4)

	res, err := f.uc.Importar(context.Background(), almacenID, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalRegistros)
	assert.Equal(t, 3, res.RegistrosImportados)
	assert.Zero(t, res.RegistrosFallidos)
	assert.Empty(t, res.Errores)
	assert.NotEmpty(t, res.LoteID)

	total, _ := f.telaRepo.Count()
	assert.Equal(t, int64(3), total)
}

func TestImportarCreaAsignacionesEnElAlmacen(t *testing.T) {
	f := setup(&parserStub{filas: []Fila{
		fila(2, "P-1", 100),
		fila(3, "P-2", 200),
	}}, 2)

	res, err := f.uc.Importar(context.Background(), almacenID, strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, 2, res.RegistrosImportados)

	asignaciones, err := f.atRepo.ListByAlmacen(almacenID)
	require.NoError(t, err)
	require.Len(t, asignaciones, 2)

	pesos := make(map[int64]decimal.Decimal)
	for _, at := range asignaciones {
		assert.Equal(t, entity.AlmacenTelaActivo, at.Estado)
		assert.NotZero(t, at.TelaID)
		pesos[at.TelaID] = at.Peso
	}
	telas, _ := f.telaRepo.ListAll()
	for _, tela := range telas {
		peso, ok := pesos[tela.ID]
		require.True(t, ok, "tela %d sin asignación", tela.ID)
		assert.True(t, peso.Equal(tela.PesoIngresado))
	}
}

func TestImportarAlmacenInexistente(t *testing.T) {
	f := setup(&parserStub{filas: []Fila{fila(2, "P-1", 100)}}, 2)

	_, err := f.uc.Importar(context.Background(), 99, strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	total, _ := f.telaRepo.Count()
	assert.Zero(t, total)
}

func TestImportarFilasMalasNoAbortanElResto(t *testing.T) {
	f := setup(&parserStub{filas: []Fila{
		fila(2, "P-1", 100),
		fila(3, "", 200),  // partida vacía
		fila(4, "P-3", 0), // peso inválido
		fila(5, "P-4", 50),
	}}, 2)

	res, err := f.uc.Importar(context.Background(), almacenID, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 4, res.TotalRegistros)
	assert.Equal(t, 2, res.RegistrosImportados)
	assert.Equal(t, 2, res.RegistrosFallidos)
	require.Len(t, res.Errores, 2)
	assert.Contains(t, res.Errores[0], "fila 3")
	assert.Contains(t, res.Errores[1], "fila 4")

	// Solo las filas buenas dejan asignación.
	asignaciones, _ := f.atRepo.ListByAlmacen(almacenID)
	assert.Len(t, asignaciones, 2)
}

func TestImportarConErroresDeParseo(t *testing.T) {
	f := setup(&parserStub{
		filas: []Fila{fila(2, "P-1", 100)},
		errs:  []error{errors.New("fila 3: peso ilegible")},
	}, 2)

	res, err := f.uc.Importar(context.Background(), almacenID, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalRegistros)
	assert.Equal(t, 1, res.RegistrosImportados)
	assert.Equal(t, 1, res.RegistrosFallidos)
	require.Len(t, res.Errores, 1)
	assert.Contains(t, res.Errores[0], "peso ilegible")
}

func TestImportarArchivoIlegible(t *testing.T) {
	f := setup(&parserStub{err: errors.New("formato no reconocido")}, 2)

	_, err := f.uc.Importar(context.Background(), almacenID, strings.NewReader("no es un xlsx"))
	assert.Error(t, err)
}

func TestImportarMuchasFilasConPocosWorkers(t *testing.T) {
	var filas []Fila
	for i := 0; i < 50; i++ {
		filas = append(filas, fila(i+2, "P-lote", 10))
	}
	f := setup(&parserStub{filas: filas}, 3)

	res, err := f.uc.Importar(context.Background(), almacenID, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 50, res.RegistrosImportados)
	total, _ := f.telaRepo.Count()
	assert.Equal(t, int64(50), total)

	asignaciones, _ := f.atRepo.ListByAlmacen(almacenID)
	assert.Len(t, asignaciones, 50)
}
