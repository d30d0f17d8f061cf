package importacion

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tht-textil/telas-api/internal/domain/repository"
)

// Fila es un registro de lote leído de un archivo de importación.
type Fila struct {
	Numero              int
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
}

// Parser lee un archivo de importación y devuelve sus filas. Los errores de
// celda (peso ilegible, fecha malformada) vienen por fila en errs; err se
// reserva para archivos ilegibles.
type Parser interface {
	Parse(r io.Reader) (filas []Fila, errs []error, err error)
}

// TxRunner igual que en el ingreso manual: cada fila importada se confirma en
// su propia transacción, de modo que una fila mala no tumba a las demás.
type TxRunner interface {
	RunIntake(ctx context.Context, fn func(
		telaRepo repository.TelaRepository,
		almacenTelaRepo repository.AlmacenTelaRepository,
	) error) error
}
