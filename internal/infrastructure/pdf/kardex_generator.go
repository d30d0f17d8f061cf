// Package pdf genera el kardex de un lote de tela: sus datos de cabecera y el
// ledger de movimientos con totales de entradas, salidas y stock vigente.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/tht-textil/telas-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// KardexGenerator genera el kardex PDF con Maroto v2.
type KardexGenerator struct{}

func NewKardexGenerator() *KardexGenerator { return &KardexGenerator{} }

// GenerateKardex genera el PDF del kardex de la tela y devuelve sus bytes.
// movs debe venir del más reciente al más antiguo; se imprime en ese orden.
func (g *KardexGenerator) GenerateKardex(_ context.Context, tela *entity.Tela, movs []*entity.MovimientoTela) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex de Tela", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(tela))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(loteRow(tela))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range movimientoRows(movs) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalesRow(tela, movs))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título y partida (izq), stock vigente (der).
func headerRow(tela *entity.Tela) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("KARDEX DE TELA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Partida: "+tela.Partida, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("STOCK VIGENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(tela.StockReal.StringFixed(2)+" kg", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Ingresado: "+tela.PesoIngresado.StringFixed(2)+" kg", props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// loteRow: datos descriptivos del lote.
func loteRow(tela *entity.Tela) core.Row {
	fechaIngreso := "—"
	if tela.FechaIngreso != nil {
		fechaIngreso = tela.FechaIngreso.Format("02/01/2006")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DEL LOTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Guía: %s   |   Proveedor: %s   |   Tipo: %s   |   OP: %s",
				nonEmpty(tela.NumGuia, "—"),
				nonEmpty(tela.Proveedor, "—"),
				nonEmpty(tela.TipoTela, "—"),
				nonEmpty(tela.OP, "—"),
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(fmt.Sprintf("Ingreso: %s   |   Rollos: %d   |   Almacén: %s",
				fechaIngreso, tela.CantRollosIngresado, nonEmpty(tela.Almacen, "—"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 3, align.Left),
		h("Origen", 2, align.Left),
		h("Destino", 2, align.Left),
		h("Cantidad", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

// movimientoRows: una fila por movimiento del ledger.
func movimientoRows(movs []*entity.MovimientoTela) []core.Row {
	result := make([]core.Row, 0, len(movs))
	for _, mv := range movs {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				mv.FechaMovimiento.Format("02/01/2006 15:04"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				string(mv.Tipo),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				mv.AreaOrigen,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				mv.AreaDestino,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				mv.Cantidad.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				mv.Estado,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// totalesRow: entradas, salidas y stock final a la derecha.
func totalesRow(tela *entity.Tela, movs []*entity.MovimientoTela) core.Row {
	entradas, salidas := sumarPorEfecto(movs)

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Total entradas:"),
			label("Total salidas:"),
			grandLabel("STOCK VIGENTE:"),
		),
		col.New(3).Add(
			value(entradas.StringFixed(2)+" kg"),
			value(salidas.StringFixed(2)+" kg"),
			grandValue(tela.StockReal.StringFixed(2)+" kg"),
		),
		col.New(3),
	)
}

// sumarPorEfecto acumula los movimientos COMPLETADOS según aumenten o
// disminuyan el stock.
func sumarPorEfecto(movs []*entity.MovimientoTela) (entradas, salidas decimal.Decimal) {
	for _, mv := range movs {
		if mv.Estado != entity.MovimientoEstadoCompletado {
			continue
		}
		switch mv.Tipo {
		case entity.MovimientoEntrada, entity.MovimientoDevolucionSobrante,
			entity.MovimientoAnulacionSalida, entity.MovimientoAnulacionTraslado:
			entradas = entradas.Add(mv.Cantidad)
		case entity.MovimientoSalida, entity.MovimientoTraslado,
			entity.MovimientoAnulacionEntrada:
			salidas = salidas.Add(mv.Cantidad)
		}
	}
	return entradas, salidas
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
