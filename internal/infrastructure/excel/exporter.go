package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tht-textil/telas-api/internal/domain/entity"
)

// Exporter escribe reportes XLSX de stock y movimientos.
type Exporter struct{}

func NewExporter() *Exporter { return &Exporter{} }

const formatoFechaReporte = "02/01/2006"

// ExportarTelas escribe el reporte de lotes con su stock vigente.
func (e *Exporter) ExportarTelas(w io.Writer, telas []*entity.Tela) error {
	f := excelize.NewFile()
	defer f.Close()

	const hoja = "Telas"
	f.SetSheetName("Sheet1", hoja)

	cabecera := []any{
		"ID", "NUM GUIA", "PARTIDA", "OS", "PROVEEDOR", "FECHA INGRESO",
		"CLIENTE", "MARCA", "OP", "TIPO TELA", "DESCRIPCION", "ENCH",
		"CANT ROLLOS", "PESO INGRESADO", "STOCK REAL", "ESTADO", "ALMACEN",
	}
	if err := f.SetSheetRow(hoja, "A1", &cabecera); err != nil {
		return fmt.Errorf("escribir cabecera: %w", err)
	}

	for i, t := range telas {
		fechaIngreso := ""
		if t.FechaIngreso != nil {
			fechaIngreso = t.FechaIngreso.Format(formatoFechaReporte)
		}
		fila := []any{
			t.ID, t.NumGuia, t.Partida, t.OS, t.Proveedor, fechaIngreso,
			t.Cliente, t.Marca, t.OP, t.TipoTela, t.Descripcion, t.Ench,
			t.CantRollosIngresado, t.PesoIngresado.InexactFloat64(),
			t.StockReal.InexactFloat64(), t.Estado, t.Almacen,
		}
		celda := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(hoja, celda, &fila); err != nil {
			return fmt.Errorf("escribir fila %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("escribir xlsx: %w", err)
	}
	return nil
}

// ExportarMovimientos escribe el reporte del ledger de movimientos.
func (e *Exporter) ExportarMovimientos(w io.Writer, movs []*entity.MovimientoTela) error {
	f := excelize.NewFile()
	defer f.Close()

	const hoja = "Movimientos"
	f.SetSheetName("Sheet1", hoja)

	cabecera := []any{
		"ID", "TELA", "PARTIDA", "TIPO", "AREA ORIGEN", "AREA DESTINO",
		"CANTIDAD", "FECHA", "REFERENCIA", "USUARIO", "ESTADO", "OBSERVACIONES",
	}
	if err := f.SetSheetRow(hoja, "A1", &cabecera); err != nil {
		return fmt.Errorf("escribir cabecera: %w", err)
	}

	for i, m := range movs {
		partida := ""
		if m.Tela != nil {
			partida = m.Tela.Partida
		}
		fila := []any{
			m.ID, m.TelaID, partida, string(m.Tipo), m.AreaOrigen,
			m.AreaDestino, m.Cantidad.InexactFloat64(),
			m.FechaMovimiento.Format(formatoFechaReporte + " 15:04"),
			m.ReferenciaDocumento, m.UsuarioResponsable, m.Estado,
			m.Observaciones,
		}
		celda := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(hoja, celda, &fila); err != nil {
			return fmt.Errorf("escribir fila %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("escribir xlsx: %w", err)
	}
	return nil
}
