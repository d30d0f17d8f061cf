// Package excel lee y escribe los archivos XLSX de importación y reportes.
package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/tht-textil/telas-api/internal/application/importacion"
)

var _ importacion.Parser = (*Parser)(nil)

// Columnas esperadas en la primera hoja, en este orden. La fila 1 es la
// cabecera y se ignora.
const (
	colNumGuia = iota
	colPartida
	colOS
	colProveedor
	colFechaIngreso
	colCliente
	colMarca
	colOP
	colTipoTela
	colDescripcion
	colEnch
	colCantRollos
	colPesoIngresado
	colAlmacen
	numColumnas
)

// fechas aceptadas en la columna FECHA INGRESO.
var formatosFecha = []string{"02/01/2006", "2006-01-02", "02-01-2006"}

// Parser lee el XLSX de importación masiva de telas.
type Parser struct{}

func NewParser() *Parser { return &Parser{} }

// Parse lee la primera hoja del archivo. Las filas con celdas ilegibles se
// reportan en errs sin detener la lectura; err solo se devuelve si el archivo
// no es un XLSX válido o no tiene hojas.
func (p *Parser) Parse(r io.Reader) (filas []importacion.Fila, errs []error, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer f.Close()

	hojas := f.GetSheetList()
	if len(hojas) == 0 {
		return nil, nil, fmt.Errorf("el archivo no tiene hojas")
	}
	rows, err := f.GetRows(hojas[0])
	if err != nil {
		return nil, nil, fmt.Errorf("leer hoja %q: %w", hojas[0], err)
	}

	for i, row := range rows {
		if i == 0 {
			continue // cabecera
		}
		numero := i + 1
		if filaVacia(row) {
			continue
		}
		fila, err := parseFila(numero, row)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		filas = append(filas, fila)
	}
	return filas, errs, nil
}

func filaVacia(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func celda(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFila(numero int, row []string) (importacion.Fila, error) {
	fila := importacion.Fila{
		Numero:      numero,
		NumGuia:     celda(row, colNumGuia),
		Partida:     celda(row, colPartida),
		OS:          celda(row, colOS),
		Proveedor:   celda(row, colProveedor),
		Cliente:     celda(row, colCliente),
		Marca:       celda(row, colMarca),
		OP:          celda(row, colOP),
		TipoTela:    celda(row, colTipoTela),
		Descripcion: celda(row, colDescripcion),
		Ench:        celda(row, colEnch),
		Almacen:     celda(row, colAlmacen),
	}

	if raw := celda(row, colFechaIngreso); raw != "" {
		fecha, err := parseFecha(raw)
		if err != nil {
			return fila, fmt.Errorf("fila %d: fecha de ingreso %q ilegible", numero, raw)
		}
		fila.FechaIngreso = &fecha
	}

	if raw := celda(row, colCantRollos); raw != "" {
		rollos, err := strconv.Atoi(raw)
		if err != nil {
			return fila, fmt.Errorf("fila %d: cantidad de rollos %q ilegible", numero, raw)
		}
		fila.CantRollosIngresado = rollos
	}

	raw := celda(row, colPesoIngresado)
	if raw == "" {
		return fila, fmt.Errorf("fila %d: peso ingresado vacío", numero)
	}
	peso, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return fila, fmt.Errorf("fila %d: peso ingresado %q ilegible", numero, raw)
	}
	fila.PesoIngresado = peso
	return fila, nil
}

func parseFecha(raw string) (time.Time, error) {
	for _, layout := range formatosFecha {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("formato de fecha no reconocido")
}
