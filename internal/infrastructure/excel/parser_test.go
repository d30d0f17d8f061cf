package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func construirXLSX(t *testing.T, filas [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	cabecera := []any{
		"NUM GUIA", "PARTIDA", "OS", "PROVEEDOR", "FECHA INGRESO", "CLIENTE",
		"MARCA", "OP", "TIPO TELA", "DESCRIPCION", "ENCH", "CANT ROLLOS",
		"PESO INGRESADO", "ALMACEN",
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &cabecera))
	for i, fila := range filas {
		celda, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", celda, &fila))
	}

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestParseFilasValidas(t *testing.T) {
	buf := construirXLSX(t, [][]any{
		{"G-001", "P-100", "OS-1", "Textil Sur", "15/01/2026", "Cliente A",
			"Marca X", "OP-500", "Jersey 30/1", "algodón peinado", "E-1", "12", "250.50", "PRINCIPAL"},
		{"G-002", "P-101", "", "Algodón Andino", "2026-02-20", "", "", "",
			"Piqué", "", "", "", "1200", ""},
	})

	filas, errs, err := NewParser().Parse(buf)
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, filas, 2)

	assert.Equal(t, 2, filas[0].Numero)
	assert.Equal(t, "P-100", filas[0].Partida)
	assert.Equal(t, "Jersey 30/1", filas[0].TipoTela)
	assert.Equal(t, 12, filas[0].CantRollosIngresado)
	assert.Equal(t, "250.5", filas[0].PesoIngresado.String())
	require.NotNil(t, filas[0].FechaIngreso)
	assert.Equal(t, 2026, filas[0].FechaIngreso.Year())

	assert.Equal(t, "1200", filas[1].PesoIngresado.String())
	require.NotNil(t, filas[1].FechaIngreso)
	assert.Equal(t, 2, int(filas[1].FechaIngreso.Month()))
}

func TestParseFilasMalasSeReportan(t *testing.T) {
	buf := construirXLSX(t, [][]any{
		{"G-001", "P-100", "", "", "", "", "", "", "Jersey", "", "", "", "100", ""},
		{"G-002", "P-101", "", "", "99/99/9999", "", "", "", "Jersey", "", "", "", "100", ""},
		{"G-003", "P-102", "", "", "", "", "", "", "Jersey", "", "", "", "no-numero", ""},
		{"G-004", "P-103", "", "", "", "", "", "", "Jersey", "", "", "", "", ""},
	})

	filas, errs, err := NewParser().Parse(buf)
	require.NoError(t, err)
	assert.Len(t, filas, 1)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "fila 3")
	assert.Contains(t, errs[0].Error(), "fecha")
	assert.Contains(t, errs[1].Error(), "fila 4")
	assert.Contains(t, errs[1].Error(), "peso")
	assert.Contains(t, errs[2].Error(), "fila 5")
}

func TestParseFilasVaciasSeIgnoran(t *testing.T) {
	buf := construirXLSX(t, [][]any{
		{"G-001", "P-100", "", "", "", "", "", "", "Jersey", "", "", "", "100", ""},
		{"", "", "", "", "", "", "", "", "", "", "", "", "", ""},
	})

	filas, errs, err := NewParser().Parse(buf)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Len(t, filas, 1)
}

func TestParseArchivoInvalido(t *testing.T) {
	_, _, err := NewParser().Parse(bytes.NewReader([]byte("esto no es un xlsx")))
	assert.Error(t, err)
}
