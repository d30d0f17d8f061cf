package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTipoMovimientoValid(t *testing.T) {
	validos := []TipoMovimiento{
		MovimientoEntrada, MovimientoSalida, MovimientoTraslado,
		MovimientoDevolucionSobrante,
		MovimientoAnulacionEntrada, MovimientoAnulacionSalida, MovimientoAnulacionTraslado,
	}
	for _, tipo := range validos {
		assert.True(t, tipo.Valid(), "tipo %s", tipo)
	}

	assert.False(t, TipoMovimiento("").Valid())
	assert.False(t, TipoMovimiento("AJUSTE").Valid())
	assert.False(t, TipoMovimiento("entrada").Valid())
}

func TestTipoMovimientoEsAnulacion(t *testing.T) {
	assert.True(t, MovimientoAnulacionEntrada.EsAnulacion())
	assert.True(t, MovimientoAnulacionSalida.EsAnulacion())
	assert.True(t, MovimientoAnulacionTraslado.EsAnulacion())

	assert.False(t, MovimientoEntrada.EsAnulacion())
	assert.False(t, MovimientoDevolucionSobrante.EsAnulacion())
}

func TestTipoMovimientoAnulacion(t *testing.T) {
	casos := map[TipoMovimiento]TipoMovimiento{
		MovimientoEntrada:  MovimientoAnulacionEntrada,
		MovimientoSalida:   MovimientoAnulacionSalida,
		MovimientoTraslado: MovimientoAnulacionTraslado,
	}
	for base, esperado := range casos {
		inverso, ok := base.Anulacion()
		assert.True(t, ok)
		assert.Equal(t, esperado, inverso)
	}

	// Las devoluciones y las propias anulaciones no se anulan.
	for _, tipo := range []TipoMovimiento{
		MovimientoDevolucionSobrante,
		MovimientoAnulacionEntrada, MovimientoAnulacionSalida, MovimientoAnulacionTraslado,
	} {
		_, ok := tipo.Anulacion()
		assert.False(t, ok, "tipo %s", tipo)
	}
}
