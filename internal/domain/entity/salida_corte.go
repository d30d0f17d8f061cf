package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una salida a corte. COMPLETADO -> ANULADO es terminal; la
// corrección de consumo solo aplica mientras está COMPLETADO.
const (
	SalidaEstadoCompletado = "COMPLETADO"
	SalidaEstadoAnulado    = "ANULADO"
)

// SalidaCorte registra tela enviada a un servicio de corte. SalidaCorte (la
// cantidad) se sobrescribe al registrar el consumo real; las llamadas
// repetidas comparan contra la cantidad ya corregida.
type SalidaCorte struct {
	ID                 int64           `db:"id"`
	TelaID             int64           `db:"tela_id"`
	ServicioCorte      string          `db:"servicio_corte"`
	FechaSalida        *time.Time      `db:"fecha_salida"`
	NotaSalida         string          `db:"nota_salida"`
	OP                 string          `db:"op"`
	SalidaCorte        decimal.Decimal `db:"salida_corte"`
	AreaDestino        string          `db:"area_destino"`
	Estado             string          `db:"estado"`
	UsuarioResponsable string          `db:"usuario_responsable"`
	FechaRegistro      time.Time       `db:"fecha_registro"`
	FechaActualizacion time.Time       `db:"fecha_actualizacion"`

	Tela *Tela `db:"-"`
}
