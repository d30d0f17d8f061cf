// Package metrics expone contadores Prometheus del motor de stock.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contadores de las operaciones del motor.
type Metrics struct {
	MovimientosRegistrados *prometheus.CounterVec
	MovimientosAnulados    prometheus.Counter
	SalidasRegistradas     prometheus.Counter
	SalidasAnuladas        prometheus.Counter
	DevolucionesSobrante   prometheus.Counter
	Transferencias         prometheus.Counter
	StockInsuficiente      prometheus.Counter
}

// New registra los contadores en el Registerer dado.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		MovimientosRegistrados: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "telas",
			Name:      "movimientos_registrados_total",
			Help:      "Movimientos de stock registrados, por tipo.",
		}, []string{"tipo"}),
		MovimientosAnulados: f.NewCounter(prometheus.CounterOpts{
			Namespace: "telas",
			Name:      "movimientos_anulados_total",
			Help:      "Movimientos compensados con una anulación.",
		}),
		SalidasRegistradas: f.NewCounter(prometheus.CounterOpts{
			Namespace: "telas",
			Name:      "salidas_corte_registradas_total",
			Help:      "Salidas a servicio de corte registradas.",
		}),
		SalidasAnuladas: f.NewCounter(prometheus.CounterOpts{
			Namespace: "telas",
			Name:      "salidas_corte_anuladas_total",
			Help:      "Salidas a corte anuladas.",
		}),
		DevolucionesSobrante: f.NewCounter(prometheus.CounterOpts{
			Namespace: "telas",
			Name:      "devoluciones_sobrante_total",
			Help:      "Correcciones de consumo con devolución de sobrante.",
		}),
		Transferencias: f.NewCounter(prometheus.CounterOpts{
			Namespace: "telas",
			Name:      "transferencias_total",
			Help:      "Traslados de peso entre almacenes.",
		}),
		StockInsuficiente: f.NewCounter(prometheus.CounterOpts{
			Namespace: "telas",
			Name:      "stock_insuficiente_total",
			Help:      "Operaciones rechazadas por stock o peso insuficiente.",
		}),
	}
}
