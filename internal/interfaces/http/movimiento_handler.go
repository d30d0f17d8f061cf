package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tht-textil/telas-api/internal/application/dto"
	"github.com/tht-textil/telas-api/internal/application/movimiento"
	"github.com/tht-textil/telas-api/internal/domain"
	"github.com/tht-textil/telas-api/internal/domain/entity"
	"github.com/tht-textil/telas-api/internal/infrastructure/metrics"
)

// MovimientoHandler maneja las peticiones HTTP del ledger de movimientos.
type MovimientoHandler struct {
	uc  *movimiento.UseCase
	met *metrics.Metrics
}

func NewMovimientoHandler(uc *movimiento.UseCase, met *metrics.Metrics) *MovimientoHandler {
	return &MovimientoHandler{uc: uc, met: met}
}

// Create registra un movimiento manual (ENTRADA, SALIDA o TRASLADO).
func (h *MovimientoHandler) Create(c *fiber.Ctx) error {
	var in dto.MovimientoCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.uc.Registrar(c.UserContext(), movimiento.RegistrarInput{
		TelaID:              in.TelaID,
		AreaOrigen:          in.AreaOrigen,
		AreaDestino:         in.AreaDestino,
		Cantidad:            in.Cantidad,
		Tipo:                entity.TipoMovimiento(in.TipoMovimiento),
		ReferenciaDocumento: in.ReferenciaDocumento,
		UsuarioResponsable:  GetUsername(c),
		Observaciones:       in.Observaciones,
	})
	if err != nil {
		if err == domain.ErrInsufficientStock {
			h.met.StockInsuficiente.Inc()
		}
		return mapError(c, err)
	}
	h.met.MovimientosRegistrados.WithLabelValues(string(mov.Tipo)).Inc()
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// Anular compensa un movimiento COMPLETADO.
func (h *MovimientoHandler) Anular(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in dto.AnulacionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	comp, err := h.uc.Anular(c.UserContext(), id, in.Motivo, GetUsername(c))
	if err != nil {
		if err == domain.ErrInsufficientStock {
			h.met.StockInsuficiente.Inc()
		}
		return mapError(c, err)
	}
	h.met.MovimientosAnulados.Inc()
	return c.JSON(comp)
}

// Historial devuelve los movimientos de una tela.
func (h *MovimientoHandler) Historial(c *fiber.Ctx) error {
	telaID, err := parseID(c, "telaId")
	if err != nil {
		return err
	}
	movs, err := h.uc.Historial(c.UserContext(), telaID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(movs)
}

// Search busca movimientos con el primer filtro no vacío.
func (h *MovimientoHandler) Search(c *fiber.Ctx) error {
	var in dto.MovimientoFiltroRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	page := dto.PageRequest{Pagina: in.Pagina, TamanoPagina: in.TamanoPagina}
	page.DefaultPage()

	fechaInicio, ok := parseFecha(in.FechaInicio)
	if !ok {
		return badParam(c, "fechaInicio")
	}
	fechaFin, ok := parseFecha(in.FechaFin)
	if !ok {
		return badParam(c, "fechaFin")
	}
	res, err := h.uc.Buscar(c.UserContext(), movimiento.Filtro{
		TelaID:      in.TelaID,
		Tipo:        entity.TipoMovimiento(in.TipoMovimiento),
		AreaOrigen:  in.AreaOrigen,
		AreaDestino: in.AreaDestino,
		FechaInicio: fechaInicio,
		FechaFin:    fechaFin,
		Usuario:     in.UsuarioResponsable,
		Estado:      in.Estado,
	}, page.Pagina, page.TamanoPagina)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(res)
}

// Estadisticas devuelve el resumen del ledger.
func (h *MovimientoHandler) Estadisticas(c *fiber.Ctx) error {
	stats, err := h.uc.ObtenerEstadisticas(c.UserContext())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(stats)
}
