package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tht-textil/telas-api/internal/application/corte"
	"github.com/tht-textil/telas-api/internal/application/dto"
	"github.com/tht-textil/telas-api/internal/domain"
	"github.com/tht-textil/telas-api/internal/infrastructure/metrics"
)

// SalidaCorteHandler maneja las peticiones HTTP de salidas a corte.
type SalidaCorteHandler struct {
	uc  *corte.UseCase
	met *metrics.Metrics
}

func NewSalidaCorteHandler(uc *corte.UseCase, met *metrics.Metrics) *SalidaCorteHandler {
	return &SalidaCorteHandler{uc: uc, met: met}
}

// Create despacha tela a un servicio de corte.
func (h *SalidaCorteHandler) Create(c *fiber.Ctx) error {
	var in dto.SalidaCorteCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	fechaSalida, ok := parseFecha(in.FechaSalida)
	if !ok {
		return badParam(c, "fechaSalida")
	}
	salida, err := h.uc.Registrar(c.UserContext(), corte.RegistrarInput{
		TelaID:             in.TelaID,
		ServicioCorte:      in.ServicioCorte,
		FechaSalida:        fechaSalida,
		NotaSalida:         in.NotaSalida,
		OP:                 in.OP,
		Cantidad:           in.SalidaCorte,
		AreaDestino:        in.AreaDestino,
		UsuarioResponsable: GetUsername(c),
	})
	if err != nil {
		if err == domain.ErrInsufficientStock {
			h.met.StockInsuficiente.Inc()
		}
		return mapError(c, err)
	}
	h.met.SalidasRegistradas.Inc()
	return c.Status(fiber.StatusCreated).JSON(salida)
}

// Anular revierte una salida COMPLETADA.
func (h *SalidaCorteHandler) Anular(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in dto.AnulacionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Anular(c.UserContext(), id, in.Motivo, GetUsername(c)); err != nil {
		return mapError(c, err)
	}
	h.met.SalidasAnuladas.Inc()
	return c.JSON(fiber.Map{"message": "salida anulada"})
}

// ConsumoReal corrige la salida con el consumo verdadero del servicio.
func (h *SalidaCorteHandler) ConsumoReal(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in dto.ConsumoRealRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	salida, err := h.uc.RegistrarConsumoReal(c.UserContext(), id, in.ConsumoReal, in.Observacion, GetUsername(c))
	if err != nil {
		return mapError(c, err)
	}
	h.met.DevolucionesSobrante.Inc()
	return c.JSON(salida)
}

// GetByID devuelve una salida con su tela.
func (h *SalidaCorteHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	salida, err := h.uc.ObtenerPorID(c.UserContext(), id)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(salida)
}

// Search busca salidas con el primer filtro no vacío.
func (h *SalidaCorteHandler) Search(c *fiber.Ctx) error {
	var in dto.SalidaCorteFiltroRequest
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
	res, err := h.uc.Buscar(c.UserContext(), corte.Filtro{
		TelaID:      int64(c.QueryInt("telaId", 0)),
		OP:          in.OP,
		AreaDestino: in.AreaDestino,
		FechaInicio: fechaInicio,
		FechaFin:    fechaFin,
	}, page.Pagina, page.TamanoPagina)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(res)
}
