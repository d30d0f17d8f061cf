package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tht-textil/telas-api/internal/application/almacentela"
	"github.com/tht-textil/telas-api/internal/application/dto"
	"github.com/tht-textil/telas-api/internal/domain"
	"github.com/tht-textil/telas-api/internal/domain/entity"
	"github.com/tht-textil/telas-api/internal/domain/repository"
	"github.com/tht-textil/telas-api/internal/infrastructure/metrics"
)

// AlmacenHandler maneja las peticiones HTTP de almacenes y de las
// asignaciones de tela por almacén.
type AlmacenHandler struct {
	almacenRepo repository.AlmacenRepository
	uc          *almacentela.UseCase
	met         *metrics.Metrics
}

func NewAlmacenHandler(almacenRepo repository.AlmacenRepository, uc *almacentela.UseCase, met *metrics.Metrics) *AlmacenHandler {
	return &AlmacenHandler{almacenRepo: almacenRepo, uc: uc, met: met}
}

// Create da de alta un almacén.
func (h *AlmacenHandler) Create(c *fiber.Ctx) error {
	var in dto.AlmacenCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.NombreAlmacen == "" || in.CodigoAlmacen <= 0 {
		return mapError(c, domain.ErrInvalidInput)
	}
	almacen := &entity.Almacen{
		CodigoAlmacen: in.CodigoAlmacen,
		NombreAlmacen: in.NombreAlmacen,
		Abreviatura:   in.Abreviatura,
		Descripcion:   in.Descripcion,
		Estado:        "ACTIVO",
		TipoAlmacen:   in.TipoAlmacen,
		Local:         in.Local,
	}
	if err := h.almacenRepo.Create(almacen); err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(almacen)
}

// List devuelve todos los almacenes.
func (h *AlmacenHandler) List(c *fiber.Ctx) error {
	almacenes, err := h.almacenRepo.List()
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(almacenes)
}

// GetByID devuelve un almacén.
func (h *AlmacenHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	almacen, err := h.almacenRepo.GetByID(id)
	if err != nil {
		return mapError(c, err)
	}
	if almacen == nil {
		return mapError(c, domain.ErrNotFound)
	}
	return c.JSON(almacen)
}

// Asignar asigna una tela al almacén con un peso inicial.
func (h *AlmacenHandler) Asignar(c *fiber.Ctx) error {
	almacenID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in dto.AsignacionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	at, err := h.uc.Asignar(c.UserContext(), almacenID, in.TelaID, in.Peso)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(at)
}

// ActualizarPeso corrige el peso de la asignación sin tocar el ledger.
func (h *AlmacenHandler) ActualizarPeso(c *fiber.Ctx) error {
	almacenID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	telaID, err := parseID(c, "telaId")
	if err != nil {
		return err
	}
	var in dto.PesoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	at, err := h.uc.ActualizarPeso(c.UserContext(), almacenID, telaID, in.Peso)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(at)
}

// Transferir mueve peso de un almacén a otro.
func (h *AlmacenHandler) Transferir(c *fiber.Ctx) error {
	var in dto.TransferenciaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	err := h.uc.Transferir(c.UserContext(), in.AlmacenOrigenID, in.AlmacenDestinoID, in.TelaID, in.Peso)
	if err != nil {
		if err == domain.ErrInsufficientStock {
			h.met.StockInsuficiente.Inc()
		}
		return mapError(c, err)
	}
	h.met.Transferencias.Inc()
	return c.JSON(fiber.Map{"message": "transferencia realizada"})
}

// ListarTelas devuelve las asignaciones del almacén.
func (h *AlmacenHandler) ListarTelas(c *fiber.Ctx) error {
	almacenID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	asignaciones, err := h.uc.ListarPorAlmacen(c.UserContext(), almacenID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(asignaciones)
}

// BuscarTelas busca asignaciones activas del almacén por término, con campo y
// orden opcionales.
func (h *AlmacenHandler) BuscarTelas(c *fiber.Ctx) error {
	almacenID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in dto.AlmacenTelaBusquedaRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	page := dto.PageRequest{Pagina: in.Pagina, TamanoPagina: in.TamanoPagina}
	page.DefaultPage()

	res, err := h.uc.BuscarEnAlmacen(c.UserContext(), almacenID, almacentela.Busqueda{
		Termino:    in.Termino,
		Campo:      in.Campo,
		OrdenCampo: in.OrdenCampo,
		OrdenDir:   in.OrdenDir,
	}, page.Pagina, page.TamanoPagina)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(res)
}
