package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tht-textil/telas-api/internal/application/dto"
	"github.com/tht-textil/telas-api/internal/application/tela"
)

// TelaHandler maneja las peticiones HTTP de lotes de tela.
type TelaHandler struct {
	uc *tela.UseCase
}

func NewTelaHandler(uc *tela.UseCase) *TelaHandler {
	return &TelaHandler{uc: uc}
}

func parseID(c *fiber.Ctx, nombre string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(nombre), 10, 64)
	if err != nil || id <= 0 {
		return 0, badParam(c, nombre)
	}
	return id, nil
}

func parseFecha(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// Create registra un lote nuevo.
func (h *TelaHandler) Create(c *fiber.Ctx) error {
	var in dto.TelaCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	fechaIngreso, ok := parseFecha(in.FechaIngreso)
	if !ok {
		return badParam(c, "fechaIngreso")
	}
	creada, err := h.uc.Crear(c.UserContext(), tela.CrearInput{
		NumGuia:             in.NumGuia,
		Partida:             in.Partida,
		OS:                  in.OS,
		Proveedor:           in.Proveedor,
		FechaIngreso:        fechaIngreso,
		Cliente:             in.Cliente,
		Marca:               in.Marca,
		OP:                  in.OP,
		TipoTela:            in.TipoTela,
		Descripcion:         in.Descripcion,
		Ench:                in.Ench,
		CantRollosIngresado: in.CantRollosIngresado,
		PesoIngresado:       in.PesoIngresado,
		Almacen:             in.Almacen,
		AlmacenID:           int64(c.QueryInt("almacenId", 0)),
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(creada)
}

// GetByID devuelve un lote.
func (h *TelaHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.uc.ObtenerPorID(c.UserContext(), id)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(t)
}

// Search busca lotes por texto, estado y rango de fechas.
func (h *TelaHandler) Search(c *fiber.Ctx) error {
	var in dto.TelaBusquedaRequest
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
	res, err := h.uc.Buscar(c.UserContext(), tela.Busqueda{
		Texto:       in.Texto,
		Estado:      in.Estado,
		FechaInicio: fechaInicio,
		FechaFin:    fechaFin,
	}, page.Pagina, page.TamanoPagina)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(res)
}

// Update modifica los datos descriptivos de un lote.
func (h *TelaHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in dto.TelaCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	actualizada, err := h.uc.Actualizar(c.UserContext(), id, tela.ActualizarInput{
		NumGuia:     in.NumGuia,
		OS:          in.OS,
		Proveedor:   in.Proveedor,
		Cliente:     in.Cliente,
		Marca:       in.Marca,
		OP:          in.OP,
		Descripcion: in.Descripcion,
		Ench:        in.Ench,
		Almacen:     in.Almacen,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(actualizada)
}

// Deactivate marca el lote como INACTIVO.
func (h *TelaHandler) Deactivate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Desactivar(c.UserContext(), id); err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "tela desactivada"})
}
