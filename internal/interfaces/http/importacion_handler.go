package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tht-textil/telas-api/internal/application/dto"
	"github.com/tht-textil/telas-api/internal/application/importacion"
	"github.com/tht-textil/telas-api/internal/domain"
)

// ImportacionHandler maneja la importación masiva de telas desde Excel.
type ImportacionHandler struct {
	uc *importacion.UseCase
}

func NewImportacionHandler(uc *importacion.UseCase) *ImportacionHandler {
	return &ImportacionHandler{uc: uc}
}

// Importar recibe el XLSX como multipart (campo "archivo"), importa los lotes
// hacia el almacén de la ruta y devuelve el resumen del lote importado.
func (h *ImportacionHandler) Importar(c *fiber.Ctx) error {
	almacenID, err := parseID(c, "almacenId")
	if err != nil {
		return err
	}
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "MISSING_FILE", Message: "se requiere el archivo en el campo 'archivo'",
		})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_FILE", Message: "no se pudo abrir el archivo",
		})
	}
	defer f.Close()

	resultado, err := h.uc.Importar(c.UserContext(), almacenID, f)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return mapError(c, err)
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INVALID_FILE", Message: err.Error(),
		})
	}
	return c.JSON(resultado)
}
