package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tht-textil/telas-api/internal/application/movimiento"
	"github.com/tht-textil/telas-api/internal/application/tela"
	"github.com/tht-textil/telas-api/internal/infrastructure/excel"
	"github.com/tht-textil/telas-api/internal/infrastructure/pdf"
)

// ReporteHandler genera el kardex PDF y los reportes XLSX.
type ReporteHandler struct {
	telaUC   *tela.UseCase
	movUC    *movimiento.UseCase
	kardex   *pdf.KardexGenerator
	exporter *excel.Exporter
}

func NewReporteHandler(telaUC *tela.UseCase, movUC *movimiento.UseCase, kardex *pdf.KardexGenerator, exporter *excel.Exporter) *ReporteHandler {
	return &ReporteHandler{telaUC: telaUC, movUC: movUC, kardex: kardex, exporter: exporter}
}

// KardexPDF devuelve el kardex de una tela como PDF.
func (h *ReporteHandler) KardexPDF(c *fiber.Ctx) error {
	telaID, err := parseID(c, "telaId")
	if err != nil {
		return err
	}
	t, err := h.telaUC.ObtenerPorID(c.UserContext(), telaID)
	if err != nil {
		return mapError(c, err)
	}
	movs, err := h.movUC.Historial(c.UserContext(), telaID)
	if err != nil {
		return mapError(c, err)
	}
	contenido, err := h.kardex.GenerateKardex(c.UserContext(), t, movs)
	if err != nil {
		return mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="kardex-tela-%d.pdf"`, telaID))
	return c.Send(contenido)
}

// TelasXLSX exporta todos los lotes a Excel.
func (h *ReporteHandler) TelasXLSX(c *fiber.Ctx) error {
	res, err := h.telaUC.Buscar(c.UserContext(), tela.Busqueda{}, 0, 1<<20)
	if err != nil {
		return mapError(c, err)
	}
	var buf bytes.Buffer
	if err := h.exporter.ExportarTelas(&buf, res.Datos); err != nil {
		return mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="telas.xlsx"`)
	return c.Send(buf.Bytes())
}

// MovimientosXLSX exporta el ledger de una tela a Excel.
func (h *ReporteHandler) MovimientosXLSX(c *fiber.Ctx) error {
	telaID, err := parseID(c, "telaId")
	if err != nil {
		return err
	}
	movs, err := h.movUC.Historial(c.UserContext(), telaID)
	if err != nil {
		return mapError(c, err)
	}
	var buf bytes.Buffer
	if err := h.exporter.ExportarMovimientos(&buf, movs); err != nil {
		return mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="movimientos-tela-%d.xlsx"`, telaID))
	return c.Send(buf.Bytes())
}
