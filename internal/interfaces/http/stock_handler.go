package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/farmacia-api/internal/application/dto"
	"github.com/dcastano/farmacia-api/internal/application/stock"
)

// StockHandler maneja las mutaciones de inventario fuera de ventas (alta,
// reposición, corrección, daño) y las consultas de inventario y kardex.
type StockHandler struct {
	stock   *stock.StockUseCase
	queries *stock.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.StockUseCase, queries *stock.QueryUseCase) *StockHandler {
	return &StockHandler{stock: uc, queries: queries}
}

// Intake godoc
// @Summary      Alta de producto nuevo
// @Description  Crea la marca con su primer lote y registra la entrada en el kardex.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IntakeRequest  true  "datos de la marca y el primer lote"
// @Success      201   {object}  dto.BrandResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/intake [post]
func (h *StockHandler) Intake(c *fiber.Ctx) error {
	var in dto.IntakeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	brand, batch, err := h.stock.Intake(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"brand": toBrandResponse(brand),
		"batch": toBatchResponse(batch),
	})
}

// Refill godoc
// @Summary      Reposición de una marca existente
// @Description  Crea un lote nuevo, suma a la marca y registra la entrada en el kardex.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefillRequest  true  "brand_id y datos del lote"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/refill [post]
func (h *StockHandler) Refill(c *fiber.Ctx) error {
	var in dto.RefillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.stock.Refill(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchResponse(batch))
}

// EditQuantity godoc
// @Summary      Corregir la cantidad de un lote
// @Description  Ajusta lote y marca por la diferencia y la registra en el kardex.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del lote"
// @Param        body  body  dto.EditQuantityRequest  true  "new_quantity"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/batches/{id}/quantity [put]
func (h *StockHandler) EditQuantity(c *fiber.Ctx) error {
	var in dto.EditQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.stock.EditBatchQuantity(c.Context(), c.Params("id"), in.NewQuantity)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// ReportDamaged godoc
// @Summary      Reportar producto dañado
// @Description  Descuenta lote y marca, archiva el reporte y deja la salida en el kardex.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DamagedRequest  true  "batch_id, quantity, reason"
// @Success      201   {object}  dto.DamagedReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/damaged [post]
func (h *StockHandler) ReportDamaged(c *fiber.Ctx) error {
	var in dto.DamagedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	report, err := h.stock.ReportDamaged(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDamagedResponse(report))
}

// ListDamaged godoc
// @Summary      Reportes de daño por tienda
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Filtrar por tienda (vacío = todas)"
// @Param        from      query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to        query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200  {array}   dto.DamagedReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/damaged [get]
func (h *StockHandler) ListDamaged(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida"})
	}
	list, err := h.queries.DamagedReports(c.Context(), c.Query("store_id"), from, to)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.DamagedReportResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDamagedResponse(d))
	}
	return c.JSON(fiber.Map{"total": len(out), "damaged_reports": out})
}

// Stockouts godoc
// @Summary      Marcas en punto de quiebre
// @Description  Marcas con cantidad menor o igual a su mínimo de stock.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Filtrar por tienda (vacío = todas)"
// @Success      200  {array}  dto.BrandResponse
// @Router       /api/stock/stockouts [get]
func (h *StockHandler) Stockouts(c *fiber.Ctx) error {
	list, err := h.queries.Stockouts(c.Context(), c.Query("store_id"))
	if err != nil {
		return errorJSON(c, err)
	}
	out := toBrandResponses(list)
	return c.JSON(fiber.Map{"total": len(out), "brands": out})
}

// BrandsByStore godoc
// @Summary      Marcas de una tienda
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        store_id  path  string  true  "ID de la tienda"
// @Success      200  {array}   dto.BrandResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/stores/{store_id}/brands [get]
func (h *StockHandler) BrandsByStore(c *fiber.Ctx) error {
	list, err := h.queries.BrandsByStore(c.Context(), c.Params("store_id"))
	if err != nil {
		return errorJSON(c, err)
	}
	out := toBrandResponses(list)
	return c.JSON(fiber.Map{"total": len(out), "brands": out})
}

// BatchesByBrand godoc
// @Summary      Lotes de una marca
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        brand_id  path  string  true  "ID de la marca"
// @Success      200  {array}   dto.BatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/brands/{brand_id}/batches [get]
func (h *StockHandler) BatchesByBrand(c *fiber.Ctx) error {
	list, err := h.queries.BatchesByBrand(c.Context(), c.Params("brand_id"))
	if err != nil {
		return errorJSON(c, err)
	}
	out := toBatchResponses(list)
	return c.JSON(fiber.Map{"total": len(out), "batches": out})
}

// Expiring godoc
// @Summary      Lotes próximos a vencer
// @Description  Lotes con stock que vencen dentro de la ventana (meses, por defecto 12).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        months  query  int  false  "Ventana en meses"  default(12)
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/stock/batches/expiring [get]
func (h *StockHandler) Expiring(c *fiber.Ctx) error {
	list, err := h.queries.ExpiringBatches(c.Context(), c.QueryInt("months"))
	if err != nil {
		return errorJSON(c, err)
	}
	out := toBatchResponses(list)
	return c.JSON(fiber.Map{"total": len(out), "batches": out})
}

// Expired godoc
// @Summary      Lotes vencidos
// @Description  Incluye lotes con cantidad cero.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/stock/batches/expired [get]
func (h *StockHandler) Expired(c *fiber.Ctx) error {
	list, err := h.queries.ExpiredBatches(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	out := toBatchResponses(list)
	return c.JSON(fiber.Map{"total": len(out), "batches": out})
}

// BinCard godoc
// @Summary      Kardex de una marca en una tienda
// @Description  Cada fila lleva el saldo acumulado hasta esa fila.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        store_id  path  string  true  "ID de la tienda"
// @Param        brand_id  path  string  true  "ID de la marca"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/stores/{store_id}/brands/{brand_id}/bin-card [get]
func (h *StockHandler) BinCard(c *fiber.Ctx) error {
	rows, err := h.queries.BinCard(c.Context(), c.Params("store_id"), c.Params("brand_id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "movements": rows})
}

// MovementsByStore godoc
// @Summary      Movimientos de una tienda
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        store_id  path   string  true   "ID de la tienda"
// @Param        from      query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to        query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/stores/{store_id}/movements [get]
func (h *StockHandler) MovementsByStore(c *fiber.Ctx) error {
	from, err := parseDate(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida"})
	}
	to, err := parseDate(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida"})
	}
	list, err := h.queries.MovementsByStore(c.Context(), c.Params("store_id"), from, to)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m, 0))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}
