package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/farmacia-api/internal/application/dto"
	"github.com/dcastano/farmacia-api/internal/application/sales"
	"github.com/dcastano/farmacia-api/internal/domain/entity"
)

// SaleHandler maneja ventas de contado y a crédito, sus reversas y consultas
// de historial (protegido).
type SaleHandler struct {
	sell    *sales.SellUseCase
	delete  *sales.DeleteSaleUseCase
	history *sales.HistoryUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(sell *sales.SellUseCase, del *sales.DeleteSaleUseCase, history *sales.HistoryUseCase) *SaleHandler {
	return &SaleHandler{sell: sell, delete: del, history: history}
}

// Sell godoc
// @Summary      Registrar venta de contado
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SellRequest  true  "batch_id, quantity, patient_id o customer_name"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/sell [post]
func (h *SaleHandler) Sell(c *fiber.Ctx) error {
	var in dto.SellRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.sell.Sell(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// CreditSell godoc
// @Summary      Registrar venta a crédito
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreditSellRequest  true  "batch_id, quantity, credit_customer_id, patient_id o customer_name"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/credit-sales/sell [post]
func (h *SaleHandler) CreditSell(c *fiber.Ctx) error {
	var in dto.CreditSellRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.sell.SellOnCredit(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// DeleteSale godoc
// @Summary      Reversar una venta de contado
// @Description  Restaura el stock, archiva la copia y agrega la devolución al kardex.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la venta"
// @Param        body  body  dto.DeleteSaleRequest  true  "reason"
// @Success      200   {object}  dto.DeletedSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	var in dto.DeleteSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	deleted, err := h.delete.DeleteSale(c.Context(), GetUserID(c), c.Params("id"), in.Reason)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toDeletedSaleResponse(deleted))
}

// DeleteCreditSale godoc
// @Summary      Reversar una venta a crédito
// @Description  Además de la reversa de contado, acredita el saldo del cliente.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la venta a crédito"
// @Param        body  body  dto.DeleteSaleRequest  true  "reason"
// @Success      200   {object}  dto.DeletedSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/credit-sales/{id} [delete]
func (h *SaleHandler) DeleteCreditSale(c *fiber.Ctx) error {
	var in dto.DeleteSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	deleted, err := h.delete.DeleteCreditSale(c.Context(), GetUserID(c), c.Params("id"), in.Reason)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toDeletedSaleResponse(deleted))
}

// ListSales godoc
// @Summary      Historial de ventas de contado
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Filtrar por tienda (vacío = todas)"
// @Param        from      query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to        query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200  {array}   dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) ListSales(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida"})
	}
	list, err := h.history.SalesByStoreAndDate(c.Context(), c.Query("store_id"), from, to)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return c.JSON(fiber.Map{"total": len(out), "sales": out})
}

// ListCreditSales godoc
// @Summary      Historial de ventas a crédito
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Filtrar por tienda (vacío = todas)"
// @Param        from      query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to        query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200  {array}   dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/credit-sales [get]
func (h *SaleHandler) ListCreditSales(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida"})
	}
	list, err := h.history.CreditSalesByStoreAndDate(c.Context(), c.Query("store_id"), from, to)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toCreditSaleResponse(s))
	}
	return c.JSON(fiber.Map{"total": len(out), "credit_sales": out})
}

// ListDeletedSales godoc
// @Summary      Historial de ventas reversadas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Filtrar por tienda (vacío = todas)"
// @Param        from      query  string  false  "Fecha inicial de la venta original YYYY-MM-DD"
// @Param        to        query  string  false  "Fecha final de la venta original YYYY-MM-DD"
// @Success      200  {array}   dto.DeletedSaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/deleted [get]
func (h *SaleHandler) ListDeletedSales(c *fiber.Ctx) error {
	from, err := parseDate(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida"})
	}
	to, err := parseDate(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida"})
	}
	list, err := h.history.DeletedSales(c.Context(), c.Query("store_id"), from, to)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.DeletedSaleResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDeletedSaleResponse(d))
	}
	return c.JSON(fiber.Map{"total": len(out), "deleted_sales": out})
}

func toDeletedSaleResponse(d *entity.DeletedSale) dto.DeletedSaleResponse {
	return dto.DeletedSaleResponse{
		ID:               d.ID,
		BatchID:          d.BatchID,
		UserID:           d.UserID,
		Quantity:         d.Quantity,
		Reason:           d.Reason,
		DeletedBy:        d.DeletedBy,
		OriginalSaleDate: d.OriginalSaleDate,
		StoreID:          d.StoreID,
	}
}
