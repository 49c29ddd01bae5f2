package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/farmacia-api/internal/application/dto"
	"github.com/dcastano/farmacia-api/internal/application/transfer"
)

// TransferHandler maneja el flujo de traspasos entre tiendas: solicitud,
// decisión (aprobar/rechazar) y consultas.
type TransferHandler struct {
	transfers *transfer.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(transfers *transfer.TransferUseCase) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

// Request godoc
// @Summary      Solicitar un traspaso entre tiendas
// @Description  Crea la solicitud en estado pending. El stock no se reserva.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "batch_id, sender_store_id, receiver_store_id, quantity, price opcional"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Request(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.transfers.Request(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(t))
}

// Approve godoc
// @Summary      Aprobar un traspaso pendiente
// @Description  Solo una persona de contacto de la tienda receptora. Mueve el
// @Description  stock del emisor al receptor y deja ambas filas en el kardex.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true   "ID del traspaso"
// @Param        body  body  dto.ApproveTransferRequest  false  "new_price y min_stock opcionales"
// @Success      200   {object}  dto.TransferResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/approve [post]
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveTransferRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	t, err := h.transfers.Approve(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toTransferResponse(t))
}

// Reject godoc
// @Summary      Rechazar un traspaso pendiente
// @Description  Solo una persona de contacto de la tienda receptora. No toca stock.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traspaso"
// @Success      200  {object}  dto.TransferResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/reject [post]
func (h *TransferHandler) Reject(c *fiber.Ctx) error {
	t, err := h.transfers.Reject(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toTransferResponse(t))
}

// List godoc
// @Summary      Listar traspasos
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | approved | rejected (vacío = todos)"
// @Param        from    query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to      query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200  {array}   dto.TransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	from, err := parseDate(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida"})
	}
	to, err := parseDate(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida"})
	}
	list, err := h.transfers.List(c.Context(), from, to, c.Query("status"))
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransferResponse(t))
	}
	return c.JSON(fiber.Map{"total": len(out), "transfers": out})
}

// ValueReport godoc
// @Summary      Valor transferido entre dos tiendas
// @Description  Suma cantidad × precio de los traspasos aprobados en la ventana.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        sender_store_id    query  string  true   "Tienda emisora"
// @Param        receiver_store_id  query  string  true   "Tienda receptora"
// @Param        from               query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to                 query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200  {object}  dto.TransferValueReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transfers/value-report [get]
func (h *TransferHandler) ValueReport(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida"})
	}
	report, err := h.transfers.ValueReport(c.Context(), c.Query("sender_store_id"), c.Query("receiver_store_id"), from, to)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(report)
}
