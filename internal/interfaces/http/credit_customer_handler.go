package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/farmacia-api/internal/application/credit"
	"github.com/dcastano/farmacia-api/internal/application/dto"
)

// CreditCustomerHandler administra clientes de crédito: alta, recarga de
// saldo, bloqueo/desbloqueo y datos de contacto.
type CreditCustomerHandler struct {
	customers *credit.CustomerUseCase
}

// NewCreditCustomerHandler construye el handler.
func NewCreditCustomerHandler(customers *credit.CustomerUseCase) *CreditCustomerHandler {
	return &CreditCustomerHandler{customers: customers}
}

// Create godoc
// @Summary      Alta de cliente de crédito
// @Tags         credit-customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCreditCustomerRequest  true  "name, phone_number, email y balance opcionales"
// @Success      201   {object}  dto.CreditCustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/credit-customers [post]
func (h *CreditCustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCreditCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.customers.Create(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(customer))
}

// List godoc
// @Summary      Listar clientes de crédito
// @Tags         credit-customers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CreditCustomerResponse
// @Router       /api/credit-customers [get]
func (h *CreditCustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.customers.List(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.CreditCustomerResponse, 0, len(list))
	for _, customer := range list {
		out = append(out, toCustomerResponse(customer))
	}
	return c.JSON(fiber.Map{"total": len(out), "credit_customers": out})
}

// Get godoc
// @Summary      Consultar un cliente de crédito
// @Tags         credit-customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CreditCustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/credit-customers/{id} [get]
func (h *CreditCustomerHandler) Get(c *fiber.Ctx) error {
	customer, err := h.customers.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toCustomerResponse(customer))
}

// RefillBalance godoc
// @Summary      Recargar saldo de un cliente
// @Description  El monto debe ser positivo; los débitos solo ocurren por venta a crédito.
// @Tags         credit-customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del cliente"
// @Param        body  body  dto.RefillBalanceRequest  true  "amount"
// @Success      200   {object}  dto.CreditCustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/credit-customers/{id}/refill [post]
func (h *CreditCustomerHandler) RefillBalance(c *fiber.Ctx) error {
	var in dto.RefillBalanceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.customers.RefillBalance(c.Context(), c.Params("id"), in.Amount)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toCustomerResponse(customer))
}

// ToggleValidity godoc
// @Summary      Bloquear o habilitar un cliente
// @Description  Alterna el estado actual. Un cliente bloqueado no puede comprar
// @Description  a crédito, pero sus ventas existentes sí pueden reversarse.
// @Tags         credit-customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CreditCustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/credit-customers/{id}/toggle [post]
func (h *CreditCustomerHandler) ToggleValidity(c *fiber.Ctx) error {
	customer, err := h.customers.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	customer, err = h.customers.SetValidity(c.Context(), customer.ID, !customer.IsValid)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toCustomerResponse(customer))
}

// Update godoc
// @Summary      Actualizar datos de contacto
// @Description  El saldo no se modifica por esta vía.
// @Tags         credit-customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID del cliente"
// @Param        body  body  dto.CreateCreditCustomerRequest  true  "name, email, phone_number"
// @Success      200   {object}  dto.CreditCustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/credit-customers/{id} [put]
func (h *CreditCustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateCreditCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.customers.Update(c.Context(), c.Params("id"), in.Name, in.Email, in.PhoneNumber)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toCustomerResponse(customer))
}
