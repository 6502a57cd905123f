package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/reservas-api/internal/application/dto"
	"github.com/tu-usuario/reservas-api/internal/application/reservation"
	"github.com/tu-usuario/reservas-api/internal/domain"
	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
	"github.com/tu-usuario/reservas-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/reservas-api/internal/infrastructure/xmlexport"
)

// ReservationHandler maneja las peticiones HTTP del flujo de reservas.
type ReservationHandler struct {
	uc       *reservation.UseCase
	clients  repository.ClientRepository
	products repository.ProductRepository
	receipts *pdf.ReceiptGenerator
	exporter *xmlexport.Exporter
}

// NewReservationHandler construye el handler.
func NewReservationHandler(
	uc *reservation.UseCase,
	clients repository.ClientRepository,
	products repository.ProductRepository,
) *ReservationHandler {
	return &ReservationHandler{
		uc:       uc,
		clients:  clients,
		products: products,
		receipts: pdf.NewReceiptGenerator(),
		exporter: xmlexport.NewExporter(),
	}
}

// Create godoc
// @Summary      Crear reserva
// @Description  Verifica stock y saldo antes de mutar nada: si falla cualquier verificación, ni el stock ni el saldo cambian.
// @Tags         reservations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReservationRequest  true  "Cliente, producto y cantidad"
// @Success      201   {object}  dto.ReservationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reservations [post]
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	r, err := h.uc.Create(c.UserContext(), in.ClientID, in.ProductID, in.Quantity)
	if err != nil {
		return reservationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReservationResponse(r))
}

// List godoc
// @Summary      Listar reservas (orden de creación, anuladas incluidas)
// @Tags         reservations
// @Produce      json
// @Success      200  {object}  dto.ReservationListResponse
// @Router       /api/reservations [get]
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toReservationList(list))
}

// GetByID godoc
// @Summary      Obtener reserva por ID
// @Tags         reservations
// @Produce      json
// @Param        id  path  int  true  "ID de la reserva"
// @Success      200  {object}  dto.ReservationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reservations/{id} [get]
func (h *ReservationHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	r, err := h.uc.GetByID(id)
	if err != nil {
		return reservationError(c, err)
	}
	return c.JSON(toReservationResponse(r))
}

// ListByClient godoc
// @Summary      Listar reservas de un cliente
// @Tags         reservations
// @Produce      json
// @Param        id  path  int  true  "ID del cliente"
// @Success      200  {object}  dto.ReservationListResponse
// @Router       /api/clients/{id}/reservations [get]
func (h *ReservationHandler) ListByClient(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	list, err := h.uc.ListByClient(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toReservationList(list))
}

// Cancel godoc
// @Summary      Anular reserva
// @Description  Reintegra el monto original al cliente y repone el stock si el producto todavía existe. Anular dos veces falla.
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la reserva"
// @Success      200  {object}  dto.ReservationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	r, err := h.uc.Cancel(c.UserContext(), id)
	if err != nil {
		return reservationError(c, err)
	}
	return c.JSON(toReservationResponse(r))
}

// Receipt godoc
// @Summary      Comprobante PDF de la reserva
// @Tags         reservations
// @Produce      application/pdf
// @Param        id  path  int  true  "ID de la reserva"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reservations/{id}/receipt [get]
func (h *ReservationHandler) Receipt(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	r, err := h.uc.GetByID(id)
	if err != nil {
		return reservationError(c, err)
	}
	client, err := h.clients.GetByID(r.ClientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if client == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	}
	// product puede ser nil (eliminado después de la reserva); el PDF lo indica.
	product, err := h.products.GetByID(r.ProductID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out, err := h.receipts.Generate(r, client, product)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(out)
}

// ExportXML godoc
// @Summary      Exportar el libro de reservas como XML
// @Tags         reservations
// @Produce      application/xml
// @Success      200  {string}  string
// @Router       /api/reservations/export.xml [get]
func (h *ReservationHandler) ExportXML(c *fiber.Ctx) error {
	list, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out, err := h.exporter.Reservations(list)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(out)
}

// reservationError traduce los errores del dominio a códigos HTTP.
func reservationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrReservationNotFound),
		errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientBalance):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_BALANCE", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyCancelled):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ALREADY_CANCELLED", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser positivo"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toReservationResponse(r *entity.Reservation) dto.ReservationResponse {
	return dto.ReservationResponse{
		ID:          r.ID,
		ClientID:    r.ClientID,
		ProductID:   r.ProductID,
		Quantity:    r.Quantity,
		TotalAmount: r.TotalAmount,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

func toReservationList(list []*entity.Reservation) dto.ReservationListResponse {
	items := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		items = append(items, toReservationResponse(r))
	}
	return dto.ReservationListResponse{Items: items}
}
