package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-bridge/internal/httperr"
	"github.com/BruksfildServices01/booking-bridge/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/booking-bridge/internal/usecase/booking"
	"github.com/BruksfildServices01/booking-bridge/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// WebhookHandler fronts the conversational automation platform. One endpoint
// multiplexes create/reschedule/cancel; two more cover availability queries.
type WebhookHandler struct {
	create       *ucBooking.CreateAppointment
	reschedule   *ucBooking.RescheduleAppointment
	cancel       *ucBooking.CancelAppointment
	availability *ucBooking.CheckAvailability
	slots        *ucBooking.FindAvailableSlots
}

func NewWebhookHandler(
	create *ucBooking.CreateAppointment,
	reschedule *ucBooking.RescheduleAppointment,
	cancel *ucBooking.CancelAppointment,
	availability *ucBooking.CheckAvailability,
	slots *ucBooking.FindAvailableSlots,
) *WebhookHandler {
	return &WebhookHandler{
		create:       create,
		reschedule:   reschedule,
		cancel:       cancel,
		availability: availability,
		slots:        slots,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ClientAppointmentRequest struct {
	ClientPhone string `json:"clientPhone" binding:"required"`
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`

	ServiceType      string `json:"serviceType"`
	StartDateTime    string `json:"startDateTime"`
	NewStartDateTime string `json:"newStartDateTime"`
	OldStartDateTime string `json:"oldStartDateTime"`
	Duration         int    `json:"duration"`
	Notes            string `json:"notes"`

	PreferredBarberID *uint  `json:"preferredBarberId"`
	EventID           string `json:"eventId"`

	IsCancelling   bool `json:"isCancelling"`
	IsRescheduling bool `json:"isRescheduling"`
}

type CheckAvailabilityRequest struct {
	BarberID          *uint  `json:"barberId"`
	BarberPhoneNumber string `json:"barberPhoneNumber"`
	StartDateTime     string `json:"startDateTime" binding:"required"`
	EndDateTime       string `json:"endDateTime" binding:"required"`
}

type FindSlotsRequest struct {
	BarberID            uint   `json:"barberId" binding:"required"`
	CurrentTimestamp    string `json:"currentTimestamp" binding:"required"`
	NumSlots            int    `json:"numSlots"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
}

// ======================================================
// OPERATION KIND
// ======================================================

type operationKind int

const (
	opCreate operationKind = iota
	opReschedule
	opCancel
	opInvalid
)

// normalizeOperation folds the two request flags into one operation kind.
// Both flags raised is a contradiction and rejected outright.
func normalizeOperation(isCancelling, isRescheduling bool) operationKind {
	switch {
	case isCancelling && isRescheduling:
		return opInvalid
	case isCancelling:
		return opCancel
	case isRescheduling:
		return opReschedule
	default:
		return opCreate
	}
}

// ======================================================
// CLIENT APPOINTMENT (create / reschedule / cancel)
// ======================================================

func (h *WebhookHandler) ClientAppointment(c *gin.Context) {
	var req ClientAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	phone := validators.NormalizePhone(req.ClientPhone)
	if phone == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "clientPhone is not a valid phone number")
		return
	}

	switch normalizeOperation(req.IsCancelling, req.IsRescheduling) {
	case opInvalid:
		httperr.BadRequest(c, httperr.CodeValidation, "isCancelling and isRescheduling are mutually exclusive")

	case opCancel:
		res, err := h.cancel.Execute(c.Request.Context(), ucBooking.CancelInput{
			ClientPhone:      phone,
			ClientName:       req.ClientName,
			EventID:          req.EventID,
			OldStartDateTime: req.OldStartDateTime,
			BarberID:         req.PreferredBarberID,
		})
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		httpresp.OK(c, res)

	case opReschedule:
		res, err := h.reschedule.Execute(c.Request.Context(), ucBooking.RescheduleInput{
			ClientPhone:      phone,
			ClientName:       req.ClientName,
			EventID:          req.EventID,
			OldStartDateTime: req.OldStartDateTime,
			NewStartDateTime: req.NewStartDateTime,
			DurationMinutes:  req.Duration,
			Service:          req.ServiceType,
			BarberID:         req.PreferredBarberID,
		})
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		httpresp.OK(c, res)

	case opCreate:
		res, err := h.create.Execute(c.Request.Context(), ucBooking.CreateInput{
			ClientPhone:     phone,
			ClientName:      req.ClientName,
			ClientEmail:     req.ClientEmail,
			Service:         req.ServiceType,
			StartDateTime:   req.StartDateTime,
			DurationMinutes: req.Duration,
			Notes:           req.Notes,
			BarberID:        req.PreferredBarberID,
		})
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		httpresp.Created(c, res)
	}
}

// ======================================================
// CHECK AVAILABILITY
// ======================================================

func (h *WebhookHandler) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	res, err := h.availability.Execute(c.Request.Context(), ucBooking.AvailabilityInput{
		BarberID:      req.BarberID,
		BarberPhone:   validators.NormalizePhone(req.BarberPhoneNumber),
		StartDateTime: req.StartDateTime,
		EndDateTime:   req.EndDateTime,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// FIND AVAILABLE SLOTS
// ======================================================

func (h *WebhookHandler) FindAvailableSlots(c *gin.Context) {
	var req FindSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	res, err := h.slots.Execute(c.Request.Context(), ucBooking.FindSlotsInput{
		BarberID:            req.BarberID,
		CurrentTimestamp:    req.CurrentTimestamp,
		NumSlots:            req.NumSlots,
		SlotDurationMinutes: req.SlotDurationMinutes,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// ERROR MAPPING
// ======================================================

// writeBusinessError maps the use-case error taxonomy onto HTTP statuses.
func writeBusinessError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)

	switch code {
	case httperr.CodeValidation, httperr.CodeMalformedTimestamp:
		httperr.BadRequest(c, code, err.Error())
	case httperr.CodeNotFound:
		httperr.NotFound(c, code, err.Error())
	case httperr.CodeUpstream:
		httperr.Upstream(c, code, err.Error())
	default:
		httperr.Internal(c, "internal_error", err.Error())
	}
}
