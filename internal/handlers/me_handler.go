package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-bridge/internal/config"
	"github.com/BruksfildServices01/booking-bridge/internal/dto"
	"github.com/BruksfildServices01/booking-bridge/internal/httperr"
	"github.com/BruksfildServices01/booking-bridge/internal/middleware"
	"github.com/BruksfildServices01/booking-bridge/internal/models"
	"github.com/BruksfildServices01/booking-bridge/internal/timezone"
)

type MeHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewMeHandler(db *gorm.DB, cfg *config.Config) *MeHandler {
	return &MeHandler{db: db, config: cfg}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "barber_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber": gin.H{
			"id":                 barber.ID,
			"name":               barber.Name,
			"phone":              barber.Phone,
			"email":              barber.Email,
			"calendar_id":        barber.CalendarID,
			"calendar_connected": barber.RefreshToken != "",
		},
	})
}

// ======================================================
// APPOINTMENTS BY DATE
// ======================================================

func (h *MeHandler) ListAppointments(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "date query parameter is required")
		return
	}

	loc := timezone.Location(h.config.DefaultTimezone)
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	start := date
	end := start.Add(24 * time.Hour)

	var aps []models.Appointment
	h.db.
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID, start, end,
		).
		Order("start_time ASC").
		Find(&aps)

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.AppointmentListDTO{
			ID:              ap.ID,
			StartTime:       ap.StartTime,
			EndTime:         ap.EndTime,
			Service:         ap.Service,
			ClientPhone:     ap.ClientPhone,
			CalendarEventID: ap.CalendarEventID,
			Notes:           ap.Notes,
		})
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// CALENDAR SELECTION
// ======================================================

type UpdateCalendarRequest struct {
	CalendarID string `json:"calendar_id" binding:"required"`
}

func (h *MeHandler) UpdateCalendar(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	var req UpdateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "barber not found")
		return
	}

	barber.CalendarID = req.CalendarID
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_calendar", "could not update calendar")
		return
	}

	c.JSON(http.StatusOK, gin.H{"calendar_id": barber.CalendarID})
}

// ======================================================
// AUDIT LOGS
// ======================================================

func (h *MeHandler) ListAuditLogs(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)

	action := c.Query("action")
	entity := c.Query("entity")

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.
		Model(&models.AuditLog{}).
		Where("barber_id = ?", barberID)

	if action != "" {
		q = q.Where("action = ?", action)
	}
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "could not count audit logs")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "could not list audit logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
