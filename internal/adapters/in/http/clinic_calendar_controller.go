package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suchimauz/clinic-calendar/internal/config"
	"github.com/suchimauz/clinic-calendar/internal/core/datetime"
	"github.com/suchimauz/clinic-calendar/internal/core/domain"
	"github.com/suchimauz/clinic-calendar/internal/core/ports/in"
	"github.com/suchimauz/clinic-calendar/internal/core/ports/out"
	"github.com/suchimauz/clinic-calendar/internal/utils"
)

type ClinicCalendarController struct {
	useCase in.ClinicCalendarUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewClinicCalendarController(useCase in.ClinicCalendarUseCase, cfg *config.Config, logger out.LoggerPort) *ClinicCalendarController {
	return &ClinicCalendarController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (c *ClinicCalendarController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/doctors", c.listDoctors)
		api.POST("/appointments", c.addAppointment)
		api.GET("/appointments", c.listAppointments)
		api.GET("/appointments/today", c.listTodayAppointments)
		api.GET("/appointments/exists", c.hasAppointment)
	}
}

type AddAppointmentRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Doctor    string `json:"doctor" binding:"required"`
	DateTime  string `json:"dateTime" binding:"required"`
}

type DoctorResponse struct {
	ID   domain.Doctor `json:"id"`
	Name string        `json:"name"`
}

type AppointmentResponse struct {
	ID                  uuid.UUID      `json:"id"`
	PatientFirstName    string         `json:"patientFirstName"`
	PatientLastName     string         `json:"patientLastName"`
	Doctor              domain.Doctor  `json:"doctor"`
	DoctorName          string         `json:"doctorName"`
	AppointmentDateTime civil.DateTime `json:"appointmentDateTime"`
	Display             string         `json:"display"`
}

func newAppointmentResponse(a domain.PatientAppointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                  a.ID(),
		PatientFirstName:    a.PatientFirstName(),
		PatientLastName:     a.PatientLastName(),
		Doctor:              a.Doctor(),
		DoctorName:          a.Doctor().Name(),
		AppointmentDateTime: a.AppointmentDateTime(),
		Display:             datetime.FormatDisplay(a.AppointmentDateTime()),
	}
}

func newAppointmentsResponse(appointments []domain.PatientAppointment) []AppointmentResponse {
	response := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		response = append(response, newAppointmentResponse(a))
	}
	return response
}

func (c *ClinicCalendarController) listDoctors(ctx *gin.Context) {
	doctors := c.useCase.Doctors()
	response := make([]DoctorResponse, 0, len(doctors))
	for _, d := range doctors {
		response = append(response, DoctorResponse{ID: d, Name: d.Name()})
	}

	ctx.JSON(http.StatusOK, gin.H{"doctors": response})
}

func (c *ClinicCalendarController) addAppointment(ctx *gin.Context) {
	var req AddAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := c.useCase.AddAppointment(ctx.Request.Context(), in.AddAppointmentCommand{
		PatientFirstName: req.FirstName,
		PatientLastName:  req.LastName,
		DoctorID:         req.Doctor,
		DateTime:         req.DateTime,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if isInputError(err) {
			status = http.StatusBadRequest
		}

		c.logger.Warn("http.appointment.rejected", out.LogFields{
			"status": status,
			"error":  err.Error(),
		})
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, newAppointmentResponse(appointment))
}

func (c *ClinicCalendarController) listAppointments(ctx *gin.Context) {
	dateParam := ctx.Query("date")
	if dateParam == "" {
		ctx.JSON(http.StatusOK, gin.H{
			"appointments": newAppointmentsResponse(c.useCase.GetAppointments(ctx.Request.Context())),
		})
		return
	}

	date, err := utils.ParseDate(dateParam)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"date":         date,
		"appointments": newAppointmentsResponse(c.useCase.GetAppointmentsForDate(ctx.Request.Context(), date)),
	})
}

func (c *ClinicCalendarController) listTodayAppointments(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"date":         c.useCase.Today(),
		"appointments": newAppointmentsResponse(c.useCase.GetTodayAppointments(ctx.Request.Context())),
	})
}

func (c *ClinicCalendarController) hasAppointment(ctx *gin.Context) {
	date, err := utils.ParseDate(ctx.Query("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"date":           date,
		"hasAppointment": c.useCase.HasAppointment(ctx.Request.Context(), date),
	})
}

func isInputError(err error) bool {
	var parseErr *datetime.ParseError
	var unknownDoctor *domain.UnknownDoctorError

	return errors.As(err, &parseErr) ||
		errors.As(err, &unknownDoctor) ||
		errors.Is(err, domain.ErrPatientFirstNameRequired) ||
		errors.Is(err, domain.ErrPatientLastNameRequired)
}

func (c *ClinicCalendarController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth || !c.isKnownClient(username, password) {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Next()
	}
}

func (c *ClinicCalendarController) isKnownClient(username, password string) bool {
	known := false
	for _, client := range c.cfg.Auth.BasicClients {
		// Без раннего выхода из цикла
		if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
			subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
			known = true
		}
	}
	return known
}
