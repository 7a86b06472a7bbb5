package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/payrollhq/payroll-system/internal/core/ports"
)

// PunchDispatcher is the interface the handler uses to enqueue punches.
type PunchDispatcher interface {
	Enqueue(punch ports.PunchInput)
	EnqueueBatch(punches []ports.PunchInput)
}

// AttendanceHandler handles attendance punch ingestion and queries.
type AttendanceHandler struct {
	dispatcher PunchDispatcher
	service    ports.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler backed by the given
// dispatcher for writes and service for reads.
func NewAttendanceHandler(dispatcher PunchDispatcher, service ports.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{dispatcher: dispatcher, service: service}
}

// Punch handles POST /api/attendances/punch — enqueues a single punch, returns 202.
//
// @Summary      Ingest a single attendance punch
// @Tags         attendances
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      punchRequest  true  "Attendance punch"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/attendances/punch [post]
func (h *AttendanceHandler) Punch(c echo.Context) error {
	var req punchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toPunchInput(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "punch accepted"})
}

// PunchBatch handles POST /api/attendances/punch/batch — enqueues a batch, returns 202.
//
// @Summary      Ingest a batch of attendance punches
// @Tags         attendances
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []punchRequest  true  "Array of attendance punches"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/attendances/punch/batch [post]
func (h *AttendanceHandler) PunchBatch(c echo.Context) error {
	var reqs []punchRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.PunchInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("punch[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toPunchInput(req))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "punches accepted",
		Count:   len(inputs),
	})
}

// List handles GET /api/attendances — optionally filtered by employee_id.
//
// @Summary      List attendance records
// @Tags         attendances
// @Produce      json
// @Security     BearerAuth
// @Param        employee_id  query    string  false  "Filter by employee id"
// @Success      200          {array}  attendanceResponse
// @Router       /api/attendances [get]
func (h *AttendanceHandler) List(c echo.Context) error {
	records, err := h.service.List(c.Request().Context(), c.QueryParam("employee_id"))
	if err != nil {
		return err
	}

	out := make([]attendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, attendanceResponse{
			ID:         r.ID,
			EmployeeID: r.EmployeeID,
			Type:       string(r.Type),
			Timestamp:  r.Timestamp,
			Source:     r.Source,
			RecordedAt: r.RecordedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// toPunchInput maps the HTTP request to the service DTO.
func toPunchInput(r punchRequest) ports.PunchInput {
	return ports.PunchInput{
		EmployeeID: r.EmployeeID,
		Type:       r.Type,
		Timestamp:  r.Timestamp,
		Source:     r.Source,
	}
}
