package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gym-service/internal/services"
	"github.com/SAP-F-2025/gym-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FeeListEnvelope lifts the fee totals to the top level of the response
type FeeListEnvelope struct {
	Data   []*services.FeeView `json:"data"`
	Status int                 `json:"status"`
	Total  float64             `json:"total"`
	Income float64             `json:"income"`
	Paid   float64             `json:"paid"`
	Unpaid float64             `json:"unpaid"`
}

func newFeeListEnvelope(list *services.FeeListResponse) FeeListEnvelope {
	return FeeListEnvelope{
		Data:   list.Fees,
		Status: http.StatusOK,
		Total:  list.Totals.Total,
		Income: list.Totals.Income,
		Paid:   list.Totals.Income,
		Unpaid: list.Totals.Unpaid,
	}
}

type FeeHandler struct {
	BaseHandler
	feeService services.FeeService
}

func NewFeeHandler(feeService services.FeeService, logger utils.Logger) *FeeHandler {
	return &FeeHandler{
		BaseHandler: NewBaseHandler(logger),
		feeService:  feeService,
	}
}

// ListFees lists fee records with their student and totals
// @Summary List fees
// @Tags fees
// @Produce json
// @Param studentId query string false "Only this student's fees"
// @Success 200 {object} FeeListEnvelope
// @Failure 403 {object} ErrorResponse
// @Router /fees [get]
func (h *FeeHandler) ListFees(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	list, err := h.feeService.List(c.Request.Context(), caller, c.Query("studentId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFeeListEnvelope(list))
}

// CreateFee charges a member and notifies them
// @Summary Create fee
// @Tags fees
// @Accept json
// @Produce json
// @Param fee body services.FeeCreateRequest true "Fee data"
// @Success 201 {object} SuccessResponse{data=models.Fee}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /fees [post]
func (h *FeeHandler) CreateFee(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.FeeCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Creating fee", "student_id", req.StudentID, "amount", req.Amount)

	fee, err := h.feeService.Create(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, fee, "Fee created successfully")
}

// MarkPaid settles a fee
// @Summary Mark fee paid
// @Tags fees
// @Produce json
// @Param id path string true "Fee ID"
// @Success 200 {object} SuccessResponse{data=models.Fee}
// @Failure 404 {object} ErrorResponse
// @Router /fees/{id}/pay [patch]
func (h *FeeHandler) MarkPaid(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	fee, err := h.feeService.MarkPaid(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, fee, "Fee marked as paid")
}

// ExportFees downloads every fee as a spreadsheet
// @Summary Export fees
// @Tags fees
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /fees/export [get]
func (h *FeeHandler) ExportFees(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	// buffered so a failed export can still return a JSON error
	var buf bytes.Buffer
	if err := h.feeService.Export(c.Request.Context(), caller, &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("fees-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
