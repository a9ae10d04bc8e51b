package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/stafftrack/hrms-backend-go/internal/domain/report"
	"github.com/stafftrack/hrms-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
	ExportXLSX(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
	UpdateSalary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func periodFromQuery(r *http.Request) report.MonthlyReportRequest {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	return report.MonthlyReportRequest{Year: year, Month: month}
}

// Monthly implements ReportHandler.
func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Monthly(r.Context(), periodFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportXLSX implements ReportHandler.
func (h *reportHandlerImpl) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	req := periodFromQuery(r)

	data, err := h.reportService.ExportXLSX(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-report-%04d-%02d.xlsx", req.Year, req.Month)
	response.File(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, data)
}

// Payslip implements ReportHandler.
func (h *reportHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	req := periodFromQuery(r)
	employeeID := chi.URLParam(r, "id")

	data, err := h.reportService.PayslipPDF(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("payslip-%04d-%02d.pdf", req.Year, req.Month)
	response.File(w, "application/pdf", filename, data)
}

// UpdateSalary implements ReportHandler.
func (h *reportHandlerImpl) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	var req report.UpdateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	if err := h.reportService.UpdateSalary(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary updated", nil)
}
