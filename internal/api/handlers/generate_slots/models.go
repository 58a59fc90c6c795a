package generate_slots

import (
	generateSlots "github.com/m04kA/PicklePlay-BookingService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest запрос на генерацию слотов.
// Либо days (продление от последней даты), либо явный диапазон from/to.
type GenerateSlotsRequest struct {
	Days *int    `json:"days,omitempty"`
	From *string `json:"from,omitempty"` // "2025-10-15"
	To   *string `json:"to,omitempty"`
}

// GenerateSlotsResponse отчет о генерации
type GenerateSlotsResponse struct {
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Days       int    `json:"days"`
	Created    int    `json:"created"`
	Skipped    int    `json:"skipped"`
	FailedDays int    `json:"failedDays"`
}

// FromUseCaseReport конвертирует отчет use case в HTTP ответ
func FromUseCaseReport(report *generateSlots.Report) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		StartDate:  report.StartDate,
		EndDate:    report.EndDate,
		Days:       report.Days,
		Created:    report.Created,
		Skipped:    report.Skipped,
		FailedDays: report.FailedDays,
	}
}
