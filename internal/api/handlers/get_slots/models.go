package get_slots

import (
	getSlots "github.com/m04kA/PicklePlay-BookingService/internal/usecase/get_slots"
)

// SlotResponse слот в ответе календаря
type SlotResponse struct {
	ID        string  `json:"id"`
	Hour      int     `json:"hour"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"`
	IsPast    bool    `json:"isPast"`
}

// GetSlotsResponse ответ со слотами одного дня
type GetSlotsResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *getSlots.Response) *GetSlotsResponse {
	out := &GetSlotsResponse{
		Date:  resp.Date,
		Slots: make([]SlotResponse, len(resp.Slots)),
	}

	for i, s := range resp.Slots {
		out.Slots[i] = SlotResponse{
			ID:        s.ID,
			Hour:      s.Hour,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Price:     s.Price,
			Status:    s.Status,
			IsPast:    s.IsPast,
		}
	}

	return out
}
