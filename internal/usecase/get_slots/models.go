package get_slots

// Slot слот дня с вычисленным на чтении флагом IsPast.
// IsPast не хранится: он выводится из текущего времени и буфера
// и актуален только в момент ответа.
type Slot struct {
	ID        string
	Hour      int
	StartTime string
	EndTime   string
	Price     float64
	Status    string
	IsPast    bool
}

// Response список слотов на дату
type Response struct {
	Date  string
	Slots []Slot
}
