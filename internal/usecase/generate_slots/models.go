package generate_slots

// DayResult итог генерации одного дня
type DayResult struct {
	Date    string // YYYY-MM-DD
	Created int    // создано слотов
	Skipped int    // пропущено (день уже был заполнен)
}

// Report итог генерации диапазона дней.
// FailedDays считает дни, на которых хранилище вернуло ошибку: генерация
// деградирует до отчёта о нулевом прогрессе, а не валит вызывающего.
type Report struct {
	StartDate  string
	EndDate    string
	Days       int
	Created    int
	Skipped    int
	FailedDays int
}
