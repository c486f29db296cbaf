package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// FormatDate formata uma data no padrão usado nas tabelas de métricas (YYYY-MM-DD)
func FormatDate(date time.Time) string {
	return date.Format(time.DateOnly)
}
