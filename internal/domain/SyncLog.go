package domain

import (
	"time"
)

// SyncLog registra uma tentativa de sincronização de uma conta de anúncios.
// Criado em estado running no início da tentativa e finalizado exatamente uma
// vez (success ou error). Um crash do processo pode deixar o registro em
// running; a varredura do scheduler marca esses registros como erro por timeout
type SyncLog struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"client_id"`
	AdAccountID    string     `json:"ad_account_id"`
	Platform       Platform   `json:"platform"`
	Status         SyncStatus `json:"status"`
	DateRangeStart string     `json:"date_range_start"`
	DateRangeEnd   string     `json:"date_range_end"`
	RecordsSynced  int        `json:"records_synced"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}
