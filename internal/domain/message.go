package domain

// LogEntry - запись в игровом журнале
type LogEntry struct {
	Tick int    `json:"tick"`
	Text string `json:"text"`
	Type string `json:"type"` // INFO, COMBAT, ERROR
}
