package domain

import "encoding/json"

// BackupVersion identifies the export format written by CreateBackup.
const BackupVersion = "1.1"

// Backup is the full-database JSON export. Rows are kept as raw column maps
// so a restore writes exactly what was dumped, including columns this
// application does not model.
type Backup struct {
	Version   string       `json:"version"`
	Timestamp string       `json:"timestamp"`
	Tables    BackupTables `json:"tables"`
}

type BackupTables struct {
	BusinessSettings []json.RawMessage `json:"business_settings"`
	Profiles         []json.RawMessage `json:"profiles"`
	Bookings         []json.RawMessage `json:"bookings"`
	Invoices         []json.RawMessage `json:"invoices"`
	Expenses         []json.RawMessage `json:"expenses"`
	Adverts          []json.RawMessage `json:"adverts"`
	Gallery          []json.RawMessage `json:"gallery"`
	Services         []json.RawMessage `json:"services"`
}
