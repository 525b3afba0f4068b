package entity

import "time"

// Import is one uploaded GSTR-2A extract and its stored raw rows.
type Import struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

// LedgerName is one reusable entry of the ledger-name directory, offered
// as an autocomplete suggestion while editing rows.
type LedgerName struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
