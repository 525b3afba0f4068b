package editbuffer

import (
	"strconv"

	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

// RowKey derives the stable identity of a row within a processed
// document: its persisted identifier if present, else its declared
// serial number, else its positional index at load time. Every component
// that addresses rows by key goes through this one function; keys are
// recomputed from scratch whenever the row set is replaced.
func RowKey(row *entity.CanonicalLedgerRow, index int) string {
	if row.ID != "" {
		return row.ID
	}
	if row.SerialNumber > 0 {
		return "seq:" + strconv.Itoa(row.SerialNumber)
	}
	return "idx:" + strconv.Itoa(index)
}
