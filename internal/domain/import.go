package domain

import "time"

// Import records one statement file loaded into the trade archive. Only the
// raw trades of a batch are stored; summaries are recomputed on every read.
type Import struct {
	ID         string    // Batch identifier (UUID)
	SourceFile string    // Path of the statement file the batch came from
	ImportedAt time.Time // When the batch was stored
	TradeCount int       // Number of trades in the batch
}
