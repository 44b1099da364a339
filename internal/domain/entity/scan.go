package entity

import "time"

// BarcodeScan es una fila del registro de escaneos de un documento.
// El registro es append-only: no hay deduplicación ni borrado masivo,
// solo borrado individual por id.
type BarcodeScan struct {
	ID         string
	DocumentID string
	Barcode    string // valor crudo, ya recortado
	CreatedAt  time.Time
}

// GroupedScan es la vista de presentación de un escaneo dentro de un documento:
// los valores iguales quedan contiguos y los duplicados se marcan para que la UI
// los empareje visualmente.
type GroupedScan struct {
	BarcodeScan
	OccurrenceCount int  // total de escaneos con el mismo valor en el documento
	SequenceNumber  int  // posición 1-based entre las filas del mismo valor
	IsDuplicate     bool // OccurrenceCount > 1
	ColorIndex      int  // (SequenceNumber-1) mod 4 si es duplicado; 0 si no. Solo es una pista de color para la UI.
}
