package dto

import "time"

// AddScanRequest alta de un escaneo en el documento activo.
type AddScanRequest struct {
	Barcode string `json:"barcode"`
}

// ScanResponse escaneo expuesto por la API (vista cronológica).
type ScanResponse struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Barcode    string    `json:"barcode"`
	CreatedAt  time.Time `json:"created_at"`
}

// GroupedScanResponse escaneo en la vista agrupada, con las pistas de
// presentación que la UI usa para emparejar duplicados.
type GroupedScanResponse struct {
	ScanResponse
	OccurrenceCount int  `json:"occurrence_count"`
	SequenceNumber  int  `json:"sequence_number"`
	IsDuplicate     bool `json:"is_duplicate"`
	ColorIndex      int  `json:"color_index"`
}

// ScanListResponse vista cronológica de un documento.
type ScanListResponse struct {
	Items []ScanResponse `json:"items"`
	Total int            `json:"total"`
}

// GroupedScanListResponse vista agrupada de un documento.
type GroupedScanListResponse struct {
	Items []GroupedScanResponse `json:"items"`
	Total int                   `json:"total"`
}
