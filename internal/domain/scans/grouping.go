// Package scans contiene la lógica pura de ordenamiento y agrupación de
// escaneos para la vista de presentación (sin dependencias de persistencia).
package scans

import (
	"sort"

	"github.com/jhoicas/Escaner-api/internal/domain/entity"
)

// Cantidad de colores de resaltado que alterna la UI para emparejar duplicados.
const paletteSize = 4

// Group construye la vista agrupada de un documento a partir de sus escaneos.
//
// Orden: primero por valor de código de barras ascendente (lexicográfico) y,
// dentro del mismo valor, por fecha de creación descendente. Para cada fila se
// calcula el total de ocurrencias de su valor, su posición 1-based dentro del
// grupo en ese orden, la marca de duplicado y el índice de color alternante.
func Group(rows []entity.BarcodeScan) []entity.GroupedScan {
	if len(rows) == 0 {
		return nil
	}

	sorted := make([]entity.BarcodeScan, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Barcode != sorted[j].Barcode {
			return sorted[i].Barcode < sorted[j].Barcode
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	counts := make(map[string]int, len(sorted))
	for _, s := range sorted {
		counts[s.Barcode]++
	}

	out := make([]entity.GroupedScan, 0, len(sorted))
	seq := 0
	for i, s := range sorted {
		if i == 0 || sorted[i-1].Barcode != s.Barcode {
			seq = 0
		}
		seq++

		g := entity.GroupedScan{
			BarcodeScan:     s,
			OccurrenceCount: counts[s.Barcode],
			SequenceNumber:  seq,
			IsDuplicate:     counts[s.Barcode] > 1,
		}
		if g.IsDuplicate {
			g.ColorIndex = (seq - 1) % paletteSize
		}
		out = append(out, g)
	}
	return out
}
