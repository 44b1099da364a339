package usecase

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Formato de la marca de tiempo dentro del nombre del artefacto.
const filenameTimeLayout = "20060102_150405"

// Transformador que descompone, quita marcas diacríticas y recompone.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ArtifactFilename deriva el nombre del artefacto CSV solo de los metadatos del
// documento: {tipo}_{dueño}_{YYYYMMDD_HHMMSS}.csv. Dos documentos con el mismo
// tipo, dueño y segundo de creación colisionan; la sobrescritura es el
// comportamiento aceptado en ese caso.
func ArtifactFilename(docType, ownerName string, createdAt time.Time) string {
	return fmt.Sprintf("%s_%s_%s.csv", docType, sanitizeName(ownerName), createdAt.Format(filenameTimeLayout))
}

// sanitizeName normaliza el nombre del dueño para uso en nombres de archivo:
// pliega diacríticos (María → Maria) y reemplaza todo lo que no sea letra,
// dígito o guion por '_'. La transformación es determinista.
func sanitizeName(name string) string {
	folded, _, err := transform.String(foldDiacritics, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
