package locations

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// foldTransformer descompone (NFD), elimina marcas diacríticas y recompone.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldForSearch normaliza para comparación: minúsculas y sin acentos.
func foldForSearch(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// containsFolded subcadena insensible a mayúsculas/acentos. needle ya viene
// normalizado por foldForSearch.
func containsFolded(haystack, needle string) bool {
	return strings.Contains(foldForSearch(haystack), needle)
}

func errorsIsHierarchy(err error) bool {
	return errors.Is(err, domain.ErrInvalidHierarchy)
}
