// Package listado implementa el pipeline genérico de búsqueda: filtrar,
// ordenar y paginar colecciones ya materializadas. Lo comparten las búsquedas
// de telas, de asignaciones por almacén y de movimientos.
package listado

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tht-textil/telas-api/internal/domain"
)

// Resultado es una página de resultados más el total sin paginar.
type Resultado[T any] struct {
	Datos        []T   `json:"datos"`
	Total        int64 `json:"total"`
	Pagina       int   `json:"pagina"`
	TamanoPagina int   `json:"tamanoPagina"`
}

// Filtrar devuelve los elementos que cumplen el predicado. Con predicado nil
// devuelve la colección tal cual.
func Filtrar[T any](items []T, pred func(T) bool) []T {
	if pred == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// Ordenar ordena de forma estable según cmp (negativo: a antes que b).
// Con desc invierte el orden.
func Ordenar[T any](items []T, cmp func(a, b T) int, desc bool) {
	if cmp == nil {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		r := cmp(items[i], items[j])
		if desc {
			return r > 0
		}
		return r < 0
	})
}

// Paginar aplica skip/take sobre la colección ya filtrada y ordenada.
// La página es base cero, como en el cliente.
func Paginar[T any](items []T, pagina, tamanoPagina int) (Resultado[T], error) {
	if pagina < 0 || tamanoPagina <= 0 {
		return Resultado[T]{}, domain.ErrInvalidInput
	}
	total := int64(len(items))
	desde := pagina * tamanoPagina
	if desde > len(items) {
		desde = len(items)
	}
	hasta := desde + tamanoPagina
	if hasta > len(items) {
		hasta = len(items)
	}
	datos := make([]T, hasta-desde)
	copy(datos, items[desde:hasta])
	return Resultado[T]{Datos: datos, Total: total, Pagina: pagina, TamanoPagina: tamanoPagina}, nil
}

var quitarDiacriticos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizar pasa a minúsculas y quita diacríticos ("Algodón" -> "algodon"),
// para que las búsquedas de términos en español no dependan de tildes.
func Normalizar(s string) string {
	out, _, err := transform.String(quitarDiacriticos, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// ContieneFold indica si s contiene el término, ignorando mayúsculas y tildes.
func ContieneFold(s, termino string) bool {
	if termino == "" {
		return true
	}
	return strings.Contains(Normalizar(s), Normalizar(termino))
}

// CompararStrings compara sin distinguir mayúsculas; los vacíos van primero.
func CompararStrings(a, b string) int {
	if a == "" && b == "" {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// CompararFechas compara fechas opcionales; los nulos van primero.
func CompararFechas(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.Before(*b):
		return -1
	case a.After(*b):
		return 1
	}
	return 0
}
