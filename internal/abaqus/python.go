package abaqus

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/evaries/cantilever/internal/geometry"
)

// Names the journal imports or the application predefines
var reserved = map[string]bool{
	"mdb": true, "session": true, "mesh": true, "part": true, "sketch": true,
	"regionToolset": true, "odb": true, "step": true, "job": true,
}

// pyStr quotes s as a single-quoted Python literal
func pyStr(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// pyNum formats v in the shortest form that round-trips
func pyNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func pyBool(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func pyPoint2(p geometry.Point2) string {
	return "(" + pyNum(p.X) + ", " + pyNum(p.Y) + ")"
}

func pyPoint3(p geometry.Point3) string {
	return "(" + pyNum(p.X) + ", " + pyNum(p.Y) + ", " + pyNum(p.Z) + ")"
}

// pyTuple renders a tuple of string literals, with the trailing comma a
// one-element tuple needs
func pyTuple(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = pyStr(it)
	}
	if len(quoted) == 1 {
		return "(" + quoted[0] + ", )"
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}

// identifiers hands out unique Python variable names
type identifiers struct {
	used map[string]bool
}

func newIdentifiers() *identifiers {
	return &identifiers{used: map[string]bool{}}
}

// next derives a lower-camel identifier from an entity name, suffixed with
// its kind unless the name already ends with it: ("Beam", "Part") -> beamPart.
func (ids *identifiers) next(name, kind string) string {
	var words []string
	for _, w := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words = append(words, w)
	}
	if n := len(words); n == 0 || !strings.HasSuffix(strings.ToLower(words[n-1]), strings.ToLower(kind)) {
		words = append(words, kind)
	}

	var sb strings.Builder
	for i, w := range words {
		if i == 0 {
			sb.WriteString(strings.ToLower(w[:1]) + w[1:])
			if isUpper(w) {
				sb.Reset()
				sb.WriteString(strings.ToLower(w))
			}
			continue
		}
		sb.WriteString(strings.ToUpper(w[:1]) + w[1:])
	}
	id := sb.String()
	if id[0] >= '0' && id[0] <= '9' {
		id = "v" + id
	}
	if reserved[id] {
		id += "Obj"
	}

	base := id
	for n := 2; ids.used[id]; n++ {
		id = base + strconv.Itoa(n)
	}
	ids.used[id] = true
	return id
}

func isUpper(w string) bool {
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}
