package distribution

import "strings"

// DefaultMimeTypes are the declared types accepted without an extension match.
var DefaultMimeTypes = []string{
	"text/csv",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

var allowedExtensions = map[string]struct{}{
	".csv":  {},
	".xlsx": {},
	".xls":  {},
}

// Validator gates uploads on declared MIME type or file extension.
type Validator struct {
	mimeTypes map[string]struct{}
}

// NewValidator builds a validator for the given MIME allow-list. An empty
// list falls back to DefaultMimeTypes.
func NewValidator(mimeTypes ...string) Validator {
	if len(mimeTypes) == 0 {
		mimeTypes = DefaultMimeTypes
	}
	set := make(map[string]struct{}, len(mimeTypes))
	for _, m := range mimeTypes {
		if m = normalizeMime(m); m != "" {
			set[m] = struct{}{}
		}
	}
	return Validator{mimeTypes: set}
}

// Validate reports whether the file may be parsed. Either a MIME match or an
// extension match is enough.
func (v Validator) Validate(name, declaredMimeType string) bool {
	if _, ok := v.mimeTypes[normalizeMime(declaredMimeType)]; ok {
		return true
	}
	_, ok := allowedExtensions[extension(name)]
	return ok
}

// extension returns the lowercased suffix from the last dot, or "" when the
// name has none.
func extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx:])
}

func normalizeMime(m string) string {
	return strings.ToLower(strings.TrimSpace(m))
}
