package folio

import (
	"fmt"
	"strings"
	"unicode"
)

// SanitizeFileName converts an uploaded filename to a safe ASCII object
// key segment: printable ASCII passes through (path separators become
// hyphens), common Latin diacritics are stripped, everything else is
// replaced with a hyphen.
func SanitizeFileName(filename string) string {
	if filename == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(filename))

	for _, r := range filename {
		if r == '/' || r == '\\' {
			result.WriteRune('-')
			continue
		}
		if r < 128 && unicode.IsPrint(r) {
			result.WriteRune(r)
			continue
		}
		switch {
		case r >= 'À' && r <= 'Å':
			result.WriteRune('A')
		case r >= 'à' && r <= 'å':
			result.WriteRune('a')
		case r >= 'È' && r <= 'Ë':
			result.WriteRune('E')
		case r >= 'è' && r <= 'ë':
			result.WriteRune('e')
		case r >= 'Ì' && r <= 'Ï':
			result.WriteRune('I')
		case r >= 'ì' && r <= 'ï':
			result.WriteRune('i')
		case r >= 'Ò' && r <= 'Ö':
			result.WriteRune('O')
		case r >= 'ò' && r <= 'ö':
			result.WriteRune('o')
		case r >= 'Ù' && r <= 'Ü':
			result.WriteRune('U')
		case r >= 'ù' && r <= 'ü':
			result.WriteRune('u')
		case r == 'Ç':
			result.WriteRune('C')
		case r == 'ç':
			result.WriteRune('c')
		case r == 'Ñ':
			result.WriteRune('N')
		case r == 'ñ':
			result.WriteRune('n')
		default:
			result.WriteRune('-')
		}
	}

	return result.String()
}

// mediaObjectKey builds the store key for a media record:
// u/<owner>/<media-id>/<sanitized filename>, dropping the trailing
// segment when no filename was supplied.
func mediaObjectKey(media *Media) string {
	name := SanitizeFileName(media.FileName)
	if name == "" {
		return fmt.Sprintf("u/%s/%s", media.OwnerID, media.ID)
	}
	return fmt.Sprintf("u/%s/%s/%s", media.OwnerID, media.ID, name)
}
