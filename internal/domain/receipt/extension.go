// Package receipt holds the rules for receipt files attached to a bill.
package receipt

import "strings"

// InvalidExtensionMessage is shown when the selected file is not an image receipt
const InvalidExtensionMessage = "Veuillez sélectionner un fichier avec une extension .jpg, .jpeg ou .png"

var allowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

// Extension returns the lower-cased extension of fileName without the dot.
// Browser paths such as C:\fakepath\file.png are handled.
func Extension(fileName string) string {
	base := BaseName(fileName)
	idx := strings.LastIndex(base, ".")
	if idx < 0 || idx == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[idx+1:])
}

// BaseName strips any directory part, using either separator
func BaseName(fileName string) string {
	name := fileName
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

// IsAllowed reports whether fileName carries an accepted image extension
func IsAllowed(fileName string) bool {
	return allowedExtensions[Extension(fileName)]
}

// AllowedExtensions returns the accepted extensions in display order
func AllowedExtensions() []string {
	return []string{"jpg", "jpeg", "png"}
}
