package model

import (
	"path/filepath"
	"strings"
)

// Language is a closed set of recognized implementation languages.
type Language string

const (
	LanguageCSharp     Language = "CS"
	LanguageVB         Language = "VB"
	LanguageFSharp     Language = "FS"
	LanguageCPP        Language = "CPP"
	LanguagePython     Language = "PY"
	LanguageJava       Language = "JAVA"
	LanguageJavaScript Language = "JS"
	LanguageOther      Language = "OTHER"
)

// extensionLanguages is the single editable extension table. All matching is
// case-insensitive on the extension.
var extensionLanguages = map[string]Language{
	".cs":   LanguageCSharp,
	".vb":   LanguageVB,
	".fs":   LanguageFSharp,
	".cpp":  LanguageCPP,
	".cc":   LanguageCPP,
	".cxx":  LanguageCPP,
	".h":    LanguageCPP,
	".hpp":  LanguageCPP,
	".py":   LanguagePython,
	".java": LanguageJava,
	".js":   LanguageJavaScript,
}

// ClassifyLanguage maps a file name to its Language by extension.
// Unrecognized extensions map to LanguageOther; it never fails.
func ClassifyLanguage(fileName string) Language {
	ext := strings.ToLower(filepath.Ext(fileName))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return LanguageOther
}
