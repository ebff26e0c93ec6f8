package models

import (
	"fmt"
	"strings"
)

// Language is a conversion target
type Language string

const (
	Python     Language = "Python"
	Java       Language = "Java"
	CPlusPlus  Language = "C++"
	Go         Language = "Go"
	Rust       Language = "Rust"
	TypeScript Language = "TypeScript"
)

var languages = []Language{Python, Java, CPlusPlus, Go, Rust, TypeScript}

var extensions = map[Language]string{
	Python:     "py",
	Java:       "java",
	CPlusPlus:  "cpp",
	Go:         "go",
	Rust:       "rs",
	TypeScript: "ts",
}

// Languages returns the supported targets in display order
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// ParseLanguage matches a language name case-insensitively.
// Common aliases such as "cpp", "golang" and "ts" are accepted too.
func ParseLanguage(s string) (Language, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "cpp", "cxx", "c++":
		return CPlusPlus, nil
	case "golang":
		return Go, nil
	case "ts":
		return TypeScript, nil
	case "py":
		return Python, nil
	case "rs":
		return Rust, nil
	}
	for _, l := range languages {
		if strings.ToLower(string(l)) == name {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language: %s (must be one of: %s)", s, joinLanguages())
}

// Valid reports whether l is one of the supported targets
func (l Language) Valid() bool {
	_, ok := extensions[l]
	return ok
}

// Extension returns the file extension for source in this language, without the dot
func (l Language) Extension() string {
	return extensions[l]
}

// Next returns the language after l, wrapping around
func (l Language) Next() Language {
	return l.offset(1)
}

// Prev returns the language before l, wrapping around
func (l Language) Prev() Language {
	return l.offset(-1)
}

func (l Language) offset(delta int) Language {
	idx := 0
	for i, candidate := range languages {
		if candidate == l {
			idx = i
			break
		}
	}
	n := len(languages)
	return languages[((idx+delta)%n+n)%n]
}

func (l Language) String() string {
	return string(l)
}

func joinLanguages() string {
	names := make([]string, len(languages))
	for i, l := range languages {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}
