// Package generator turns a free-text app prompt into a deterministic
// synthetic project skeleton. Classification is keyword matching and
// synthesis is pure string templating; no model is ever consulted.
package generator

import "strings"

// Archetype is the synthetic project category chosen for a prompt.
type Archetype string

const (
	ArchetypeFullStack Archetype = "fullstack"
	ArchetypeAPI       Archetype = "api"
	ArchetypeFrontend  Archetype = "frontend"
	ArchetypeBasic     Archetype = "basic"
)

var (
	fullStackKeywords = []string{"full stack", "fullstack", "full-stack"}
	apiKeywords       = []string{"api", "backend", "server", "express", "django", "flask", "fastapi"}
	frontendKeywords  = []string{"react", "frontend", "ui", "vue"}
)

// Classify maps a prompt to an archetype by case-insensitive substring
// search, first match wins. The ordering is a deliberate tie-break: a prompt
// mentioning both "react" and "backend" resolves to API because the backend
// check runs first, while full-stack phrasing always wins outright.
func Classify(prompt string) Archetype {
	p := strings.ToLower(prompt)

	for _, kw := range fullStackKeywords {
		if strings.Contains(p, kw) {
			return ArchetypeFullStack
		}
	}
	for _, kw := range apiKeywords {
		if strings.Contains(p, kw) {
			return ArchetypeAPI
		}
	}
	for _, kw := range frontendKeywords {
		if strings.Contains(p, kw) {
			return ArchetypeFrontend
		}
	}
	return ArchetypeBasic
}
