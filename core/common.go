package core

import "strings"

// Plural returns the plural form of the passed singular string.
//
// This is the algorithm used to derive collection names from
// foreign-key fields, e.g. "post" from a "post_id" field becomes
// the "posts" collection.
func Plural(singular string) string {
	if strings.HasSuffix(singular, "y") && !hasVowelSuffix(strings.TrimSuffix(singular, "y")) {
		return strings.TrimSuffix(singular, "y") + "ies"
	}
	if strings.HasSuffix(singular, "child") {
		return singular + "ren"
	}
	if strings.HasSuffix(singular, "s") || strings.HasSuffix(singular, "x") ||
		strings.HasSuffix(singular, "z") || strings.HasSuffix(singular, "ch") ||
		strings.HasSuffix(singular, "sh") {
		return singular + "es"
	}
	return singular + "s"
}

// Singular returns the singular form of the passed plural string.
//
// Singular is the exact inverse of Plural for the collection-name
// convention: foreign-key fields are named Singular(collection) + "_id",
// both when they are written on save and when they are looked up again.
func Singular(plural string) string {
	if strings.HasSuffix(plural, "ies") {
		return strings.TrimSuffix(plural, "ies") + "y"
	}
	if strings.HasSuffix(plural, "children") {
		return strings.TrimSuffix(plural, "ren")
	}
	if strings.HasSuffix(plural, "ses") || strings.HasSuffix(plural, "xes") ||
		strings.HasSuffix(plural, "zes") || strings.HasSuffix(plural, "ches") ||
		strings.HasSuffix(plural, "shes") {
		return strings.TrimSuffix(plural, "es")
	}
	return strings.TrimSuffix(plural, "s")
}

func hasVowelSuffix(s string) bool {
	if s == "" {
		return false
	}
	return strings.ContainsRune("aeiou", rune(s[len(s)-1]))
}
