// Package language turns user, locale, and track language identifiers into a
// canonical Preference and answers whether a track language matches it.
//
// Parsing goes through golang.org/x/text/language; display names come from
// the English namer in golang.org/x/text/language/display. ISO 639-2
// bibliographic codes (fre, ger, chi, ...) that mkvmerge still emits are
// mapped onto their terminology equivalents.
package language
