// Package sanitizer cleans user-supplied text before it is stored.
//
// Text is meant for short fields such as task titles: it strips HTML with
// a bluemonday strict policy, normalizes to Unicode NFC and collapses
// whitespace. Email normalizes addresses for case-insensitive lookups.
//
//	title := sanitizer.Text(`<b>Buy</b>  milk `) // "Buy milk"
package sanitizer
