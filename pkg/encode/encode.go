// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package encode neutralizes user-supplied text before it is returned to a browser.

Stored values are kept exactly as submitted; encoding happens once, when a
value leaves the API, so it is never applied twice.
*/
package encode

import "strings"

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// HTML replaces the five HTML-significant characters with their entities.
//
// All other characters, including non-ASCII text, are returned unchanged.
func HTML(s string) string {
	return htmlReplacer.Replace(s)
}
