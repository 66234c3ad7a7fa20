// Package web содержит встроенные шаблоны страницы дашборда.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
