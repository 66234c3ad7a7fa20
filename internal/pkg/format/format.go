// Package format отвечает за текстовое представление чисел на карточках дашборда.
package format

import (
	"github.com/dustin/go-humanize"
)

// Placeholder выводится вместо отсутствующего значения
const Placeholder = "-"

// thousandsPattern - разделитель тысяч ".", без дробной части
const thousandsPattern = "#.###,"

// Count форматирует счетчик с "." в качестве разделителя тысяч.
// nil означает отсутствие значения за дату и выводится как Placeholder.
func Count(v *int64) string {
	if v == nil {
		return Placeholder
	}
	return humanize.FormatInteger(thousandsPattern, int(*v))
}
