// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"math"
	"text/template"
)

func (p *Presenter) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"percent":     p.percent,
		"floatFormat": p.floatFormat,
	}
}

// percent formats part as a share of total, truncated to one decimal.
func (p *Presenter) percent(part, total int) string {
	if total == 0 {
		return "0%"
	}
	return p.floatFormat(float64(part)*100/float64(total), 1) + "%"
}

func (p *Presenter) floatFormat(val float64, precision int) string {
	pow := math.Pow(10, float64(precision))
	return fmt.Sprintf("%.*f", precision, math.Trunc(val*pow)/pow)
}
