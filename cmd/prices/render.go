package main

import (
	"energy-es/internal/application/dto"
	"fmt"
	"io"
	"strconv"
)

// renderSummary escribe la cabecera, una fila "HH:MM  valor" por hora y la línea de mínimo y máximo
func renderSummary(w io.Writer, s dto.SummaryResponse) {
	fmt.Fprintf(w, "%s (%s) for %s\n", s.Title, s.UnitLabel, s.Day)
	for _, p := range s.Prices {
		fmt.Fprintf(w, "%s  %s\n", p.Hour, strconv.FormatFloat(p.Value, 'f', -1, 64))
	}
	fmt.Fprintf(w, "min %s | max %s\n", s.Min.Label, s.Max.Label)
}
