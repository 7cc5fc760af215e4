package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Variable identifica una de las dos series de precios
type Variable string

const (
	VariableSpot Variable = "spot"
	VariablePVPC Variable = "pvpc"
)

// Variables lista las variables soportadas en orden de presentación
var Variables = []Variable{VariableSpot, VariablePVPC}

// ParseVariable convierte un string (sin distinguir mayúsculas) en Variable
func ParseVariable(s string) (Variable, error) {
	switch Variable(strings.ToLower(strings.TrimSpace(s))) {
	case VariableSpot:
		return VariableSpot, nil
	case VariablePVPC:
		return VariablePVPC, nil
	default:
		return "", fmt.Errorf("%w: unknown variable %q, must be one of: spot, pvpc", ErrInvalidArgument, s)
	}
}

// Valid indica si la variable es una de las soportadas
func (v Variable) Valid() bool {
	return v == VariableSpot || v == VariablePVPC
}

// Title retorna el nombre legible de la serie
func (v Variable) Title() string {
	switch v {
	case VariableSpot:
		return "Spot market price"
	case VariablePVPC:
		return "PVPC price"
	default:
		return string(v)
	}
}

// Unit es la unidad en la que se sirven los precios
type Unit string

const (
	// UnitMega EUR/MWh, unidad nativa
	UnitMega Unit = "m"
	// UnitKilo EUR/kWh
	UnitKilo Unit = "k"
)

// kiloDecimals son los decimales a los que se redondea la conversión a EUR/kWh
const kiloDecimals = 4

var thousand = decimal.NewFromInt(1000)

// ParseUnit convierte un string (sin distinguir mayúsculas) en Unit
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(s))) {
	case UnitMega:
		return UnitMega, nil
	case UnitKilo:
		return UnitKilo, nil
	default:
		return "", fmt.Errorf("%w: unknown unit %q, must be one of: m, k", ErrInvalidArgument, s)
	}
}

// Valid indica si la unidad es una de las soportadas
func (u Unit) Valid() bool {
	return u == UnitMega || u == UnitKilo
}

// Label retorna la etiqueta de la unidad
func (u Unit) Label() string {
	if u == UnitKilo {
		return "€/kWh"
	}
	return "€/MWh"
}

// Convert transforma un valor en EUR/MWh a la unidad u
func (u Unit) Convert(value float64) float64 {
	if u != UnitKilo {
		return value
	}
	converted, _ := decimal.NewFromFloat(value).Div(thousand).Round(kiloDecimals).Float64()
	return converted
}
