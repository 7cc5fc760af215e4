package dto

import (
	"energy-es/internal/domain/entities"
)

// PricesRequest representa la request de /api/v1/prices/{variable}
type PricesRequest struct {
	Variable entities.Variable `json:"variable"`
	Unit     entities.Unit     `json:"unit"`
}

// NewPricesRequest crea una request desde los parámetros de la URL.
// Sin unidad se usa la nativa (€/MWh).
func NewPricesRequest(variableParam, unitParam string) (*PricesRequest, error) {
	variable, err := entities.ParseVariable(variableParam)
	if err != nil {
		return nil, err
	}

	unit, err := ParseUnitParam(unitParam)
	if err != nil {
		return nil, err
	}

	return &PricesRequest{
		Variable: variable,
		Unit:     unit,
	}, nil
}

// ParseUnitParam valida el query param unit, vacío equivale a "m"
func ParseUnitParam(unitParam string) (entities.Unit, error) {
	if unitParam == "" {
		return entities.UnitMega, nil
	}
	return entities.ParseUnit(unitParam)
}
