package entities

import "errors"

var (
	// ErrInvalidArgument variable o unidad no reconocida
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUpstream respuesta no satisfactoria de la API de precios
	ErrUpstream = errors.New("upstream error")

	// ErrData payload sin la serie esperada, con longitud distinta de 24 o con valores no parseables
	ErrData = errors.New("data error")

	ErrEmptySeries = errors.New("empty price series")
)
