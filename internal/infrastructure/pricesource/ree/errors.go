package ree

import "errors"

// errTransport marca fallos de red; son los únicos que se reintentan
var errTransport = errors.New("ree transport error")
