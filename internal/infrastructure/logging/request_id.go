package logging

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// RequestIDGenerator genera identificadores de request
type RequestIDGenerator struct {
	prefix string
}

// NewRequestIDGenerator crea un generador con el prefijo indicado ("req" por defecto)
func NewRequestIDGenerator(prefix string) *RequestIDGenerator {
	if prefix == "" {
		prefix = "req"
	}
	return &RequestIDGenerator{
		prefix: prefix,
	}
}

// Generate crea un ID con formato {prefix}_{unix_micro}_{random hex}
func (g *RequestIDGenerator) Generate() string {
	timestamp := time.Now().UnixMicro()

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("%s_%d", g.prefix, timestamp)
	}

	return fmt.Sprintf("%s_%d_%s", g.prefix, timestamp, hex.EncodeToString(randomBytes))
}

var defaultGenerator = NewRequestIDGenerator("req")

// GenerateRequestID genera un ID con el generador por defecto
func GenerateRequestID() string {
	return defaultGenerator.Generate()
}
