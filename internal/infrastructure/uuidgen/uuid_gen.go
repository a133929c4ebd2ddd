package uuidgen

import (
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/contract"
	"github.com/google/uuid"
)

// Generator produces random (v4) UUID strings used as document ids.
type Generator struct{}

// NewGenerator creates a new UUID generator.
func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

// NewUUID generates a new UUID.
func (g *Generator) NewUUID() string {
	return uuid.New().String()
}

// Ensure Generator implements the contract.IUUIDGenerator interface
var _ contract.IUUIDGenerator = (*Generator)(nil)
