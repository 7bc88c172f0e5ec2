package presentation

import (
	"time"

	"github.com/zjrosen/modelctl/internal/lifecycle"
)

// DateLayout is how milestone dates are shown to people.
const DateLayout = "2006-01-02"

// ModelDTO is a model as seen at a reference time.
type ModelDTO struct {
	Name        string  `json:"name"`
	Version     string  `json:"version"`
	Status      string  `json:"status"`
	Created     string  `json:"created_date"`
	Deprecation *string `json:"deprecation_date"`
	Retirement  *string `json:"retirement_date"`
}

// FromModel converts a model to a DTO with its status derived at at.
// Timestamps keep full precision; text output shortens them.
func FromModel(m *lifecycle.Model, at time.Time) ModelDTO {
	rec := m.Serialize(at)
	return ModelDTO{
		Name:        rec.Name,
		Version:     rec.Version,
		Status:      rec.Status,
		Created:     rec.CreatedDate,
		Deprecation: rec.DeprecationDate,
		Retirement:  rec.RetirementDate,
	}
}

// FromModels converts models in order.
func FromModels(models []*lifecycle.Model, at time.Time) []ModelDTO {
	dtos := make([]ModelDTO, len(models))
	for i, m := range models {
		dtos[i] = FromModel(m, at)
	}
	return dtos
}
