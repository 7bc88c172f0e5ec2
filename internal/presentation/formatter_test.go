package presentation

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/modelctl/internal/lifecycle"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleModels(t *testing.T) []*lifecycle.Model {
	t.Helper()
	a, err := lifecycle.NewModel("gpt-x", "1.0", lifecycle.WithCreated(t0))
	require.NoError(t, err)
	b, err := lifecycle.NewModel("gpt-x", "2.0",
		lifecycle.WithCreated(t0),
		lifecycle.WithDeprecation(t0.AddDate(0, 0, 30)),
		lifecycle.WithRetirement(t0.AddDate(0, 0, 365)),
	)
	require.NoError(t, err)
	return []*lifecycle.Model{a, b}
}

func TestFromModel(t *testing.T) {
	models := sampleModels(t)
	at := t0.AddDate(0, 0, 60)

	dto := FromModel(models[1], at)
	require.Equal(t, "gpt-x", dto.Name)
	require.Equal(t, "2.0", dto.Version)
	require.Equal(t, "deprecated", dto.Status)
	require.Equal(t, "2024-01-01T00:00:00Z", dto.Created)
	require.NotNil(t, dto.Deprecation)
	require.Equal(t, "2024-01-31T00:00:00Z", *dto.Deprecation)
	require.NotNil(t, dto.Retirement)

	dto = FromModel(models[0], at)
	require.Equal(t, "active", dto.Status)
	require.Nil(t, dto.Deprecation)
	require.Nil(t, dto.Retirement)
}

func TestFromModels_StatusFollowsReferenceTime(t *testing.T) {
	models := sampleModels(t)

	dtos := FromModels(models, t0.AddDate(0, 0, 400))
	require.Len(t, dtos, 2)
	require.Equal(t, "active", dtos[0].Status)
	require.Equal(t, "retired", dtos[1].Status)

	require.Empty(t, FromModels(nil, t0))
}

func TestFormatter_FormatModels(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	require.NoError(t, f.FormatModels(FromModels(sampleModels(t), t0)))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	require.Equal(t, "gpt-x", out[0]["name"])
	require.Contains(t, out[0], "deprecation_date")
	require.Nil(t, out[0]["deprecation_date"])
	require.Equal(t, "active", out[1]["status"])
}

func TestFormatter_FormatModel(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	require.NoError(t, f.FormatModel(FromModel(sampleModels(t)[1], t0.AddDate(1, 0, 0))))
	require.Contains(t, buf.String(), `"status": "retired"`)
}

func TestFormatter_FormatModelsText(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	require.NoError(t, f.FormatModelsText(FromModels(sampleModels(t), t0.AddDate(0, 0, 30))))
	out := buf.String()

	require.Contains(t, out, "Found 2 model(s):")
	require.Contains(t, out, "gpt-x v1.0")
	require.Contains(t, out, "gpt-x v2.0")
	require.Contains(t, out, "Status:")
	require.Contains(t, out, "deprecated")
	require.Contains(t, out, "Created: 2024-01-01")
	require.Contains(t, out, "Deprecation: 2024-01-31")
	require.Contains(t, out, "Retirement: 2024-12-31")
}

func TestFormatter_FormatModelsText_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatModelsText(nil))
	require.Equal(t, "No models found.\n", buf.String())
}

func TestFormatter_FormatStatus(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	require.NoError(t, f.FormatStatus(FromModel(sampleModels(t)[0], t0)))
	out := buf.String()

	require.Contains(t, out, "Model: gpt-x v1.0")
	require.Contains(t, out, "Status: active")
	require.Contains(t, out, "Created: 2024-01-01")
	require.NotContains(t, out, "Deprecation:")
	require.NotContains(t, out, "Retirement:")
}

func TestShortDate(t *testing.T) {
	require.Equal(t, "2024-03-01", shortDate("2024-03-01T23:59:59.5Z"))
	require.Equal(t, "garbage", shortDate("garbage"))
}
