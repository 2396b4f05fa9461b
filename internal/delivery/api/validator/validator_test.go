package validator

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Material string  `json:"material" validate:"required,material"`
	Priority string  `json:"priority" validate:"priority"`
	Lat      float64 `json:"latitude" validate:"latitude"`
}

func TestValidate(t *testing.T) {
	v := New()

	t.Run("valid payload", func(t *testing.T) {
		err := v.Validate(&samplePayload{Material: "Vidro", Priority: "Alta", Lat: -23.5})
		assert.NoError(t, err)
	})

	t.Run("empty priority is accepted", func(t *testing.T) {
		err := v.Validate(&samplePayload{Material: "Metal"})
		assert.NoError(t, err)
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := v.Validate(&samplePayload{Material: "Madeira", Priority: "Urgente", Lat: 120})
		require.Error(t, err)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, http.StatusBadRequest, verr.HTTPCode())
		assert.Equal(t, "VALIDATION_FAILED", verr.ErrorCode())

		fields := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, f.Field)
		}
		assert.ElementsMatch(t, []string{"material", "priority", "latitude"}, fields)
	})

	t.Run("missing material", func(t *testing.T) {
		err := v.Validate(&samplePayload{})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "required", verr.Fields[0].Rule)
	})
}
