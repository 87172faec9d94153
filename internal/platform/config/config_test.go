package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagefund/stagefund_backend/internal/platform/config"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    config.TimeOfDay
		wantErr bool
	}{
		{"00:00", config.TimeOfDay{Hour: 0, Minute: 0}, false},
		{"09:00", config.TimeOfDay{Hour: 9, Minute: 0}, false},
		{"23:59", config.TimeOfDay{Hour: 23, Minute: 59}, false},
		{"24:00", config.TimeOfDay{}, true},
		{"09:60", config.TimeOfDay{}, true},
		{"0900", config.TimeOfDay{}, true},
		{"", config.TimeOfDay{}, true},
		{"ab:cd", config.TimeOfDay{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := config.ParseTimeOfDay(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDay_String(t *testing.T) {
	assert.Equal(t, "09:05", config.TimeOfDay{Hour: 9, Minute: 5}.String())
	assert.Equal(t, "00:00", config.TimeOfDay{}.String())
}
