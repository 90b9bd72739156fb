package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}

	t.Run("Deterministic", func(t *testing.T) {
		require.Equal(t, ID("Potential time [s]"), ID("Potential time [s]"))
	})

	t.Run("DistinctNames", func(t *testing.T) {
		require.NotEqual(t, ID("M44 [A]"), ID("M28 [A]"))
	})
}

func TestChecksum(t *testing.T) {
	t.Run("MatchesStringHash", func(t *testing.T) {
		require.Equal(t, ID("test"), Checksum([]byte("test")))
	})

	t.Run("SensitiveToPayload", func(t *testing.T) {
		payload := []byte{0x01, 0x02, 0x03, 0x04}
		sum := Checksum(payload)
		payload[0] = 0xff
		require.NotEqual(t, sum, Checksum(payload))
	})
}

func BenchmarkID(b *testing.B) {
	for b.Loop() {
		ID("Faraday cage temperature [C]")
	}
}
