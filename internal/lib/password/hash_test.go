package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHash_And_CompareHash(t *testing.T) {
	plain := "Secr3t!pass"

	hash, err := GetHash(plain)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, plain, hash)

	assert.NoError(t, CompareHash(hash, plain))
	assert.Error(t, CompareHash(hash, "anything_else"))
	assert.Error(t, CompareHash(hash, "secr3t!pass"))
}

func TestGetHash_DifferentSalts(t *testing.T) {
	first, err := GetHash("Secr3t!pass")
	require.NoError(t, err)
	second, err := GetHash("Secr3t!pass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, CompareHash(first, "Secr3t!pass"))
	assert.NoError(t, CompareHash(second, "Secr3t!pass"))
}

func TestIsStrong(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{
			name:     "valid password",
			password: "Secr3t!pass",
			want:     true,
		},
		{
			name:     "too short",
			password: "S3c!p",
			want:     false,
		},
		{
			name:     "no uppercase",
			password: "secr3t!pass",
			want:     false,
		},
		{
			name:     "no digit",
			password: "Secret!pass",
			want:     false,
		},
		{
			name:     "no symbol",
			password: "Secr3tpass",
			want:     false,
		},
		{
			name:     "symbol outside allowed set",
			password: "Secr3t~pass",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrong(tt.password))
		})
	}
}
