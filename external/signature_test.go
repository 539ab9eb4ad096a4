package external

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSign_KnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		body     []byte
		secret   string
		expected string
	}{
		{
			name:     "empty object body",
			body:     []byte("{}"),
			secret:   "secret",
			expected: "d6f1126a735b5a754f6e58434f170bdefdffada2c17f67d9bbd86d97669b94f80a92978665bf7ea423832b3f4f3856e2901a7c028e16c81efbb43298a1c00772",
		},
		{
			name:     "bet payload",
			body:     []byte(`{"bet":3}`),
			secret:   "secret",
			expected: "6914581d741edcbfdb7da1b843dc0cd431014e660c6748f896d547e0c18cab4ca106a50af2fce963fc5c7adc738e86dee0374cbfe377ae09a2ed74d254f23fbe",
		},
		{
			name:     "win payload with different secret",
			body:     []byte(`{"bet_id":"abc"}`),
			secret:   "another-key",
			expected: "89f4f9aad6a6c658a4f43c5b78422cf5e5d4da0523411cc0504157bd1e608d0b9633584bdc7375ca3e50020f0fa35c9bc9dfcd4d5578963140e433ce3998fb8d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sign(tt.body, tt.secret))
		})
	}
}

func TestSign_EmptyBodySignsCanonicalObject(t *testing.T) {
	// An absent body is signed as "{}", matching what the upstream
	// verifies for body-less requests.
	assert.Equal(t, Sign([]byte("{}"), "secret"), Sign(nil, "secret"))
	assert.Equal(t, Sign([]byte("{}"), "secret"), Sign([]byte{}, "secret"))
}

func TestSign_Deterministic(t *testing.T) {
	body := []byte(`{"bet":5}`)
	first := Sign(body, "k1")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Sign(body, "k1"))
	}
	assert.NotEqual(t, first, Sign(body, "k2"))
	assert.NotEqual(t, first, Sign([]byte(`{"bet":4}`), "k1"))
}
