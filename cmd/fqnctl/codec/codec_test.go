package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexRoundTrip(t *testing.T) {
	for _, path := range []string{"/", "/a", "/a/b/c", "/users/42/profile"} {
		t.Run(path, func(t *testing.T) {
			h, err := EncodeHex(path)
			require.NoError(t, err)
			got, err := DecodeHex(h)
			require.NoError(t, err)
			assert.Equal(t, path, got)
		})
	}
}

func TestEncodeHex(t *testing.T) {
	h, err := EncodeHex("/a/b")
	require.NoError(t, err)
	// uint16 count 2, then fixstr "a" and fixstr "b"
	assert.Equal(t, "cd0002a161a162", h)
}

func TestDecodeHexErrors(t *testing.T) {
	_, err := DecodeHex("zz")
	assert.ErrorContains(t, err, "decoding hex")

	_, err = DecodeHex("cd0002a161")
	assert.ErrorContains(t, err, "decoding path")
}
