package respond

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError_MasksDSNPassword(t *testing.T) {
	err := errors.New("failed to connect: postgres://app:s3cret@db:5432/spectrum")
	assert.Equal(t, "failed to connect: postgres://app:****@db:5432/spectrum", SanitizeError(err))
}
