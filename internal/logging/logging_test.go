package logging

import (
	"bytes"
	"testing"

	"github.com/pion/logging"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	factory := &logging.DefaultLoggerFactory{
		Writer:          &buf,
		DefaultLogLevel: logging.LogLevelDebug,
	}

	NewLogger("simd/test", factory).Debugf("value %d", 42)
	assert.Contains(t, buf.String(), "simd/test")
	assert.Contains(t, buf.String(), "value 42")

	assert.NotNil(t, NewLogger("simd/test", nil))
}
