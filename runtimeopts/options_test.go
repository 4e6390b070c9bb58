package runtimeopts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EnthuZiastic/casbin-ex2-sub003/log"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().validate())
}

func TestLoadStringOverlaysDefaults(t *testing.T) {
	opts, err := LoadString(`
cache_size = 500
logger = "logrus"
`)
	assert.NoError(t, err)
	assert.Equal(t, 500, opts.CacheSize)
	assert.Equal(t, LoggerLogrus, opts.Logger)
	assert.True(t, opts.AutoSave, "unset fields should keep their default")
}

func TestLoadStringRejectsNegativeCacheSize(t *testing.T) {
	_, err := LoadString(`cache_size = -1`)
	assert.Error(t, err)
}

func TestLoadStringRejectsUnknownLogger(t *testing.T) {
	_, err := LoadString(`logger = "nonexistent"`)
	assert.Error(t, err)
}

func TestNewLoggerDefault(t *testing.T) {
	opts := Default()
	l, err := opts.NewLogger(true)
	assert.NoError(t, err)
	assert.IsType(t, &log.DefaultLogger{}, l)
	assert.True(t, l.IsEnabled())
}

func TestNewLoggerNoneStaysDisabled(t *testing.T) {
	opts := Default()
	opts.Logger = LoggerNone
	l, err := opts.NewLogger(true)
	assert.NoError(t, err)
	assert.False(t, l.IsEnabled())
}
