package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRecorderUsesNoopProviderByDefault(t *testing.T) {
	rec, err := NewRecorder("casbin-test")
	assert.NoError(t, err)
	assert.NotNil(t, rec)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		rec.RecordEnforce(ctx, true, 0.001)
		rec.RecordEnforce(ctx, false, 0.002)
		rec.RecordCacheHit(ctx)
		rec.RecordCacheMiss(ctx)
		rec.RecordMutation(ctx, "p", "add")
	})
}
