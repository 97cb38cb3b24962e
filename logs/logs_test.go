package logs

import (
	"testing"

	"cattlecloud.net/go/scope"
	"github.com/shoenig/test/must"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGet_fallback(t *testing.T) {
	t.Parallel()

	ctx := scope.New()
	must.NotNil(t, Get(ctx))
}

func TestSetup_global(t *testing.T) {
	logger, err := Setup(Production)
	must.NoError(t, err)
	must.EqOp(t, logger, zap.L())
	must.EqOp(t, logger, Get(scope.New()))
}

func TestWith_fields(t *testing.T) {
	t.Parallel()

	core, recorded := observer.New(zap.DebugLevel)
	ctx := Into(scope.New(), zap.New(core))
	ctx = With(ctx, zap.String("request_id", "abc123"))

	Info(ctx, "hello")
	Warn(ctx, "careful")

	entries := recorded.All()
	must.SliceLen(t, 2, entries)
	must.Eq(t, "hello", entries[0].Message)
	must.Eq[any](t, "abc123", entries[0].ContextMap()["request_id"])
	must.Eq(t, zap.WarnLevel, entries[1].Level)
}
