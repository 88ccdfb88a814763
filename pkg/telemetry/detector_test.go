package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"gitlab.com/davidxarnold/costglance/pkg/core"
)

type stubResolver struct {
	set   core.AttributeSet
	err   error
	calls int
}

func (s *stubResolver) Resolve(_ context.Context, _ string) (core.AttributeSet, error) {
	s.calls++
	return s.set, s.err
}

func TestDetector_AttachesResolvedAttributes(t *testing.T) {
	resolver := &stubResolver{
		set: core.AttributeSet{
			core.KeyInstanceID:    "i-abc123",
			core.KeyInstanceType:  "t3.micro",
			core.KeyRegion:        "us-east-1",
			core.KeyOSType:        core.OSTypeLinux,
			core.KeyCloudPlatform: core.PlatformAWSEC2,
			core.KeyLicenseModel:  core.LicenseModelNone,
			core.KeyTenancy:       "default",
		},
	}

	res, err := NewDetector(resolver, "i-abc123").Detect(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, resolver.calls)

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range res.Attributes() {
		got[kv.Key] = kv.Value
	}

	assert.Equal(t, "i-abc123", got[attribute.Key(core.KeyInstanceID)].AsString())
	assert.Equal(t, "aws_ec2", got[attribute.Key(core.KeyCloudPlatform)].AsString())
	assert.Equal(t, "linux", got[attribute.Key(core.KeyOSType)].AsString())
	assert.NotContains(t, got, attribute.Key(core.KeyFleetID))
}

func TestDetector_ResolutionFailureFailsDetection(t *testing.T) {
	resolver := &stubResolver{err: errors.New("throttled")}

	res, err := NewDetector(resolver, "").Detect(context.Background())
	require.Error(t, err)
	assert.Nil(t, res)
}

func TestAttributes_ConvertsAndSorts(t *testing.T) {
	set := core.AttributeSet{
		"z.string": "value",
		"a.bool":   true,
		"m.int":    42,
	}

	attrs := Attributes(set)
	require.Len(t, attrs, 3)

	assert.Equal(t, attribute.Key("a.bool"), attrs[0].Key)
	assert.True(t, attrs[0].Value.AsBool())
	assert.Equal(t, attribute.Key("m.int"), attrs[1].Key)
	assert.Equal(t, int64(42), attrs[1].Value.AsInt64())
	assert.Equal(t, attribute.Key("z.string"), attrs[2].Key)
	assert.Equal(t, "value", attrs[2].Value.AsString())
}

func TestServiceName_Precedence(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "from-env")
	assert.Equal(t, "from-flag", ServiceName("from-flag"))
	assert.Equal(t, "from-env", ServiceName(""))

	t.Setenv("OTEL_SERVICE_NAME", "")
	assert.Equal(t, defaultServiceName, ServiceName(""))
}
