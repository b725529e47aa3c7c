package otel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"listingapi/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("OTEL_TRACES_SAMPLER", "")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")

	s := SettingsFromEnv()

	assert.True(t, s.Disabled)
	assert.Equal(t, "listingapi", s.ServiceName)
	assert.Equal(t, "grpc", s.Protocol)
	assert.Equal(t, "collector:4317", s.Endpoint)
	assert.Equal(t, "parentbased_traceidratio", s.Sampler)
	assert.Equal(t, "0.5", s.SamplerArg)
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		name, arg string
		want      string
	}{
		{"always_on", "", "AlwaysOnSampler"},
		{"always_off", "", "AlwaysOffSampler"},
		{"traceidratio", "0.25", "TraceIDRatioBased{0.25}"},
		{"traceidratio", "nope", "TraceIDRatioBased{1}"},
		{"parentbased_traceidratio", "0.5", "root:TraceIDRatioBased{0.5}"},
		{"parentbased_always_off", "", "root:AlwaysOffSampler"},
		{"unknown", "", "root:AlwaysOnSampler"},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.arg, func(t *testing.T) {
			assert.Contains(t, NewSampler(tt.name, tt.arg).Description(), tt.want)
		})
	}
}

func TestInit_Disabled(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), Settings{Disabled: true}, logging.New(&buf, time.UTC))

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"tracing_enabled":false`)
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), Settings{ServiceName: "x", Protocol: "carrier-pigeon"}, logging.New(&buf, time.UTC))

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "tracing_init_failed")
}
