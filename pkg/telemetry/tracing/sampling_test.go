package tracing

import (
	"strings"
	"testing"
)

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		ratio    float64
		wantDesc string
		wantErr  bool
	}{
		{"always", SamplerAlways, 0, "AlwaysOnSampler", false},
		{"never", SamplerNever, 0, "AlwaysOffSampler", false},
		{"ratio 50%", SamplerRatio, 0.5, "TraceIDRatioBased{0.5}", false},
		{"empty defaults to ratio", "", 0.1, "TraceIDRatioBased{0.1}", false},
		{"ratio negative", SamplerRatio, -0.1, "", true},
		{"ratio above one", SamplerRatio, 1.5, "", true},
		{"unknown strategy", "sometimes", 0.5, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler, err := createSampler(tt.strategy, tt.ratio)
			if (err != nil) != tt.wantErr {
				t.Fatalf("createSampler() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			desc := sampler.Description()
			if !strings.HasPrefix(desc, "ParentBased{") {
				t.Errorf("expected ParentBased sampler, got %s", desc)
			}
			if !strings.Contains(desc, tt.wantDesc) {
				t.Errorf("expected %s in %s", tt.wantDesc, desc)
			}
		})
	}
}
