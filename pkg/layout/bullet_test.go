package layout

import (
	"testing"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/geom"
)

func TestBulletStatus(t *testing.T) {
	tests := []struct {
		name          string
		value, target float64
		want          string
	}{
		{"met", 0.9, 0.8, geom.TokenPositive},
		{"exactly met", 0.8, 0.8, geom.TokenPositive},
		{"close", 0.7, 0.8, geom.TokenWarning},
		{"missed", 0.5, 0.8, geom.TokenNegative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BulletStatus(tt.value, tt.target); got != tt.want {
				t.Errorf("BulletStatus(%v, %v) = %q, want %q", tt.value, tt.target, got, tt.want)
			}
		})
	}
}

func TestBulletIndicator(t *testing.T) {
	b := BulletIndicator(chart.Bullet{Title: "Revenue", Value: 75, Target: 80, Maximum: 100}, chart.Size{Width: 200, Height: 60})

	if b.ValueRatio != 0.75 || b.TargetRatio != 0.8 {
		t.Errorf("ratios = %v / %v", b.ValueRatio, b.TargetRatio)
	}
	if b.Status != geom.TokenWarning {
		t.Errorf("status = %q, want warning", b.Status)
	}
	if b.Bar.W != 150 || b.Bar.Paint.Fill != geom.TokenWarning {
		t.Errorf("bar = %+v", b.Bar)
	}
	if b.Target.X1 != 160 || b.Target.X2 != 160 {
		t.Errorf("target marker at %v, want 160", b.Target.X1)
	}
	if len(b.Zones) != 3 || !near(b.Zones[0].W, 120) || !near(b.Zones[2].Right(), 200) {
		t.Errorf("zones = %+v", b.Zones)
	}
	if b.Percent.Content != "75%" {
		t.Errorf("percent label = %q", b.Percent.Content)
	}
}

func TestBulletIndicatorClamps(t *testing.T) {
	over := BulletIndicator(chart.Bullet{Value: 150, Target: 120, Maximum: 100}, chart.Size{Width: 100, Height: 30})
	if over.Bar.W != 100 || over.Target.X1 != 100 {
		t.Errorf("overflow not clamped: bar %v target %v", over.Bar.W, over.Target.X1)
	}

	zero := BulletIndicator(chart.Bullet{Value: 5, Target: 5}, chart.Size{Width: 100, Height: 30})
	if zero.ValueRatio != 0 || zero.TargetRatio != 0 || zero.Bar.W != 0 {
		t.Errorf("non-positive maximum should give zero ratios, got %+v", zero)
	}
}
