package weather

import (
	"regexp"
	"testing"
)

func TestFormatUnixTime(t *testing.T) {
	tests := []struct {
		name  string
		unix  int64
		units Units
		want  string
	}{
		{name: "epoch metric", unix: 0, units: UnitsMetric, want: "00:00 01/01/70"},
		{name: "epoch imperial", unix: 0, units: UnitsImperial, want: "12:00am 01/01/70"},
		{name: "evening metric", unix: 1700000000, units: UnitsMetric, want: "22:13 14/11/23"},
		{name: "evening imperial", unix: 1700000000, units: UnitsImperial, want: "10:13pm 11/14/23"},
		{name: "noon imperial", unix: 43200, units: UnitsImperial, want: "12:00pm 01/01/70"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatUnixTime(tt.unix, tt.units); got != tt.want {
				t.Errorf("FormatUnixTime(%d, %s) = %q, want %q", tt.unix, tt.units, got, tt.want)
			}
		})
	}
}

func TestFormatUnixTime_Shape(t *testing.T) {
	metric := regexp.MustCompile(`^\d{2}:\d{2} \d{2}/\d{2}/\d{2}$`)
	imperial := regexp.MustCompile(`^\d{2}:\d{2}(am|pm) \d{2}/\d{2}/\d{2}$`)

	for _, ts := range []int64{0, 1, 86399, 951782400, 1700000000, 4102444800} {
		if got := FormatUnixTime(ts, UnitsMetric); !metric.MatchString(got) {
			t.Errorf("metric %d formatted as %q", ts, got)
		}
		if got := FormatUnixTime(ts, UnitsImperial); !imperial.MatchString(got) {
			t.Errorf("imperial %d formatted as %q", ts, got)
		}
	}
}
