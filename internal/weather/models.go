package weather

import (
	"time"
)

// DailyDays is the number of daily forecast slots the One Call feed provides.
const DailyDays = 8

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Units selects the measurement system requested from the feed and used for display.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Imperial reports whether values should be shown in imperial units.
// Any non-empty value other than metric is treated as imperial.
func (u Units) Imperial() bool {
	return u != UnitsMetric && u != ""
}

// Trend summarizes the direction of barometric pressure between two hourly slots.
type Trend string

const (
	TrendRising  Trend = "+"
	TrendFalling Trend = "-"
	TrendSteady  Trend = "0"
	// TrendUnknown is kept until a decode has enough hourly entries to compute a trend.
	TrendUnknown Trend = "="
)

// Location represents a logical place for which we track weather.
// Lat/Lon are what the feed is queried with; City/Country are only used to geocode them.
type Location struct {
	City    string  `json:"city,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentConditions is the single "now" record.
type CurrentConditions struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`

	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Pressure    float64 `json:"pressure"`
	Humidity    float64 `json:"humidity"`
	DewPoint    float64 `json:"dewPoint"`
	UVI         float64 `json:"uvi"`
	Cloudcover  int     `json:"cloudcover"`
	Visibility  int     `json:"visibility"`
	Windspeed   float64 `json:"windspeed"`
	Winddir     float64 `json:"winddir"`

	Rainfall float64 `json:"rainfall"`
	Snowfall float64 `json:"snowfall"`

	Main0       string    `json:"main"`
	Forecast0   string    `json:"forecast0"`
	Forecast1   string    `json:"forecast1,omitempty"`
	Forecast2   string    `json:"forecast2,omitempty"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	Condition   Condition `json:"condition"`

	Sunrise  int64 `json:"sunrise"`
	Sunset   int64 `json:"sunset"`
	Timezone int64 `json:"timezoneOffset"`

	Trend Trend `json:"trend"`
}

// HourlyForecast is one hour-ahead slot.
type HourlyForecast struct {
	Dt          int64   `json:"dt"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Low         float64 `json:"low"`
	High        float64 `json:"high"`
	Pressure    float64 `json:"pressure"`
	Humidity    float64 `json:"humidity"`
	DewPoint    float64 `json:"dewPoint"`
	Cloudcover  int     `json:"cloudcover"`
	Windspeed   float64 `json:"windspeed"`
	Winddir     float64 `json:"winddir"`
	Rainfall    float64 `json:"rainfall"`
	Snowfall    float64 `json:"snowfall"`
	PoP         float64 `json:"pop"`

	Forecast0   string `json:"forecast0"`
	Forecast1   string `json:"forecast1,omitempty"`
	Forecast2   string `json:"forecast2,omitempty"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Period      string `json:"period,omitempty"`
}

// DailyForecast is one day-ahead slot.
type DailyForecast struct {
	Dt          int64   `json:"dt"`
	Temperature float64 `json:"temperature"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Humidity    float64 `json:"humidity"`
	UVI         float64 `json:"uvi"`
	PoP         float64 `json:"pop"`
	Rainfall    float64 `json:"rainfall"`
	Snowfall    float64 `json:"snowfall"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

// Snapshot is the full record set produced by decode cycles and read by the renderer.
// Hourly has a fixed length (the reading horizon) chosen at construction time.
type Snapshot struct {
	CycleID   string                   `json:"cycleId,omitempty"`
	UpdatedAt time.Time                `json:"updatedAt"`
	Current   CurrentConditions        `json:"current"`
	Hourly    []HourlyForecast         `json:"hourly"`
	Daily     [DailyDays]DailyForecast `json:"daily"`

	// pressureImperial is set once Current.Pressure has been converted to inHg,
	// so a later decode step in the same cycle does not convert it again.
	pressureImperial bool
}

// NewSnapshot returns a zeroed snapshot with maxReadings hourly slots.
func NewSnapshot(maxReadings int) Snapshot {
	if maxReadings < 0 {
		maxReadings = 0
	}
	return Snapshot{
		Current: CurrentConditions{Trend: TrendUnknown, Condition: ConditionUnknown},
		Hourly:  make([]HourlyForecast, maxReadings),
	}
}

// Clone returns a deep copy that shares no memory with s.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Hourly = make([]HourlyForecast, len(s.Hourly))
	copy(out.Hourly, s.Hourly)
	return out
}

// IsZero reports whether no decode cycle has ever been committed.
func (s Snapshot) IsZero() bool {
	return s.UpdatedAt.IsZero()
}
