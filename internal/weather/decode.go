package weather

import (
	"errors"
	"fmt"
	"io"
	"math"

	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrMalformedDocument is returned when the feed response is not a complete JSON object.
	ErrMalformedDocument = errors.New("malformed weather document")
	// ErrUnknownMode is returned for a decode mode the decoder does not know.
	ErrUnknownMode = errors.New("unknown decode mode")
)

// Mode selects which records a document populates.
type Mode string

const (
	// ModeCurrent fills the current-conditions record only.
	ModeCurrent Mode = "current"
	// ModeForecast fills the hourly slots from 3h precipitation windows and computes the trend.
	ModeForecast Mode = "forecast"
	// ModeOneCall fills current, hourly and daily records from a single One Call document.
	ModeOneCall Mode = "onecall"
)

// TrendOrder chooses which pressure is subtracted from which when computing the trend.
type TrendOrder string

const (
	// TrendOrderDefault uses the order associated with the decode mode.
	TrendOrderDefault TrendOrder = ""
	TrendNearMinusFar TrendOrder = "near-far"
	TrendFarMinusNear TrendOrder = "far-near"
)

const (
	trendNearSlot = 0
	trendFarSlot  = 2
	// imperial precipitation conversion only touches the first hour ahead
	precipConvertSlot = 1
)

type modeLayout struct {
	current      bool
	hourly       bool
	daily        bool
	precipWindow string
	trend        TrendOrder
}

var modeLayouts = map[Mode]modeLayout{
	ModeCurrent:  {current: true},
	ModeForecast: {hourly: true, precipWindow: "3h", trend: TrendFarMinusNear},
	ModeOneCall:  {current: true, hourly: true, daily: true, precipWindow: "1h", trend: TrendNearMinusFar},
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := modeLayouts[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// Logger receives optional per-record diagnostics. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

// Decoder turns feed documents into Snapshot records.
type Decoder struct {
	Units      Units
	TrendOrder TrendOrder
	// Logger is optional; a nil Logger keeps decoding silent.
	Logger Logger
}

// NewDecoder creates a Decoder.
func NewDecoder(units Units, order TrendOrder, logger Logger) *Decoder {
	return &Decoder{
		Units:      units,
		TrendOrder: order,
		Logger:     logger,
	}
}

// Decode reads one JSON document from r and updates dst according to mode.
//
// dst is only modified when the whole document parses. Fields that are missing or have
// an unexpected type decode to their zero value. Hourly slots beyond what the feed
// returned keep their previous values; the slice is never resized.
func (d *Decoder) Decode(r io.Reader, mode Mode, dst *Snapshot) error {
	ml, ok := modeLayouts[mode]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	root, err := parseRoot(data)
	if err != nil {
		d.logf("ERROR: decode %s failed: %v", mode, err)
		return err
	}

	d.logf("DEBUG: decoding %s document (%d bytes)", mode, len(data))

	next := dst.Clone()

	if ml.current {
		trend := next.Current.Trend
		next.Current = d.readCurrent(root)
		next.Current.Trend = trend
		next.pressureImperial = false
	}

	fresh := 0
	if ml.hourly {
		fresh = d.readHourly(root.Get("hourly"), next.Hourly, ml.precipWindow)
		next.Current.Trend = d.trendFor(next.Hourly, fresh, ml.trend)
		d.logf("DEBUG: pressure trend %s from %d hourly entries", next.Current.Trend, fresh)
	}

	if ml.daily {
		d.readDaily(root.Get("daily"), &next.Daily)
	}

	if ml.hourly && d.Units.Imperial() {
		convertToImperial(&next, fresh)
	}

	*dst = next
	return nil
}

func parseRoot(data []byte) (jsoniter.Any, error) {
	iter := jsoniter.ParseBytes(jsoniter.ConfigDefault, data)
	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrMalformedDocument)
	}
	iter.Skip()
	if iter.Error != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, iter.Error)
	}
	return jsoniter.Get(data), nil
}

func (d *Decoder) readCurrent(root jsoniter.Any) CurrentConditions {
	cur := root.Get("current")
	wx := cur.Get("weather")

	c := CurrentConditions{
		Lon:         number(root.Get("lon")),
		Lat:         number(root.Get("lat")),
		Temperature: number(cur.Get("temp")),
		FeelsLike:   number(cur.Get("feels_like")),
		High:        number(root.Get("daily", 0, "temp", "max")),
		Low:         number(root.Get("daily", 0, "temp", "min")),
		Pressure:    number(cur.Get("pressure")),
		Humidity:    number(cur.Get("humidity")),
		DewPoint:    number(cur.Get("dew_point")),
		UVI:         number(cur.Get("uvi")),
		Cloudcover:  int(integer(cur.Get("clouds"))),
		Visibility:  int(integer(cur.Get("visibility"))),
		Windspeed:   number(cur.Get("wind_speed")),
		Winddir:     number(cur.Get("wind_deg")),
		Rainfall:    number(root.Get("hourly", 1, "rain", "1h")),
		Snowfall:    number(root.Get("hourly", 1, "snow", "1h")),
		Main0:       text(wx.Get(0, "main")),
		Forecast0:   text(wx.Get(0, "description")),
		Forecast1:   text(wx.Get(1, "description")),
		Forecast2:   text(wx.Get(2, "description")),
		Icon:        text(wx.Get(0, "icon")),
		Description: text(wx.Get(0, "description")),
		Sunrise:     integer(cur.Get("sunrise")),
		Sunset:      integer(cur.Get("sunset")),
		Timezone:    integer(root.Get("timezone_offset")),
	}
	c.Condition = conditionFromMain(c.Main0)

	d.logf("DEBUG: current temp=%.2f pres=%.1f humi=%.0f wind=%.1f@%.0f icon=%q desc=%q tz=%d",
		c.Temperature, c.Pressure, c.Humidity, c.Windspeed, c.Winddir, c.Icon, c.Description, c.Timezone)
	return c
}

// readHourly overwrites slots from the feed array and returns how many were written.
func (d *Decoder) readHourly(list jsoniter.Any, slots []HourlyForecast, window string) int {
	n := arrayLen(list)
	if n > len(slots) {
		n = len(slots)
	}

	for i := 0; i < n; i++ {
		e := list.Get(i)
		wx := e.Get("weather")
		slots[i] = HourlyForecast{
			Dt:          integer(e.Get("dt")),
			Temperature: number(e.Get("temp")),
			FeelsLike:   number(e.Get("feels_like")),
			Low:         number(e.Get("temp_min")),
			High:        number(e.Get("temp_max")),
			Pressure:    number(e.Get("pressure")),
			Humidity:    number(e.Get("humidity")),
			DewPoint:    number(e.Get("dew_point")),
			Cloudcover:  int(integer(e.Get("clouds"))),
			Windspeed:   number(e.Get("wind_speed")),
			Winddir:     number(e.Get("wind_deg")),
			Rainfall:    number(e.Get("rain", window)),
			Snowfall:    number(e.Get("snow", window)),
			PoP:         number(e.Get("pop")),
			Forecast0:   text(wx.Get(0, "main")),
			Forecast1:   text(wx.Get(1, "main")),
			Forecast2:   text(wx.Get(2, "main")),
			Icon:        text(wx.Get(0, "icon")),
			Description: text(wx.Get(0, "description")),
			Period:      text(e.Get("dt_txt")),
		}
		d.logf("DEBUG: period-%d %s temp=%.2f pres=%.1f rain=%.2f snow=%.2f icon=%q",
			i, FormatUnixTime(slots[i].Dt, d.Units), slots[i].Temperature, slots[i].Pressure,
			slots[i].Rainfall, slots[i].Snowfall, slots[i].Icon)
	}
	return n
}

func (d *Decoder) readDaily(list jsoniter.Any, days *[DailyDays]DailyForecast) {
	n := arrayLen(list)
	if n > DailyDays {
		n = DailyDays
	}

	for i := 0; i < n; i++ {
		e := list.Get(i)
		days[i] = DailyForecast{
			Dt:          integer(e.Get("dt")),
			Temperature: number(e.Get("temp", "day")),
			High:        number(e.Get("temp", "max")),
			Low:         number(e.Get("temp", "min")),
			Humidity:    number(e.Get("humidity")),
			UVI:         number(e.Get("uvi")),
			PoP:         number(e.Get("pop")),
			Rainfall:    number(e.Get("rain")),
			Snowfall:    number(e.Get("snow")),
			Icon:        text(e.Get("weather", 0, "icon")),
			Description: text(e.Get("summary")),
		}
		d.logf("DEBUG: day-%d %s high=%.1f low=%.1f pop=%.0f%% summary=%q",
			i, FormatUnixTime(days[i].Dt, d.Units), days[i].High, days[i].Low, days[i].PoP*100, days[i].Description)
	}
}

func (d *Decoder) trendFor(hourly []HourlyForecast, fresh int, modeOrder TrendOrder) Trend {
	if fresh <= trendFarSlot {
		return TrendUnknown
	}
	order := d.TrendOrder
	if order == TrendOrderDefault {
		order = modeOrder
	}
	return PressureTrend(hourly[trendNearSlot].Pressure, hourly[trendFarSlot].Pressure, order)
}

// PressureTrend compares two pressures after truncating their difference to 0.1,
// so sub-0.1 noise reads as steady.
func PressureTrend(near, far float64, order TrendOrder) Trend {
	diff := near - far
	if order == TrendFarMinusNear {
		diff = far - near
	}
	diff = math.Trunc(diff*10) / 10

	switch {
	case diff > 0:
		return TrendRising
	case diff < 0:
		return TrendFalling
	default:
		return TrendSteady
	}
}

func convertToImperial(s *Snapshot, freshHourly int) {
	if !s.pressureImperial {
		s.Current.Pressure = HPaToInHg(s.Current.Pressure)
		s.pressureImperial = true
	}
	if freshHourly > precipConvertSlot {
		h := &s.Hourly[precipConvertSlot]
		h.Rainfall = MMToInches(h.Rainfall)
		h.Snowfall = MMToInches(h.Snowfall)
	}
}

func (d *Decoder) logf(format string, v ...any) {
	if d.Logger != nil {
		d.Logger.Printf(format, v...)
	}
}

func arrayLen(a jsoniter.Any) int {
	if a.ValueType() != jsoniter.ArrayValue {
		return 0
	}
	return a.Size()
}

func number(a jsoniter.Any) float64 {
	if a.ValueType() != jsoniter.NumberValue {
		return 0
	}
	return a.ToFloat64()
}

func integer(a jsoniter.Any) int64 {
	return int64(number(a))
}

func text(a jsoniter.Any) string {
	if a.ValueType() != jsoniter.StringValue {
		return ""
	}
	return a.ToString()
}
