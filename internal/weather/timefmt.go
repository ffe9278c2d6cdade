package weather

import "time"

const (
	metricTimeLayout   = "15:04 02/01/06"
	imperialTimeLayout = "03:04pm 01/02/06"
)

// FormatUnixTime renders an epoch timestamp, interpreted as UTC, for display.
// Metric gives "21:12 31/12/24", imperial gives "09:12pm 12/31/24".
func FormatUnixTime(unix int64, units Units) string {
	t := time.Unix(unix, 0).UTC()
	if units.Imperial() {
		return t.Format(imperialTimeLayout)
	}
	return t.Format(metricTimeLayout)
}
