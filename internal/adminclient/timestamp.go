package adminclient

import (
	"encoding/json"
	"time"
)

// Timestamp is epoch milliseconds UTC. The API has grown three wire shapes
// over time and all of them normalize to this.
type Timestamp int64

// TimeUnknown marks a record whose timestamp could not be interpreted.
const TimeUnknown Timestamp = -1

// Known reports whether the timestamp carries a real instant.
func (t Timestamp) Known() bool {
	return t >= 0
}

// Time converts to time.Time. Unknown timestamps return the zero time.
func (t Timestamp) Time() time.Time {
	if !t.Known() {
		return time.Time{}
	}
	return time.UnixMilli(int64(t)).UTC()
}

// String renders the timestamp for display. Unknown renders as "-".
func (t Timestamp) String() string {
	if !t.Known() {
		return "-"
	}
	return t.Time().Format("2006-01-02 15:04")
}

// NormalizeTimestamp interprets the timestamp shapes the API is known to emit:
// a numeric epoch (milliseconds, or seconds when small enough), an RFC 3339
// string, or a {"seconds": s, "nanoseconds": ns} object. Anything else maps
// to TimeUnknown rather than an error so one bad record cannot poison a list.
func NormalizeTimestamp(v interface{}) Timestamp {
	switch tv := v.(type) {
	case nil:
		return TimeUnknown
	case float64:
		return fromEpochNumber(tv)
	case int64:
		return fromEpochNumber(float64(tv))
	case int:
		return fromEpochNumber(float64(tv))
	case json.Number:
		f, err := tv.Float64()
		if err != nil {
			return TimeUnknown
		}
		return fromEpochNumber(f)
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
			if ts, err := time.Parse(layout, tv); err == nil {
				return Timestamp(ts.UnixMilli())
			}
		}
		return TimeUnknown
	case map[string]interface{}:
		secs, ok := numberField(tv, "seconds", "_seconds")
		if !ok {
			return TimeUnknown
		}
		nanos, _ := numberField(tv, "nanoseconds", "_nanoseconds")
		return Timestamp(int64(secs)*1000 + int64(nanos)/1e6)
	case time.Time:
		if tv.IsZero() {
			return TimeUnknown
		}
		return Timestamp(tv.UnixMilli())
	default:
		return TimeUnknown
	}
}

// fromEpochNumber decides between epoch seconds and epoch milliseconds.
// Values below ~Nov 2286 in milliseconds read as seconds.
func fromEpochNumber(f float64) Timestamp {
	if f < 0 {
		return TimeUnknown
	}
	if f < 1e12 {
		return Timestamp(int64(f * 1000))
	}
	return Timestamp(int64(f))
}

func numberField(m map[string]interface{}, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			switch n := v.(type) {
			case float64:
				return n, true
			case json.Number:
				if f, err := n.Float64(); err == nil {
					return f, true
				}
			}
		}
	}
	return 0, false
}
