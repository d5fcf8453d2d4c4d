package repository

import (
	"fmt"
	"time"
)

// dbTimeLayout is how start times are written: UTC, second precision.
const dbTimeLayout = "2006-01-02 15:04:05"

func formatDBTime(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

// dbTime scans a timestamp regardless of how the driver hands it over:
// MySQL with parseTime yields time.Time, SQLite TEXT columns yield a
// string.
type dbTime struct {
	T time.Time
}

var dbTimeLayouts = []string{
	dbTimeLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05",
}

func (d *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.T = v.UTC()
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		d.T = time.Time{}
		return nil
	}
	return fmt.Errorf("unsupported time value %T", src)
}

func (d *dbTime) parse(s string) error {
	for _, layout := range dbTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			d.T = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unparseable time %q", s)
}
