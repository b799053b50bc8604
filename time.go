package snp

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Time is the import timestamp of a SNP database. It is stored as unix
// seconds, but rows written by other tools may hold SQLite text timestamps
// instead, and the two drivers hand those back as different types.
type Time time.Time

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) Value() (driver.Value, error) {
	return time.Time(t).Unix(), nil
}

func (t *Time) Scan(v interface{}) error {
	switch which := v.(type) {
	case int64:
		*t = Time(time.Unix(which, 0))
		return nil
	case time.Time:
		*t = Time(which)
		return nil
	case string:
		return t.parse(which)
	case []byte:
		return t.parse(string(which))
	}

	return fmt.Errorf("No appropriate type could be found to decode %v", v)
}

func (t *Time) parse(s string) error {
	vt, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return err
	}
	*t = Time(vt)
	return nil
}
