package vault

import (
	"encoding/json"
	"time"

	"github.com/iov-one/vault/errors"
)

// UnixTime is a point in time with second precision, stored as seconds
// since the epoch. Account expirations and block times use it.
type UnixTime int64

func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// Time returns the moment in UTC.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add drops anything below a second from d.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().String()
}

// UnmarshalJSON accepts seconds as a number as well as an RFC 3339
// string, which reads better in a genesis file.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var secs int64
	if json.Unmarshal(raw, &secs) == nil {
		*t = UnixTime(secs)
		return nil
	}
	var ts time.Time
	if json.Unmarshal(raw, &ts) == nil {
		*t = AsUnixTime(ts)
		return nil
	}
	return errors.Wrap(errors.ErrInput, "invalid time format")
}
