package vault

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/vault/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestUnixTime(t *testing.T) {
	Convey("Given a genesis expiration", t, func() {
		decode := func(raw string) (UnixTime, error) {
			var got UnixTime
			err := json.Unmarshal([]byte(raw), &got)
			return got, err
		}

		Convey("seconds and RFC 3339 decode to the same moment", func() {
			fromNumber, err := decode("1893456000")
			So(err, ShouldBeNil)
			fromString, err := decode(`"2030-01-01T01:00:00+01:00"`)
			So(err, ShouldBeNil)
			So(fromString, ShouldEqual, fromNumber)
			So(fromNumber.Time().Year(), ShouldEqual, 2030)
		})

		Convey("the epoch is the zero time", func() {
			got, err := decode(`"1970-01-01T00:00:00Z"`)
			So(err, ShouldBeNil)
			So(got.IsZero(), ShouldBeTrue)
		})

		Convey("fractions of a second are dropped", func() {
			got, err := decode(`"2030-01-01T00:00:00.75Z"`)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, UnixTime(1893456000))
		})

		Convey("anything else is rejected", func() {
			_, err := decode(`"next tuesday"`)
			So(errors.ErrInput.Is(err), ShouldBeTrue)
			_, err = decode(`true`)
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})
	})

	Convey("Add keeps whole seconds", t, func() {
		start := UnixTime(1000)
		So(start.Add(90*time.Second), ShouldEqual, UnixTime(1090))
		So(start.Add(1500*time.Millisecond), ShouldEqual, UnixTime(1001))
		So(start.Add(-time.Minute), ShouldEqual, UnixTime(940))
	})

	Convey("Negative times are invalid", t, func() {
		So(errors.ErrState.Is(UnixTime(-1).Validate()), ShouldBeTrue)
		So(UnixTime(0).Validate(), ShouldBeNil)
	})
}
