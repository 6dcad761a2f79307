package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Tehran")
	if err != nil {
		panic(err)
	}
}

// force timezone to be Tehran because the marketplace publishes
// dates in Iran local time and resolving them in whatever zone the
// host happens to run in shifts day boundaries when manipulating
// dates based on <time.Time>.Year()/Month()/Day()/Hour()/...
func Now() time.Time {
	return time.Now().In(Location)
}
