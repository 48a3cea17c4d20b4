package calculation

import "time"

// nowFunc is the clock behind Now; tests pin it to a fixed instant.
var nowFunc = time.Now

// SetNowFunc replaces the clock. Tests only.
func SetNowFunc(f func() time.Time) { nowFunc = f }

// Now is the reference time for dashboard windows and the bonus year.
func Now() time.Time { return nowFunc() }
