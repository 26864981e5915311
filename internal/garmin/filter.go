package garmin

import (
	"fmt"
	"net/url"
	"time"
)

// Criteria selects activities by type, distance and date. The zero value
// matches everything; each unset field is no constraint. All bounds are
// inclusive.
type Criteria struct {
	ActivityType string  // rowing, cycling or running
	MinKm        float64 // 0 = no lower bound
	MaxKm        float64 // 0 = no upper bound
	From         time.Time
	To           time.Time
}

// SupportedTypes are the activity types the report tool understands.
var SupportedTypes = []string{"rowing", "cycling", "running"}

// Validate rejects unknown activity types and inverted ranges.
func (c Criteria) Validate() error {
	if c.ActivityType != "" {
		ok := false
		for _, t := range SupportedTypes {
			if c.ActivityType == t {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("unknown activity type %q", c.ActivityType)
		}
	}
	if c.MinKm > 0 && c.MaxKm > 0 && c.MinKm > c.MaxKm {
		return fmt.Errorf("min distance %.1f km exceeds max %.1f km", c.MinKm, c.MaxKm)
	}
	if !c.From.IsZero() && !c.To.IsZero() && c.From.After(c.To) {
		return fmt.Errorf("start date %s after end date %s",
			c.From.Format("2006-01-02"), c.To.Format("2006-01-02"))
	}
	return nil
}

// Match reports whether an activity record satisfies every set criterion.
func (c Criteria) Match(a Activity) bool {
	if c.ActivityType != "" && !typeMatches(c.ActivityType, a.ActivityType) {
		return false
	}
	km := a.Distance / 1000
	if c.MinKm > 0 && km < c.MinKm {
		return false
	}
	if c.MaxKm > 0 && km > c.MaxKm {
		return false
	}
	if !c.From.IsZero() || !c.To.IsZero() {
		start := a.StartTime()
		if start.IsZero() {
			return false
		}
		if !c.From.IsZero() && start.Before(c.From) {
			return false
		}
		// The end bound is a date: anything on that day matches.
		if !c.To.IsZero() && !start.Before(c.To.AddDate(0, 0, 1)) {
			return false
		}
	}
	return true
}

// Garmin files rowing under the "other" type with a rowing subtype.
func typeMatches(want string, at ActivityType) bool {
	if at.TypeKey == want {
		return true
	}
	return want == "rowing" && at.TypeKey == "other" && at.SubTypeKey == "rowing"
}

// Filter returns the activities matching the criteria, preserving order.
func (c Criteria) Filter(activities []Activity) []Activity {
	var out []Activity
	for _, a := range activities {
		if c.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// queryParams maps the criteria onto the listing endpoint's parameters
// so the server pre-filters where it can. Match is still applied locally
// to the response.
func (c Criteria) queryParams() url.Values {
	params := url.Values{}
	switch c.ActivityType {
	case "":
	case "rowing":
		params.Set("activityType", "other")
		params.Set("activitySubType", "rowing")
	default:
		params.Set("activityType", c.ActivityType)
	}
	if c.MinKm > 0 {
		params.Set("minDistance", fmt.Sprint(c.MinKm))
	}
	if c.MaxKm > 0 {
		params.Set("maxDistance", fmt.Sprint(c.MaxKm))
	}
	if !c.From.IsZero() {
		params.Set("startDate", c.From.Format("2006-01-02"))
	}
	if !c.To.IsZero() {
		params.Set("endDate", c.To.Format("2006-01-02"))
	}
	return params
}
