package yard

import "time"

// Thresholds holds the configurable cut-offs for derived urgency flags.
type Thresholds struct {
	StagingWarning    time.Duration
	StagingCritical   time.Duration
	UnloadingOvertime time.Duration
}

// DefaultThresholds returns the stock cut-offs: staging turns warning at 2h,
// critical at 4h; unloading is overtime past 2h.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StagingWarning:    2 * time.Hour,
		StagingCritical:   4 * time.Hour,
		UnloadingOvertime: 2 * time.Hour,
	}
}

// Urgency classifies how long a vehicle has been waiting in staging.
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyWarning  Urgency = "warning"
	UrgencyCritical Urgency = "critical"
)

// WaitTime is the span from arrival to unloading start. The second return is
// false when either endpoint is missing or the clock ran backwards.
func WaitTime(v *Vehicle) (time.Duration, bool) {
	if v.Timestamps.UnloadingStart == nil {
		return 0, false
	}
	return spanMillis(v.Timestamps.Arrival, *v.Timestamps.UnloadingStart)
}

// UnloadDuration is the span from unloading start to unloading end, undefined
// while either endpoint is missing.
func UnloadDuration(v *Vehicle) (time.Duration, bool) {
	if v.Timestamps.UnloadingStart == nil || v.Timestamps.UnloadingEnd == nil {
		return 0, false
	}
	return spanMillis(*v.Timestamps.UnloadingStart, *v.Timestamps.UnloadingEnd)
}

// StagingAge is how long the vehicle has sat in staging; defined only while
// the vehicle is still Staging.
func StagingAge(v *Vehicle, now time.Time) (time.Duration, bool) {
	if v.Status != StatusStaging {
		return 0, false
	}
	return spanMillis(v.Timestamps.Arrival, now.UnixMilli())
}

// StagingUrgency classifies the staging age against the configured
// thresholds. Vehicles past staging are always normal.
func StagingUrgency(v *Vehicle, now time.Time, th Thresholds) Urgency {
	age, ok := StagingAge(v, now)
	if !ok {
		return UrgencyNormal
	}
	switch {
	case age >= th.StagingCritical:
		return UrgencyCritical
	case age >= th.StagingWarning:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}

// UnloadingOvertime reports whether an Unloading vehicle has been at its dock
// longer than the configured threshold.
func UnloadingOvertime(v *Vehicle, now time.Time, th Thresholds) bool {
	if v.Status != StatusUnloading || v.Timestamps.UnloadingStart == nil {
		return false
	}
	elapsed, ok := spanMillis(*v.Timestamps.UnloadingStart, now.UnixMilli())
	return ok && elapsed > th.UnloadingOvertime
}

// Minutes floors a duration to whole minutes for display.
func Minutes(d time.Duration) int64 {
	return int64(d / time.Minute)
}

// KPISummary aggregates the yard's key figures over one snapshot. Average
// fields are nil when no vehicle has both endpoints ("not available").
type KPISummary struct {
	StatusCounts     map[Status]int `json:"statusCounts"`
	AvgWaitMinutes   *int64         `json:"avgWaitMinutes"`
	AvgUnloadMinutes *int64         `json:"avgUnloadMinutes"`
}

// Summarize computes the KPI summary for a vehicle set. Pure; never divides
// by zero.
func Summarize(vehicles []*Vehicle) KPISummary {
	sum := KPISummary{StatusCounts: make(map[Status]int, len(canonicalOrder))}
	for _, st := range canonicalOrder {
		sum.StatusCounts[st] = 0
	}

	var waitTotal, unloadTotal time.Duration
	var waitN, unloadN int64
	for _, v := range vehicles {
		sum.StatusCounts[v.Status]++
		if d, ok := WaitTime(v); ok {
			waitTotal += d
			waitN++
		}
		if d, ok := UnloadDuration(v); ok {
			unloadTotal += d
			unloadN++
		}
	}
	if waitN > 0 {
		m := Minutes(waitTotal / time.Duration(waitN))
		sum.AvgWaitMinutes = &m
	}
	if unloadN > 0 {
		m := Minutes(unloadTotal / time.Duration(unloadN))
		sum.AvgUnloadMinutes = &m
	}
	return sum
}

// spanMillis converts end-start to a duration. A negative span (clock
// anomaly) is reported as unavailable rather than negative.
func spanMillis(start, end int64) (time.Duration, bool) {
	if end < start {
		return 0, false
	}
	return time.Duration(end-start) * time.Millisecond, true
}
