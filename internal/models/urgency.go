package models

type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencySoon
	UrgencyUrgent
)

const (
	UrgentBelowDays = 3
	SoonBelowDays   = 7
)

func UrgencyFor(daysLeft int, hasDeadline bool) Urgency {
	switch {
	case !hasDeadline:
		return UrgencyNormal
	case daysLeft < UrgentBelowDays:
		return UrgencyUrgent
	case daysLeft < SoonBelowDays:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}

func (u Urgency) String() string {
	switch u {
	case UrgencyUrgent:
		return "urgent"
	case UrgencySoon:
		return "soon"
	default:
		return "normal"
	}
}
