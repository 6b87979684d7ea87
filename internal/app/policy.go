package app

type SaturationAction int

const (
	Ignore SaturationAction = iota
	EvictLeastRecent
)

func (a SaturationAction) String() string {
	switch a {
	case EvictLeastRecent:
		return "evict_least_recent"
	default:
		return "ignore"
	}
}

// Policy decides what happens when every multiview socket is taken.
type Policy interface {
	OnSaturated(force bool) SaturationAction
}

// SimplePolicy evicts only for forced (dominant speaker) requests.
type SimplePolicy struct{}

func (SimplePolicy) OnSaturated(force bool) SaturationAction {
	if force {
		return EvictLeastRecent
	}
	return Ignore
}
