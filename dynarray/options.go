package dynarray

import "github.com/maAPPsDEV/DynamicArray/gas"

// Option is a generic option type. Implementations type assert to their
// target record and ignore options meant for other targets.
type Option func(any)

// WithSchedule replaces the default gas schedule used to budget Shrink.
func WithSchedule(s gas.Schedule) Option {
	return func(opts any) {
		if a, ok := opts.(*Array); ok {
			a.schedule = s
		}
	}
}
