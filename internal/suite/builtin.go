package suite

// Builtin returns the built-in suites in execution order.
func Builtin() []Suite {
	return []Suite{
		Homepage(),
		Navigation(),
		Performance(),
		InstanceSpecific(),
	}
}
