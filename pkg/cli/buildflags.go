package cli

// buildFlagOrder is the fixed reporting order of flags that force
// building from source. Downstream messages depend on this order being
// stable; it is not a priority order.
var buildFlagOrder = []string{"HEAD", "universal", "build-bottle", "build-from-source"}

// BuildFlags returns the spellings of the requested flags that force a
// build from source, in fixed reporting order.
func (a *Args) BuildFlags() []string {
	var out []string
	for _, long := range buildFlagOrder {
		if a.Flag(long) {
			out = append(out, "--"+long)
		}
	}
	return out
}

// BuildFromSource reports whether any build-forcing flag was requested.
func (a *Args) BuildFromSource() bool {
	return len(a.BuildFlags()) > 0
}
