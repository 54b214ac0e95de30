package oracle

// The oracle returns whatever numbers it likes; every field is
// clamped to an explicit range with a default for missing values.
// Wire structs use pointers so "absent" and "zero" stay distinct.

func clampFloat(p *float64, min, max, def float64) float64 {
	if p == nil {
		return def
	}
	v := *p
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(p *int, min, max, def int) int {
	if p == nil {
		return def
	}
	v := *p
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// pickString returns def unless the value is one of allowed.
func pickString(p *string, allowed []string, def string) string {
	if p == nil {
		return def
	}
	for _, a := range allowed {
		if *p == a {
			return a
		}
	}
	return def
}

func stringOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}
