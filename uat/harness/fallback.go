package harness

// Consumers that don't run under the scenario lifecycle must tolerate
// a context whose fields were never populated. Resolution is per
// field: a context can exist with only some values recorded, so a
// single nil-check on the context is not enough.

// ResolveString returns value unless it is absent, in which case the
// fallback is returned.
func ResolveString(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// ResolveStatusCode returns code when ok reports that one was
// recorded, and the fallback otherwise.
func ResolveStatusCode(code int, ok bool, fallback int) int {
	if ok {
		return code
	}
	return fallback
}
