package conflict

// SetLookPath replaces the PATH lookup for the duration of a test
func SetLookPath(f func(string) (string, error)) func() {
	prev := lookPath
	lookPath = f
	return func() { lookPath = prev }
}
