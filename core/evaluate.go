package core

// Evaluate turns a natural-language math request into a computed,
// human-readable answer by running the full classify, extract,
// dispatch and format pipeline. It is defined for every input string,
// always returns a non-empty string, and is reentrant: each call
// builds and discards its own state. The only non-deterministic path
// is a matrix request that supplies dimensions but no literal, which
// generates a fresh random matrix per call.
func Evaluate(request string) string {
	cat := Classify(request)
	params := Extract(request, cat)
	result := Dispatch(cat, params)
	return Format(result, cat)
}
