package util

// As finds the first error in err chain for which match returns true.
// Both stackerr Underlying() chains and standard Unwrap() chains are followed.
func As(err error, match func(error) bool) bool {
	for ; err != nil; err = next(err) {
		if match(err) {
			return true
		}
	}
	return false
}

func next(err error) error {
	switch e := err.(type) {
	case interface{ Underlying() error }:
		return e.Underlying()
	case interface{ Unwrap() error }:
		return e.Unwrap()
	}
	return nil
}
