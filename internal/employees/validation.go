package employees

import "errors"

// ErrRequiredFields is returned when name, email or department are empty
// after trimming.
var ErrRequiredFields = errors.New("name, email, and department are required")

func validate(e Employee) error {
	if e.Name == "" || e.Email == "" || e.Department == "" {
		return ErrRequiredFields
	}
	return nil
}
