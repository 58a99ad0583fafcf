// Package validate provides a process-wide struct validator used to check
// configuration structs built from flags before an application starts.
package validate

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// Validate returns the shared validator instance.
func Validate() *validator.Validate {
	once.Do(func() {
		v = validator.New()
	})
	return v
}
