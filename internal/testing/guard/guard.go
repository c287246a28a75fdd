package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("HRPORTAL_TEST_MODE") == "" {
			_ = os.Setenv("HRPORTAL_TEST_MODE", "1")
		}
	})
}
