package runanalysis

import "time"

type Config struct {
	Timeout time.Duration
}
