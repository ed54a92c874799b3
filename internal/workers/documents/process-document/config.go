package processdocument

import "time"

type Config struct {
	Timeout time.Duration
}
