package platform

import "time"

// BootDelay gives USB CDC consoles time to enumerate before the first print.
const BootDelay = bootDelay

// Boot waits BootDelay.
func Boot() { time.Sleep(BootDelay) }
