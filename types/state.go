package types

// ------------------------
// Worker state (retained)
// ------------------------

// Level values for ServiceState.
const (
	LevelRunning = "running"
	LevelStopped = "stopped"
)

// ServiceState is published retained under app/<worker>/state.
type ServiceState struct {
	Level  string `json:"level"`  // "running", "stopped"
	Status string `json:"status"` // short machine-readable code
	TS     int64  `json:"ts_ms"`  // Unix ms
}

// Activation is published retained under app/activation whenever the
// sequence flag is written by a console command.
type Activation struct {
	Active bool   `json:"active"`
	Source string `json:"source"` // command that caused the change
	TS     int64  `json:"ts_ms"`
}
