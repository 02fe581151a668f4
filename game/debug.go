package game

// DebugState holds global debug flags that persist across scene changes
type DebugState struct {
	ShowLayers bool // Show per-layer particle stats and FPS
}

// Global debug state instance
var globalDebugState = &DebugState{
	ShowLayers: false, // Default to off
}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}
