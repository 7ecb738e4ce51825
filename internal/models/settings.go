package models

// Settings holds application-level preferences persisted in the store.
type Settings struct {
	Timezone             string `json:"timezone"`
	ActiveCounterID      string `json:"active_counter_id,omitempty"`
	CompletionCooldownMs int    `json:"completion_cooldown_ms"`
}
