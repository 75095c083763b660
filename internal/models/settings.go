package models

// Settings holds persisted application preferences.
type Settings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"`
	Timezone             string `json:"timezone"`
}
