package constants

const (
	// Settings keys
	SettingNotificationsEnabled = "notifications_enabled"
	SettingTimezone             = "timezone"

	// Default settings values
	DefaultNotificationsEnabled = true
	DefaultTimezone             = "Local" // Use system local timezone by default
)
