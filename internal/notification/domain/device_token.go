package domain

import "time"

// Supported device platforms.
const (
	DeviceTypeIOS     = "ios"
	DeviceTypeAndroid = "android"
	DeviceTypeWeb     = "web"
)

// ValidDeviceType reports whether t is one of the supported platforms.
func ValidDeviceType(t string) bool {
	return t == DeviceTypeIOS || t == DeviceTypeAndroid || t == DeviceTypeWeb
}

// DeviceToken maps a user to one installed app instance that can receive
// push notifications.
type DeviceToken struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"index;not null"`
	Token      string    `json:"-" gorm:"uniqueIndex;not null"` // Don't expose token in JSON
	DeviceType string    `json:"device_type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}
