// FilePath: internal/models/models.device.go
package models

import "time"

// Device is a physical sensor unit owned by a user
type Device struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Name      *string   `json:"name,omitempty" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// DisplayName returns the device name or an empty string when none is set.
func (d Device) DisplayName() string {
	if d.Name == nil {
		return ""
	}
	return *d.Name
}
