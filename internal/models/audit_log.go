package models

// AuditLog records account and asset mutations of a registered user.
// Entries are append-only. ResourceID is an asset or user id.
type AuditLog struct {
	Record
	UserID       string `gorm:"size:36;index" json:"user_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `gorm:"size:64" json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
