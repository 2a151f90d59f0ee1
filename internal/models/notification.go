package models

import "time"

type NotificationType string

const (
	NotificationGeneral NotificationType = "general"
	NotificationFee     NotificationType = "fee"
)

const DefaultNotificationPath = "/"

// Notification is addressed by user id, email, or both
type Notification struct {
	ID        string           `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	UserID    string           `json:"userId,omitempty" bson:"userId,omitempty" gorm:"size:64;index"`
	UserEmail string           `json:"userEmail,omitempty" bson:"userEmail,omitempty" gorm:"size:255;index"`
	SenderID  string           `json:"senderId,omitempty" bson:"senderId,omitempty" gorm:"size:64"`
	Type      NotificationType `json:"type" bson:"type" gorm:"size:20"`
	Text      string           `json:"notificationText" bson:"notification_text" gorm:"column:notification_text;type:text;not null"`
	PathName  string           `json:"pathName" bson:"pathName" gorm:"size:255"`
	Read      bool             `json:"read" bson:"read" gorm:"not null;default:false"`
	ReadAt    *time.Time       `json:"readAt,omitempty" bson:"readAt,omitempty"`
	CreatedAt time.Time        `json:"createdAt" bson:"createdAt"`
}

func (Notification) TableName() string {
	return CollectionNotifications
}

// IsAddressedTo reports whether the principal is the recipient
func (n *Notification) IsAddressedTo(p Principal) bool {
	return (n.UserID != "" && n.UserID == p.ID) || (n.UserEmail != "" && n.UserEmail == p.Email)
}
