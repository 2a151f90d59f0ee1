package models

import "time"

// PasswordResetTTL is how long a reset token stays usable after issue
const PasswordResetTTL = 30 * time.Minute

type PasswordResetToken struct {
	ID        string     `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	UserID    string     `json:"userId" bson:"userId" gorm:"not null;size:64;index"`
	Token     string     `json:"-" bson:"token" gorm:"uniqueIndex;not null;size:64"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	ResetAt   *time.Time `json:"resetAt" bson:"resetAt"`
}

func (PasswordResetToken) TableName() string {
	return CollectionPasswordResetTokens
}

// IsUsable reports whether the token is unconsumed and was issued after notBefore
func (t *PasswordResetToken) IsUsable(notBefore time.Time) bool {
	return t.ResetAt == nil && t.CreatedAt.After(notBefore)
}
