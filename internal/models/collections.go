package models

// Collection (MongoDB) and table (PostgreSQL) names
const (
	CollectionUsers               = "users"
	CollectionAttendance          = "attendance"
	CollectionFees                = "fees"
	CollectionDietFoods           = "dietFoods"
	CollectionExercises           = "exercises"
	CollectionDietAssignments     = "dietAssignments"
	CollectionExerciseAssignments = "exerciseAssignments"
	CollectionNotifications       = "notifications"
	CollectionPasswordResetTokens = "passwordResetTokens"
)
