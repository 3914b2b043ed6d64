package database

import "rawabit/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Content{},
		&models.LexiconEntry{},
		&models.Like{},
		&models.Comment{},
		&models.Share{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
		&models.Notification{},
	}
}
