// Package entities holds the GORM row models of the messaging schema.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// User is a row of the users table.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_users_username"`
	CreatedAt time.Time `gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}

// Thread is a row of the threads table.
type Thread struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Type         string              `gorm:"type:varchar(16);not null"`
	Name         *string             `gorm:"type:varchar(200)"`
	DirectKey    *string             `gorm:"type:varchar(80)"`
	CreatedAt    time.Time           `gorm:"not null"`
	UpdatedAt    time.Time           `gorm:"not null;autoUpdateTime:false"`
	Participants []ThreadParticipant `gorm:"foreignKey:ThreadID"`
}

func (Thread) TableName() string {
	return "threads"
}

// ThreadParticipant links a user to a thread; Position keeps insertion order.
type ThreadParticipant struct {
	ThreadID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"not null"`
}

func (ThreadParticipant) TableName() string {
	return "thread_participants"
}

// Message is a row of the messages table. Seq is assigned by the database.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int64     `gorm:"->;autoIncrement"`
	ThreadID  uuid.UUID `gorm:"type:uuid;not null"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Message) TableName() string {
	return "messages"
}
