package domain

import "time"

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Appointment struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	WorkerID     int64      `json:"worker_id" gorm:"not null;index:ix_appointments_worker"`
	ServiceID    *int64     `json:"service_id,omitempty"`
	CustomerName string     `json:"customer_name" gorm:"type:text;not null"`
	ScheduledAt  time.Time  `json:"scheduled_at" gorm:"not null"`
	Status       string     `json:"status" gorm:"type:text;not null;default:'scheduled'"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Note         *string    `json:"note,omitempty" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Appointment) TableName() string { return "appointments" }
