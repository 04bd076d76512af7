package store

import "time"

// User statuses.
const (
	UserStatusActivated   = "activated"
	UserStatusDeactivated = "deactivated"
)

type User struct {
	ID          int
	TenantID    int
	Email       string
	Password    string // bcrypt hash, hex encoded
	DisplayName string
	Status      string
}

type Student struct {
	ID        int
	TenantID  int
	UserID    *int // account link, nil for students without a login
	FirstName string
	LastName  string
}

type Grade struct {
	ID        int
	TenantID  int
	StudentID int
	SectionID int
	SubjectID int
	Term      string
	Score     float64
	CreatedBy int
	CreatedAt time.Time
}

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

type Payment struct {
	ID          int
	TenantID    int
	StudentID   int
	AmountCents int64
	Status      string
	DueAt       time.Time
}
