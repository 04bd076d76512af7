package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetStudent looks up a student by id within the tenant. A student id that
// exists in another tenant yields ErrNotFound, same as a missing id.
func (s *Store) GetStudent(ctx context.Context, tenantID, studentID int) (*Student, error) {
	var student Student

	err := s.queryRow(ctx,
		`SELECT id, tenant_id, user_id, first_name, last_name
		 FROM students WHERE tenant_id = ? AND id = ?`,
		tenantID, studentID,
	).Scan(&student.ID, &student.TenantID, &student.UserID, &student.FirstName, &student.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("store: get student: %w", err)
	}

	return &student, nil
}

// StudentUserID resolves the user account linked to a student record within
// the tenant. The second return is false when the student has no login or the
// id does not exist in the tenant; neither case is an error.
func (s *Store) StudentUserID(ctx context.Context, tenantID, studentID int) (int, bool, error) {
	var userID sql.NullInt64

	err := s.queryRow(ctx,
		`SELECT user_id FROM students WHERE tenant_id = ? AND id = ?`,
		tenantID, studentID,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}

		return 0, false, fmt.Errorf("store: student user id: %w", err)
	}

	if !userID.Valid {
		return 0, false, nil
	}

	return int(userID.Int64), true, nil
}

// GetPayment looks up a payment by id within the tenant.
func (s *Store) GetPayment(ctx context.Context, tenantID, paymentID int) (*Payment, error) {
	var payment Payment

	err := s.queryRow(ctx,
		`SELECT id, tenant_id, student_id, amount_cents, status, due_at
		 FROM payments WHERE tenant_id = ? AND id = ?`,
		tenantID, paymentID,
	).Scan(&payment.ID, &payment.TenantID, &payment.StudentID, &payment.AmountCents, &payment.Status, &payment.DueAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("store: get payment: %w", err)
	}

	return &payment, nil
}
