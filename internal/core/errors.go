// Package core defines the fundamental types and errors for Hearth.
package core

import "errors"

// Core errors that can occur across the system
var (
	// Storage errors
	ErrUserNotFound     = errors.New("user not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrCookingNotFound  = errors.New("cooking assignment not found")
	ErrTodoNotFound     = errors.New("todo not found")
	ErrPlanNotFound     = errors.New("no plan for that date")
	ErrReminderNotFound = errors.New("reminder not found")
	ErrDuplicateRecord  = errors.New("duplicate record")
	ErrMigrationFailed  = errors.New("migration failed")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime     = errors.New("invalid time, expected HH:MM")
	ErrInvalidMealType = errors.New("invalid meal type")
	ErrInvalidCategory = errors.New("invalid category")
	ErrPastStartTime   = errors.New("event start time is in the past")

	// Assist errors
	ErrAssistUnavailable = errors.New("AI assist unavailable")
	ErrMalformedResponse = errors.New("malformed AI response")

	// Delivery errors
	ErrUserUnreachable = errors.New("user unreachable for direct message")
)
