package dto

import (
	"time"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

// RoleResponse is the nested role of every user payload.
type RoleResponse struct {
	ID          string          `json:"id"`
	Name        domain.RoleName `json:"name"`
	Description string          `json:"description"`
}

// UserResponse is the public projection of an account.
type UserResponse struct {
	ID             string            `json:"id"`
	FullName       string            `json:"full_name"`
	Email          string            `json:"email"`
	Agency         string            `json:"agency"`
	Phone          string            `json:"phone"`
	Status         domain.UserStatus `json:"status"`
	IsActive       bool              `json:"is_active"`
	Specialization *string           `json:"specialization"`
	Role           *RoleResponse     `json:"role"`
	LastLoginAt    *time.Time        `json:"last_login_at"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// TechnicianResponse lists a technician with open ticket counters.
type TechnicianResponse struct {
	ID                     string            `json:"id"`
	FullName               string            `json:"full_name"`
	Email                  string            `json:"email"`
	Agency                 string            `json:"agency"`
	Phone                  string            `json:"phone"`
	Status                 domain.UserStatus `json:"status"`
	Specialization         *string           `json:"specialization"`
	Role                   *RoleResponse     `json:"role"`
	AssignedTicketsCount   int               `json:"assigned_tickets_count"`
	InProgressTicketsCount int               `json:"in_progress_tickets_count"`
}

// TechnicianStatsResponse is the flat performance record of a technician.
type TechnicianStatsResponse struct {
	ID                     string            `json:"id"`
	FullName               string            `json:"full_name"`
	Email                  string            `json:"email"`
	Phone                  string            `json:"phone"`
	Agency                 string            `json:"agency"`
	Specialization         *string           `json:"specialization"`
	Status                 domain.UserStatus `json:"status"`
	LastLoginAt            *string           `json:"last_login_at"`
	AssignedTicketsCount   int               `json:"assigned_tickets_count"`
	InProgressTicketsCount int               `json:"in_progress_tickets_count"`
	ResolvedTicketsCount   int               `json:"resolved_tickets_count"`
	ClosedTicketsCount     int               `json:"closed_tickets_count"`
	ResolvedThisMonth      int               `json:"resolved_this_month"`
	ResolvedToday          int               `json:"resolved_today"`
	AvgResolutionTimeDays  float64           `json:"avg_resolution_time_days"`
	AvgResponseTimeMinutes int64             `json:"avg_response_time_minutes"`
	SuccessRate            float64           `json:"success_rate"`
	AvailabilityStatus     string            `json:"availability_status"`
	WorkloadRatio          string            `json:"workload_ratio"`
	WorkHours              string            `json:"work_hours"`
}

// UpdateUserRequest is a partial patch; omitted fields stay nil.
type UpdateUserRequest struct {
	FullName       *string `json:"full_name" validate:"omitempty,min=1,max=255"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Agency         *string `json:"agency" validate:"omitempty,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,max=50"`
	Status         *string `json:"status" validate:"omitempty,oneof=active inactive"`
	Specialization *string `json:"specialization" validate:"omitempty,max=255"`
	RoleID         *string `json:"role_id" validate:"omitempty,uuid"`
}

// ResetPasswordRequest optionally carries the password chosen by the administrator.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"omitempty,max=72"`
}

// DeleteUserResponse tells whether the account was removed or deactivated.
type DeleteUserResponse struct {
	Message     string `json:"message"`
	UserID      string `json:"user_id"`
	Deactivated bool   `json:"deactivated"`
}

// ResetPasswordResponse returns the new plaintext password once.
type ResetPasswordResponse struct {
	Message     string `json:"message"`
	UserID      string `json:"user_id"`
	NewPassword string `json:"new_password"`
	Generated   bool   `json:"generated"`
}
