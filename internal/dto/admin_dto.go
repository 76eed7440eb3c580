package dto

import "github.com/noah-isme/asdos-web/internal/models"

// UserRequest creates or updates an account from the admin dashboard.
type UserRequest struct {
	FullName string `json:"fullName" validate:"required,max=128"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,max=64"`
	NIM      string `json:"nim,omitempty" validate:"omitempty,numeric,max=20"`
	NIP      string `json:"nip,omitempty" validate:"omitempty,numeric,max=24"`
	Role     string `json:"role" validate:"required,oneof=STUDENT LECTURER ADMIN"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8,max=128"`
}

// CourseRequest creates or updates a course.
type CourseRequest struct {
	Kode      string `json:"kode" validate:"required,alphanum,max=16"`
	Nama      string `json:"nama" validate:"required,max=128"`
	Deskripsi string `json:"deskripsi" validate:"max=1024"`
}

// ActivityListRequest filters the local audit trail.
type ActivityListRequest struct {
	Page       int    `query:"page"`
	PageSize   int    `query:"page_size"`
	ActorID    string `query:"actor_id"`
	EntityType string `query:"entity_type"`
}

// ActivityListResponse is one page of the audit trail.
type ActivityListResponse struct {
	Items    []models.ActivityLog `json:"items"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}
