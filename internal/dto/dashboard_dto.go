package dto

import "github.com/noah-isme/asdos-web/internal/models"

// StatusCount tallies records per review status.
type StatusCount struct {
	Menunggu int `json:"menunggu"`
	Diterima int `json:"diterima"`
	Ditolak  int `json:"ditolak"`
}

// Add counts one record with status s.
func (c *StatusCount) Add(s models.Status) {
	switch s {
	case models.StatusMenunggu:
		c.Menunggu++
	case models.StatusDiterima:
		c.Diterima++
	case models.StatusDitolak:
		c.Ditolak++
	}
}

// AdminDashboard summarises the admin landing page. Sections that failed to
// load are nil and reported in Errors.
type AdminDashboard struct {
	UsersByRole    map[string]int       `json:"usersByRole,omitempty"`
	TotalCourses   *int                 `json:"totalCourses,omitempty"`
	TotalLowongan  *int                 `json:"totalLowongan,omitempty"`
	OpenLowongan   *int                 `json:"openLowongan,omitempty"`
	RecentActivity []models.ActivityLog `json:"recentActivity,omitempty"`
	Errors         map[string]string    `json:"errors,omitempty"`
}

// StudentDashboard summarises the student landing page.
type StudentDashboard struct {
	OpenLowongan []models.Lowongan `json:"openLowongan,omitempty"`
	Lamaran      *StatusCount      `json:"lamaran,omitempty"`
	Logs         *StatusCount      `json:"logs,omitempty"`
	Errors       map[string]string `json:"errors,omitempty"`
}

// LecturerDashboard summarises the lecturer landing page.
type LecturerDashboard struct {
	Lowongan    []models.Lowongan `json:"lowongan,omitempty"`
	PendingLogs []LogView         `json:"pendingLogs,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
}
