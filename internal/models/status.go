package models

// Status is the review state shared by logs and applications.
type Status string

const (
	StatusMenunggu Status = "MENUNGGU"
	StatusDiterima Status = "DITERIMA"
	StatusDitolak  Status = "DITOLAK"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusMenunggu, StatusDiterima, StatusDitolak:
		return true
	}
	return false
}

// Decided reports whether s is a final review outcome.
func (s Status) Decided() bool {
	return s == StatusDiterima || s == StatusDitolak
}
