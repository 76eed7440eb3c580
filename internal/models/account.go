package models

// User is an account as listed by the admin user endpoints.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	NIM      string `json:"nim,omitempty"`
	NIP      string `json:"nip,omitempty"`
	Role     string `json:"role"`
}

// MataKuliah is a course managed by administrators.
type MataKuliah struct {
	Kode      string `json:"kode"`
	Nama      string `json:"nama"`
	Deskripsi string `json:"deskripsi"`
}
