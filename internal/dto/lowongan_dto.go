package dto

// LowonganRequest creates or updates a vacancy.
type LowonganRequest struct {
	Matkul           string `json:"matkul" validate:"required,max=128"`
	Tahun            int    `json:"tahun" validate:"required,min=2000,max=2100"`
	Term             string `json:"term" validate:"required,oneof=Ganjil Genap"`
	TotalAsdosNeeded int    `json:"totalAsdosNeeded" validate:"required,min=1,max=100"`
	IDDosen          string `json:"idDosen,omitempty"`
}

// LamaranRequest is a student's application form.
type LamaranRequest struct {
	Sks         int     `json:"sks" validate:"min=0,max=160"`
	Ipk         float64 `json:"ipk" validate:"min=0,max=4"`
	IDLowongan  string  `json:"idLowongan,omitempty"`
	IDMahasiswa string  `json:"idMahasiswa,omitempty"`
}

// StatusRequest records a lecturer's decision.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DITERIMA DITOLAK"`
}
