package dto

import "github.com/noah-isme/asdos-web/internal/models"

// LogRequest creates or edits a work log.
type LogRequest struct {
	Judul        string `json:"judul" validate:"required,max=128"`
	Keterangan   string `json:"keterangan" validate:"max=2048"`
	Kategori     string `json:"kategori" validate:"required,oneof=ASISTENSI MENGOREKSI MENGAWAS LAIN_LAIN"`
	TanggalLog   string `json:"tanggalLog" validate:"required,datetime=2006-01-02"`
	WaktuMulai   string `json:"waktuMulai" validate:"required"`
	WaktuSelesai string `json:"waktuSelesai" validate:"required"`
	IDLowongan   string `json:"idLowongan" validate:"required"`
	IDMahasiswa  string `json:"idMahasiswa,omitempty"`
	Status       string `json:"status,omitempty"`
}

// LogView is a log with its computed duration.
type LogView struct {
	models.Log
	Durasi string `json:"durasi"`
}

// HonorQuery selects the honor figure of one vacancy and month.
type HonorQuery struct {
	IDMahasiswa string
	IDLowongan  string
	Bulan       int
	Tahun       int
}
