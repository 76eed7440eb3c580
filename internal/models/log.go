package models

// LogKategori classifies the kind of TA work logged.
type LogKategori string

const (
	KategoriAsistensi  LogKategori = "ASISTENSI"
	KategoriMengoreksi LogKategori = "MENGOREKSI"
	KategoriMengawas   LogKategori = "MENGAWAS"
	KategoriLainLain   LogKategori = "LAIN_LAIN"
)

// Log is a work record submitted by a student and verified by the lecturer
// who owns the vacancy.
type Log struct {
	ID           string      `json:"id"`
	Judul        string      `json:"judul"`
	Keterangan   string      `json:"keterangan"`
	Kategori     LogKategori `json:"kategori"`
	TanggalLog   string      `json:"tanggalLog"`
	WaktuMulai   string      `json:"waktuMulai"`
	WaktuSelesai string      `json:"waktuSelesai"`
	Status       Status      `json:"status"`
	IDLowongan   string      `json:"idLowongan"`
	IDMahasiswa  string      `json:"idMahasiswa"`
	IDDosen      string      `json:"idDosen"`
}

// Editable reports whether the student may still change or delete the log.
func (l Log) Editable() bool {
	return l.Status == StatusMenunggu
}
