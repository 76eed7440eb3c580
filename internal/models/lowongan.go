package models

// Term is the academic semester of a vacancy.
type Term string

const (
	TermGanjil Term = "Ganjil"
	TermGenap  Term = "Genap"
)

// Lowongan is a TA vacancy posted by a lecturer for one course and term.
type Lowongan struct {
	ID                   string `json:"id"`
	Matkul               string `json:"matkul"`
	Tahun                int    `json:"tahun"`
	Term                 Term   `json:"term"`
	TotalAsdosNeeded     int    `json:"totalAsdosNeeded"`
	TotalAsdosRegistered int    `json:"totalAsdosRegistered"`
	TotalAsdosAccepted   int    `json:"totalAsdosAccepted"`
	IDDosen              string `json:"idDosen"`
}

// Open reports whether the vacancy still accepts assistants.
func (l Lowongan) Open() bool {
	return l.TotalAsdosAccepted < l.TotalAsdosNeeded
}

// Lamaran is a student's application to a vacancy.
type Lamaran struct {
	ID          string  `json:"id"`
	Sks         int     `json:"sks"`
	Ipk         float64 `json:"ipk"`
	Status      Status  `json:"status"`
	IDMahasiswa string  `json:"idMahasiswa"`
	IDLowongan  string  `json:"idLowongan"`
}
