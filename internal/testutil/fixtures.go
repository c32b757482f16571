package testutil

import (
	"github.com/alexanderramin/krsplan/internal/domain"
)

// CourseOption customizes a fixture course.
type CourseOption func(*domain.Course)

func WithNama(nama string) CourseOption {
	return func(c *domain.Course) {
		c.Nama = nama
	}
}

func WithJurusan(jurusan string) CourseOption {
	return func(c *domain.Course) {
		c.Jurusan = jurusan
	}
}

// WithSections replaces the default sections A and B.
func WithSections(names ...string) CourseOption {
	return func(c *domain.Course) {
		c.Kelas = make([]domain.Section, len(names))
		for i, n := range names {
			c.Kelas[i] = domain.Section{Kelas: n}
		}
	}
}

// NewTestCourse returns an Informatika course with sections A and B.
func NewTestCourse(kode string, sks int, opts ...CourseOption) domain.Course {
	c := domain.Course{
		Kode:    kode,
		Nama:    "MATA KULIAH " + kode,
		SKS:     sks,
		Jurusan: "Informatika",
		Kelas: []domain.Section{
			{Kelas: "A", Dosen: "Dosen A", Jadwal: "Senin 07:00"},
			{Kelas: "B", Dosen: "Dosen B", Jadwal: "Selasa 09:00"},
		},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// SampleCatalog returns a small mixed-department catalog.
func SampleCatalog() []domain.Course {
	return []domain.Course{
		NewTestCourse("IF2110", 4, WithNama("ALGORITMA DAN STRUKTUR DATA")),
		NewTestCourse("IF2120", 3, WithNama("MATEMATIKA DISKRIT")),
		NewTestCourse("IF2130", 3, WithNama("ORGANISASI DAN ARSITEKTUR KOMPUTER"), WithSections("K1", "K2", "K3")),
		NewTestCourse("MA1101", 4, WithNama("MATEMATIKA IA"), WithJurusan("DMU")),
		NewTestCourse("KU1011", 2, WithNama("TATA TULIS KARYA ILMIAH"), WithJurusan("DMU")),
		NewTestCourse("EL2101", 3, WithNama("RANGKAIAN ELEKTRIK"), WithJurusan("Elektro")),
	}
}
