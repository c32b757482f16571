package importer

import (
	"strings"

	"github.com/alexanderramin/krsplan/internal/domain"
)

// ConvertCatalog turns a validated catalog file into domain courses.
// Kodes are upper-cased; a missing jurusan becomes defaultJurusan.
func ConvertCatalog(f *CatalogFile, defaultJurusan string) []domain.Course {
	courses := make([]domain.Course, 0, len(f.Courses))
	for _, c := range f.Courses {
		sections := make([]domain.Section, 0, len(c.Kelas))
		for _, s := range c.Kelas {
			sections = append(sections, domain.Section{
				Kelas:  strings.TrimSpace(s.Kelas),
				Dosen:  strings.TrimSpace(s.Dosen),
				Jadwal: strings.TrimSpace(s.Jadwal),
			})
		}
		courses = append(courses, domain.Course{
			Kode:    strings.ToUpper(strings.TrimSpace(c.Kode)),
			Nama:    strings.TrimSpace(c.Nama),
			SKS:     c.SKS,
			Jurusan: domain.CoalesceStr(strings.TrimSpace(c.Jurusan), defaultJurusan),
			Kelas:   sections,
		})
	}
	return courses
}

// NormalizeKode upper-cases and trims a kode the way the catalog stores it.
func NormalizeKode(kode string) string {
	return strings.ToUpper(strings.TrimSpace(kode))
}
