package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// CatalogFile is the top-level JSON structure of a course catalog export.
type CatalogFile struct {
	Courses []CourseImport `json:"courses"`
}

// CourseImport is one course in the catalog file.
type CourseImport struct {
	Kode    string          `json:"kode"`
	Nama    string          `json:"nama"`
	SKS     int             `json:"sks"`
	Jurusan string          `json:"jurusan,omitempty"`
	Kelas   []SectionImport `json:"kelas"`
}

// SectionImport is one offered class of a course.
type SectionImport struct {
	Kelas  string `json:"kelas"`
	Dosen  string `json:"dosen,omitempty"`
	Jadwal string `json:"jadwal,omitempty"`
}

// DraftFile is a saved planning session replayed by `krsplan check`.
// Courses are listed in the order they were chosen.
type DraftFile struct {
	Courses []string    `json:"courses"`
	Plans   []PlanDraft `json:"plans,omitempty"`
}

// PlanDraft holds one course's priorities. A null entry is an unset
// priority.
type PlanDraft struct {
	Kode       string    `json:"kode"`
	Priorities []*string `json:"priorities"`
}

// LoadCatalogFile reads and parses a catalog JSON file.
func LoadCatalogFile(path string) (*CatalogFile, error) {
	var f CatalogFile
	if err := loadJSON(path, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	return &f, nil
}

// LoadDraftFile reads and parses a draft plan JSON file.
func LoadDraftFile(path string) (*DraftFile, error) {
	var f DraftFile
	if err := loadJSON(path, &f); err != nil {
		return nil, fmt.Errorf("parsing draft file: %w", err)
	}
	return &f, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
