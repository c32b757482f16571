package domain

import (
	"fmt"
	"strings"
)

const (
	// SKSLimit is the maximum total credit load of a selection.
	SKSLimit = 24
	// CourseLimit is the maximum number of chosen courses.
	CourseLimit = 12
)

// Kode is a course identifier.
type Kode string

// Keyed is anything that identifies a course by kode: a bare Kode, a
// Course, or a ChosenCourse.
type Keyed interface {
	CourseKode() string
}

func (k Kode) CourseKode() string { return string(k) }

// Section is one offered class of a course.
type Section struct {
	Kelas  string
	Dosen  string
	Jadwal string
}

type Course struct {
	Kode    string
	Nama    string
	SKS     int
	Jurusan string
	Kelas   []Section
}

func (c Course) CourseKode() string { return c.Kode }

// HasSection reports whether the course offers a section with the given name.
func (c Course) HasSection(name string) bool {
	for _, s := range c.Kelas {
		if s.Kelas == name {
			return true
		}
	}
	return false
}

// SectionNames returns the offered section names in catalog order.
func (c Course) SectionNames() []string {
	names := make([]string, len(c.Kelas))
	for i, s := range c.Kelas {
		names[i] = s.Kelas
	}
	return names
}

// Validate checks the fields the selection core relies on.
func (c Course) Validate() error {
	if strings.TrimSpace(c.Kode) == "" {
		return fmt.Errorf("kode is required")
	}
	if strings.ContainsAny(c.Kode, " \t\n") {
		return fmt.Errorf("kode %q must not contain whitespace", c.Kode)
	}
	if c.SKS <= 0 {
		return fmt.Errorf("course %s: sks must be positive, got %d", c.Kode, c.SKS)
	}
	return nil
}

// ChosenCourse is a course in the selection, tagged with its color.
type ChosenCourse struct {
	Course
	Color ColorTag
}
