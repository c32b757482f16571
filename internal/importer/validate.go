package importer

import (
	"fmt"
	"strings"
)

// ValidateCatalog checks a catalog file before conversion and returns
// every problem found.
func ValidateCatalog(f *CatalogFile) []error {
	var errs []error
	if len(f.Courses) == 0 {
		errs = append(errs, fmt.Errorf("courses: at least one course is required"))
	}

	kodes := make(map[string]bool)
	for i, c := range f.Courses {
		prefix := fmt.Sprintf("courses[%d]", i)
		kode := strings.ToUpper(strings.TrimSpace(c.Kode))

		switch {
		case kode == "":
			errs = append(errs, fmt.Errorf("%s.kode is required", prefix))
		case strings.ContainsAny(kode, " \t\n"):
			errs = append(errs, fmt.Errorf("%s.kode: %q must not contain whitespace", prefix, c.Kode))
		case kodes[kode]:
			errs = append(errs, fmt.Errorf("%s.kode: duplicate kode %q", prefix, c.Kode))
		default:
			kodes[kode] = true
		}

		if strings.TrimSpace(c.Nama) == "" {
			errs = append(errs, fmt.Errorf("%s.nama is required", prefix))
		}
		if c.SKS <= 0 {
			errs = append(errs, fmt.Errorf("%s.sks must be positive, got %d", prefix, c.SKS))
		}
		errs = append(errs, validateSections(prefix, c.Kelas)...)
	}
	return errs
}

func validateSections(prefix string, sections []SectionImport) []error {
	var errs []error
	names := make(map[string]bool)
	for j, s := range sections {
		p := fmt.Sprintf("%s.kelas[%d]", prefix, j)
		name := strings.TrimSpace(s.Kelas)
		if name == "" {
			errs = append(errs, fmt.Errorf("%s.kelas is required", p))
			continue
		}
		if names[name] {
			errs = append(errs, fmt.Errorf("%s.kelas: duplicate section %q", p, s.Kelas))
		}
		names[name] = true
	}
	return errs
}

// ValidateDraft checks a draft file's structure. Whether its courses exist
// in the catalog is checked when it is replayed.
func ValidateDraft(f *DraftFile) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, k := range f.Courses {
		kode := strings.ToUpper(strings.TrimSpace(k))
		if kode == "" {
			errs = append(errs, fmt.Errorf("courses[%d] is empty", i))
			continue
		}
		if seen[kode] {
			errs = append(errs, fmt.Errorf("courses[%d]: duplicate kode %q", i, k))
		}
		seen[kode] = true
	}

	planned := make(map[string]bool)
	for i, p := range f.Plans {
		prefix := fmt.Sprintf("plans[%d]", i)
		kode := strings.ToUpper(strings.TrimSpace(p.Kode))
		if kode == "" {
			errs = append(errs, fmt.Errorf("%s.kode is required", prefix))
			continue
		}
		if planned[kode] {
			errs = append(errs, fmt.Errorf("%s.kode: duplicate plan for %q", prefix, p.Kode))
		}
		planned[kode] = true
	}
	return errs
}
