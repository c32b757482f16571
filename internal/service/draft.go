package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/alexanderramin/krsplan/internal/importer"
	"github.com/alexanderramin/krsplan/internal/repository"
)

// ReplayDraft resets the session and re-applies a saved draft: courses in
// the order they were chosen, then each plan's set priorities. Problems
// that would stop a real user (unknown kode, limit hit, section not
// offered) are collected instead of aborting; plans are applied as
// written so validation reports on them.
func (s *plannerService) ReplayDraft(ctx context.Context, draft *importer.DraftFile) (replay *DraftReplay, err error) {
	fields := map[string]any{"courses": len(draft.Courses), "plans": len(draft.Plans)}
	defer observe(ctx, s.observer, "replay-draft", time.Now().UTC(), &err, fields)

	if errs := importer.ValidateDraft(draft); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("invalid draft:\n  - %s", strings.Join(msgs, "\n  - "))
	}

	s.Reset(ctx)
	replay = &DraftReplay{}

	for _, kode := range draft.Courses {
		res, err := s.AddCourse(ctx, kode)
		if errors.Is(err, repository.ErrCourseNotFound) {
			replay.Problems = append(replay.Problems, fmt.Sprintf("%s: not in catalog", importer.NormalizeKode(kode)))
			continue
		}
		if err != nil {
			return nil, err
		}
		if !res.Added {
			replay.Problems = append(replay.Problems, fmt.Sprintf("%s: not added (%s)", res.Course.Kode, res.Reason))
		}
	}

	for _, p := range draft.Plans {
		kode := importer.NormalizeKode(p.Kode)
		var course *domain.Course
		if c, err := s.catalog.Get(ctx, kode); err == nil {
			course = c
		} else if !errors.Is(err, repository.ErrCourseNotFound) {
			return nil, err
		}

		for i, sec := range p.Priorities {
			if sec == nil {
				continue
			}
			if course != nil && len(course.Kelas) > 0 && !course.HasSection(*sec) {
				replay.Problems = append(replay.Problems, fmt.Sprintf("%s: section %q is not offered", kode, *sec))
			}
			s.plans.SetPlan(kode, i, *sec)
		}
	}

	fields["problems"] = len(replay.Problems)
	return replay, nil
}
