// Package submission hands a validated plan to whatever consumes it.
// Delivery to the registration system lives behind Submitter.
package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/alexanderramin/krsplan/internal/plan"
)

// Submission is the plan as sent onward.
type Submission struct {
	SessionID   string            `json:"session_id"`
	SubmittedAt time.Time         `json:"submitted_at"`
	TotalSKS    int               `json:"total_sks"`
	Courses     []SubmittedCourse `json:"courses"`
}

// SubmittedCourse is one chosen course and its ranked sections. A nil
// priority is an unset one.
type SubmittedCourse struct {
	Kode       string    `json:"kode"`
	Nama       string    `json:"nama"`
	SKS        int       `json:"sks"`
	Color      string    `json:"color"`
	Priorities []*string `json:"priorities"`
}

// Build assembles a submission from a selection and plan snapshot. Courses
// are listed oldest first, the order they were chosen in.
func Build(sessionID string, at time.Time, selection []domain.ChosenCourse, plans plan.State) Submission {
	s := Submission{
		SessionID:   sessionID,
		SubmittedAt: at.UTC(),
		Courses:     make([]SubmittedCourse, 0, len(selection)),
	}
	for _, c := range slices.Backward(selection) {
		p, _ := plans.Get(c.Kode)
		priorities := make([]*string, len(p))
		for i := range p {
			if sec, ok := p.At(i); ok {
				priorities[i] = &sec
			}
		}
		s.TotalSKS += c.SKS
		s.Courses = append(s.Courses, SubmittedCourse{
			Kode:       c.Kode,
			Nama:       c.Nama,
			SKS:        c.SKS,
			Color:      string(c.Color),
			Priorities: priorities,
		})
	}
	return s
}

type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// WriterSubmitter writes each submission as indented JSON to W.
type WriterSubmitter struct {
	W io.Writer
}

func (w WriterSubmitter) Submit(_ context.Context, s Submission) error {
	enc := json.NewEncoder(w.W)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}
	return nil
}

// DirSubmitter writes each submission to <Dir>/<session_id>.json.
type DirSubmitter struct {
	Dir string
}

func (d DirSubmitter) Submit(ctx context.Context, s Submission) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("creating submit directory: %w", err)
	}
	path := filepath.Join(d.Dir, s.SessionID+".json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating submission file: %w", err)
	}
	if err := (WriterSubmitter{W: f}).Submit(ctx, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing submission file: %w", err)
	}
	return nil
}
