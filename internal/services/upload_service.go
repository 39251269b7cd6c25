package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
)

// UploadStore is the slice of the lead repository batch uploads use.
type UploadStore interface {
	ExistingContacts(emails, phones []string) (map[string]bool, map[string]bool, error)
	InsertBatch(leads []models.Lead) error
}

// UploadService turns a CSV export into unassigned leads. Rows with
// missing required fields or contacts already in the active set are
// skipped and reported, not failed.
type UploadService struct {
	Repo         UploadStore
	MaxRows      int
	RequiredCols []string
}

func NewUploadService(repo UploadStore, maxRows int, requiredCols []string) *UploadService {
	if maxRows <= 0 {
		maxRows = 5000
	}
	if len(requiredCols) == 0 {
		requiredCols = []string{"name", "email", "phone"}
	}
	return &UploadService{Repo: repo, MaxRows: maxRows, RequiredCols: requiredCols}
}

// Upload parses and inserts the file for the session's owner.
func (s *UploadService) Upload(sess authz.Session, file io.Reader) (*models.UploadResult, error) {
	if !sess.Caps.Has(authz.CapUpload) {
		return nil, ErrForbidden
	}

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range s.RequiredCols {
		if _, ok := col[strings.ToLower(want)]; !ok {
			return nil, fmt.Errorf("missing required column %q", want)
		}
	}

	result := &models.UploadResult{SkippedLeads: []models.SkippedLead{}}
	var pending []models.Lead
	var pendingRows []int
	var emails, phones []string
	seenEmail := map[string]bool{}
	seenPhone := map[string]bool{}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}
		row++
		if row-1 > s.MaxRows {
			return nil, fmt.Errorf("upload exceeds %d rows", s.MaxRows)
		}

		name := field(record, "name")
		email := field(record, "email")
		phone := field(record, "phone")

		skip := func(reason string) {
			result.SkippedLeads = append(result.SkippedLeads, models.SkippedLead{
				Row: row, Email: email, Phone: phone, Reason: reason,
			})
		}

		switch {
		case name == "":
			skip("missing name")
			continue
		case email == "" && phone == "":
			skip("missing contact")
			continue
		case email != "" && seenEmail[email]:
			skip("duplicate email in file")
			continue
		case phone != "" && seenPhone[phone]:
			skip("duplicate phone in file")
			continue
		}
		if email != "" {
			seenEmail[email] = true
			emails = append(emails, email)
		}
		if phone != "" {
			seenPhone[phone] = true
			phones = append(phones, phone)
		}

		pendingRows = append(pendingRows, row)
		pending = append(pending, models.Lead{
			UUID:      uuid.New(),
			Name:      name,
			Email:     email,
			Phone:     phone,
			College:   field(record, "college"),
			Branch:    field(record, "branch"),
			Domain:    field(record, "domain"),
			Status:    authz.StatusNewlyGenerated,
			OwnerID:   sess.EmployeeID,
			CreatedAt: time.Now(),
		})
	}

	existingEmail, existingPhone, err := s.Repo.ExistingContacts(emails, phones)
	if err != nil {
		return nil, err
	}
	var fresh []models.Lead
	for i, l := range pending {
		if l.Email != "" && existingEmail[l.Email] {
			result.SkippedLeads = append(result.SkippedLeads, models.SkippedLead{
				Row: pendingRows[i], Email: l.Email, Phone: l.Phone, Reason: "email already exists",
			})
			continue
		}
		if l.Phone != "" && existingPhone[l.Phone] {
			result.SkippedLeads = append(result.SkippedLeads, models.SkippedLead{
				Row: pendingRows[i], Email: l.Email, Phone: l.Phone, Reason: "phone already exists",
			})
			continue
		}
		fresh = append(fresh, l)
	}

	if len(fresh) > 0 {
		if err := s.Repo.InsertBatch(fresh); err != nil {
			return nil, err
		}
	}
	result.InsertedLeadsCount = len(fresh)
	result.SkippedLeadsCount = len(result.SkippedLeads)
	return result, nil
}
