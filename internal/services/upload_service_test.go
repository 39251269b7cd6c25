package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
)

type fakeUploadStore struct {
	existingEmail map[string]bool
	existingPhone map[string]bool
	inserted      []models.Lead
}

func (f *fakeUploadStore) ExistingContacts(emails, phones []string) (map[string]bool, map[string]bool, error) {
	return f.existingEmail, f.existingPhone, nil
}

func (f *fakeUploadStore) InsertBatch(leads []models.Lead) error {
	f.inserted = append(f.inserted, leads...)
	return nil
}

func uploadSession() authz.Session {
	return authz.Session{EmployeeID: 7, Role: authz.RoleLeadGenManager, Caps: fullCaps()}
}

func TestUploadSkipsAndDeduplicates(t *testing.T) {
	store := &fakeUploadStore{
		existingEmail: map[string]bool{"known@x.com": true},
		existingPhone: map[string]bool{},
	}
	svc := NewUploadService(store, 100, nil)

	csvBody := strings.Join([]string{
		"name,email,phone,college",
		"Alice,alice@x.com,111,C1",
		",noname@x.com,222,C1",
		"Bob,,,",
		"Carol,alice@x.com,333,C2",
		"Dave,known@x.com,444,C3",
		"Erin,erin@x.com,111,C4",
		"Frank,frank@x.com,555,C5",
	}, "\n")

	result, err := svc.Upload(uploadSession(), strings.NewReader(csvBody))
	require.NoError(t, err)

	assert.Equal(t, 2, result.InsertedLeadsCount)
	assert.Equal(t, 5, result.SkippedLeadsCount)
	require.Len(t, store.inserted, 2)

	reasons := map[string]int{}
	for _, sk := range result.SkippedLeads {
		reasons[sk.Reason]++
	}
	assert.Equal(t, 1, reasons["missing name"])
	assert.Equal(t, 1, reasons["missing contact"])
	assert.Equal(t, 1, reasons["duplicate email in file"])
	assert.Equal(t, 1, reasons["duplicate phone in file"])
	assert.Equal(t, 1, reasons["email already exists"])

	// every skip names its source row; the header is row 1
	rowByReason := map[string]int{}
	for _, sk := range result.SkippedLeads {
		assert.Positive(t, sk.Row, sk.Reason)
		rowByReason[sk.Reason] = sk.Row
	}
	assert.Equal(t, 3, rowByReason["missing name"])
	assert.Equal(t, 6, rowByReason["email already exists"])

	for _, l := range store.inserted {
		assert.Equal(t, authz.StatusNewlyGenerated, l.Status)
		assert.EqualValues(t, 7, l.OwnerID)
		assert.Nil(t, l.TeamAssignedID)
	}
}

func TestUploadReportsExistingContacts(t *testing.T) {
	store := &fakeUploadStore{
		existingEmail: map[string]bool{"known@x.com": true},
		existingPhone: map[string]bool{"999": true},
	}
	svc := NewUploadService(store, 100, nil)

	csvBody := strings.Join([]string{
		"name,email,phone",
		"Dave,known@x.com,444",
		"Gina,gina@x.com,999",
		"Hank,hank@x.com,777",
	}, "\n")

	result, err := svc.Upload(uploadSession(), strings.NewReader(csvBody))
	require.NoError(t, err)
	assert.Equal(t, 1, result.InsertedLeadsCount)
	assert.Equal(t, 2, result.SkippedLeadsCount)
}

func TestUploadRequiresCapAndColumns(t *testing.T) {
	svc := NewUploadService(&fakeUploadStore{}, 100, nil)

	noCap := uploadSession()
	noCap.Caps.Upload = false
	_, err := svc.Upload(noCap, strings.NewReader("name,email,phone\n"))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Upload(uploadSession(), strings.NewReader("name,email\nAlice,a@x.com\n"))
	assert.ErrorContains(t, err, "phone")
}

func TestUploadHonorsConfiguredColumns(t *testing.T) {
	store := &fakeUploadStore{}
	svc := NewUploadService(store, 100, []string{"name", "email", "college"})

	_, err := svc.Upload(uploadSession(), strings.NewReader("name,email,phone\nAlice,a@x.com,1\n"))
	assert.ErrorContains(t, err, "college")

	result, err := svc.Upload(uploadSession(), strings.NewReader("name,email,college\nAlice,a@x.com,C1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.InsertedLeadsCount)
}

func TestUploadEnforcesRowCap(t *testing.T) {
	svc := NewUploadService(&fakeUploadStore{}, 2, nil)
	csvBody := strings.Join([]string{
		"name,email,phone",
		"A,a@x.com,1",
		"B,b@x.com,2",
		"C,c@x.com,3",
	}, "\n")
	_, err := svc.Upload(uploadSession(), strings.NewReader(csvBody))
	assert.ErrorContains(t, err, "exceeds")
}
