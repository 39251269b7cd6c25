package repositories

import (
	"database/sql"
	"log"

	"salesdesk/internal/authz"
)

// PermissionRepository reads the per-role capability records. The
// records are server data: predicates consume what is stored here,
// never flags inferred from the role name.
type PermissionRepository struct {
	db *sql.DB
}

func NewPermissionRepository(db *sql.DB) *PermissionRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &PermissionRepository{db: db}
}

// GetByRole returns the capability record for a role. A role with no
// row gets the zero record: everything denied.
func (r *PermissionRepository) GetByRole(role authz.Role) (authz.Capabilities, error) {
	const query = `
		SELECT can_upload, can_create, can_edit, can_assign, can_delete
		FROM role_permissions WHERE role=$1
	`
	var caps authz.Capabilities
	err := r.db.QueryRow(query, string(role)).Scan(
		&caps.Upload, &caps.Create, &caps.Edit, &caps.Assign, &caps.Delete,
	)
	if err == sql.ErrNoRows {
		return authz.Capabilities{}, nil
	}
	if err != nil {
		return authz.Capabilities{}, err
	}
	return caps, nil
}
