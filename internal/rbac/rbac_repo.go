package rbac

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
)

//go:embed policy.csv
var defaultPolicy string

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions() ([]RolePermissionRow, error)
	GetRoleInheritance() ([]RoleInheritanceRow, error)
}

type RolePermissionRow struct {
	RoleID   string
	Resource string
	Action   string
}

// RoleInheritanceRow: Role mewarisi semua permission Parent.
type RoleInheritanceRow struct {
	Role   string
	Parent string
}

type repository struct {
	permissions []RolePermissionRow
	inheritance []RoleInheritanceRow
}

// NewRepository membaca policy dari file CSV format casbin. Path kosong
// berarti policy bawaan yang di-embed.
func NewRepository(path string) (Repository, error) {
	if path == "" {
		return ParsePolicy(defaultPolicy)
	}
	return FromAdapter(fileadapter.NewAdapter(path))
}

func ParsePolicy(text string) (Repository, error) {
	return FromAdapter(stringadapter.NewAdapter(text))
}

// FromAdapter memuat policy lewat adapter casbin ke model kosong lalu
// menyalin baris p dan g ke repository.
func FromAdapter(adapter persist.Adapter) (Repository, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	if err := adapter.LoadPolicy(m); err != nil {
		return nil, fmt.Errorf("load rbac policy: %w", err)
	}

	r := &repository{}
	for _, rule := range m["p"]["p"].Policy {
		if len(rule) < 3 {
			return nil, fmt.Errorf("rbac policy: incomplete permission rule %v", rule)
		}
		r.permissions = append(r.permissions, RolePermissionRow{RoleID: rule[0], Resource: rule[1], Action: rule[2]})
	}
	for _, rule := range m["g"]["g"].Policy {
		if len(rule) < 2 {
			return nil, fmt.Errorf("rbac policy: incomplete role rule %v", rule)
		}
		r.inheritance = append(r.inheritance, RoleInheritanceRow{Role: rule[0], Parent: rule[1]})
	}
	return r, nil
}

func (r *repository) GetRolePermissions() ([]RolePermissionRow, error) {
	return r.permissions, nil
}

func (r *repository) GetRoleInheritance() ([]RoleInheritanceRow, error) {
	return r.inheritance, nil
}
