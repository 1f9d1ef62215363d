package repository

import (
	"strings"

	"curtaincrm/internal/domain"
)

// ProjectPatch holds the project fields a caller asked to change. Nil means
// "leave as is".
type ProjectPatch struct {
	ProjectType *domain.ProjectType
	ClientName  *string
	ProjectName *string
	City        *string
	Contact     *string
	Responsible *string
}

func (p ProjectPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.ProjectType != nil {
		cols["project_type"] = string(*p.ProjectType)
	}
	setString(cols, "client_name", p.ClientName)
	setString(cols, "project_name", p.ProjectName)
	setString(cols, "city", p.City)
	setString(cols, "contact", p.Contact)
	setString(cols, "responsible", p.Responsible)
	return cols
}

type SpacePatch struct {
	Name *string
}

func (p SpacePatch) Columns() map[string]any {
	cols := map[string]any{}
	setString(cols, "name", p.Name)
	return cols
}

type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Role      *domain.UserRole
	IsActive  *bool
}

func (p UserPatch) Columns() map[string]any {
	cols := map[string]any{}
	setString(cols, "first_name", p.FirstName)
	setString(cols, "last_name", p.LastName)
	if p.Email != nil {
		cols["email"] = normalizeEmail(*p.Email)
	}
	if p.Phone != nil {
		cols["phone"] = nullableString(*p.Phone)
	}
	if p.Role != nil {
		cols["role"] = string(*p.Role)
	}
	if p.IsActive != nil {
		cols["is_active"] = *p.IsActive
	}
	return cols
}

func setString(cols map[string]any, column string, v *string) {
	if v != nil {
		cols[column] = strings.TrimSpace(*v)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nullableString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
