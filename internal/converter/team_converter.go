package converter

import (
	"strings"

	"clinic-crm-service/internal/domain/entity"
	"clinic-crm-service/internal/gateway"
)

// TeamMemberToView converts a gateway staff record.
func TeamMemberToView(member *gateway.TeamMember) *entity.TeamMember {
	if member == nil || member.ID == "" {
		return nil
	}

	return &entity.TeamMember{
		ID:        member.ID,
		Name:      strings.TrimSpace(member.FullName),
		Role:      strings.ToLower(strings.TrimSpace(member.Role)),
		Specialty: member.Specialty,
		Email:     member.Email,
		Phone:     member.Phone,
	}
}

// TeamMembersToViews converts a slice of staff records, skipping invalid
// entries.
func TeamMembersToViews(members []gateway.TeamMember) []entity.TeamMember {
	views := make([]entity.TeamMember, 0, len(members))
	for i := range members {
		if view := TeamMemberToView(&members[i]); view != nil {
			views = append(views, *view)
		}
	}
	return views
}
