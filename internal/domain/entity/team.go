package entity

// TeamMember is a clinic staff member as exposed by the gateway's team
// endpoint. Doctors from this list are used to resolve appointment
// assignments to display names.
type TeamMember struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	Specialty string `json:"specialty,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// IsDoctor checks whether the member holds a doctor role
func (m *TeamMember) IsDoctor() bool {
	return m.Role == "doctor"
}
