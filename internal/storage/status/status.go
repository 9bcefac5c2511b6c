package status

// Status is the soft lifecycle state of accounts, categories and subcategories.
// Inactive records stay in place and are hidden from default listings.
type Status int8

const (
	Active Status = iota
	Inactive
)

// FromActive maps the persisted is_active column to a Status.
func FromActive(isActive bool) Status {
	if isActive {
		return Active
	}
	return Inactive
}

func (s Status) IsActive() bool {
	return s == Active
}

func (s Status) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}
