package models

// ViewMode scopes which repositories the dashboard shows: the authenticated
// user's own repositories, or those of one organization. Exactly one mode is
// current at any time.
type ViewMode struct {
	Org string // empty means personal mode
}

// Personal is the default view mode
var Personal = ViewMode{}

// OrgMode returns the view mode for an organization
func OrgMode(name string) ViewMode {
	return ViewMode{Org: name}
}

// IsPersonal reports whether this is the personal (non-organization) mode
func (m ViewMode) IsPersonal() bool {
	return m.Org == ""
}

// Key returns the stable cache identity for this mode
func (m ViewMode) Key() string {
	if m.IsPersonal() {
		return "personal"
	}
	return "org:" + m.Org
}

// String returns the display name shown in the dashboard header
func (m ViewMode) String() string {
	if m.IsPersonal() {
		return "Personal"
	}
	return m.Org
}
