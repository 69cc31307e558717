package space

import "time"

// DefaultName is the name of the synthesized fallback space.
const DefaultName = "Default"

// RestrictionConfig is the set of app/category selectors a space enforces
// while a session is blocking. The engine passes it through to the
// restriction gateway without interpreting it.
type RestrictionConfig struct {
	Apps       []string `json:"apps,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// Empty reports whether the config selects nothing.
func (c RestrictionConfig) Empty() bool {
	return len(c.Apps) == 0 && len(c.Categories) == 0
}

// Space is a named context (e.g. a classroom) with its own restriction
// configuration, an optional roster of assigned usernames, and an optional
// physical tag identifier.
type Space struct {
	ID                        string            `json:"id"`
	Name                      string            `json:"name"`
	Restriction               RestrictionConfig `json:"restriction"`
	Icon                      string            `json:"icon,omitempty"`
	AssignedUsers             []string          `json:"assigned_users,omitempty"`
	UsersChooseOwnRestriction bool              `json:"users_choose_own_restriction"`
	TagID                     string            `json:"tag_id,omitempty"`
	CreatedAt                 time.Time         `json:"created_at"`
}

// HasRoster reports whether the space restricts entry to assigned users.
// A nil roster means anyone may enter; an empty non-nil roster admits no one.
func (s *Space) HasRoster() bool {
	return s.AssignedUsers != nil
}

// Assigned reports whether the username is on the roster.
func (s *Space) Assigned(username string) bool {
	for _, u := range s.AssignedUsers {
		if u == username {
			return true
		}
	}
	return false
}

// UpdateRequest is a sparse patch: only non-nil fields are applied.
type UpdateRequest struct {
	Name                      *string            `json:"name,omitempty"`
	Restriction               *RestrictionConfig `json:"restriction,omitempty"`
	Icon                      *string            `json:"icon,omitempty"`
	AssignedUsers             *[]string          `json:"assigned_users,omitempty"`
	UsersChooseOwnRestriction *bool              `json:"users_choose_own_restriction,omitempty"`
	TagID                     *string            `json:"tag_id,omitempty"`
}
