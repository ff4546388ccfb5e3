package domain

import "strings"

// HandleMarker prefixes every username.
const HandleMarker = "@"

// SearchLimit caps user search results.
const SearchLimit = 20

// PublicProfile is the part of a user other users may see.
type PublicProfile struct {
	ID        int64
	Username  string
	FirstName *string
	LastName  *string
	AvatarURL *string
}

type User struct {
	PublicProfile
	Email    *string
	Language string
	Theme    string
}

// NormalizeHandle trims s and prepends the handle marker unless it is already there.
func NormalizeHandle(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, HandleMarker) {
		return s
	}
	return HandleMarker + s
}

// ProfileUpdate is the sparse set of mutable profile fields. A nil field is left untouched.
type ProfileUpdate struct {
	Username  *string
	FirstName *string
	LastName  *string
	Email     *string
	AvatarURL *string
	Language  *string
	Theme     *string
}

// Assignment is one column = value pair of an UPDATE.
type Assignment struct {
	Column string
	Value  any
}

// Assignments lists the column updates for the present fields in a stable order.
// The username is normalized to a handle.
func (p ProfileUpdate) Assignments() []Assignment {
	var out []Assignment
	add := func(column string, v *string) {
		if v != nil {
			out = append(out, Assignment{Column: column, Value: *v})
		}
	}
	if p.Username != nil {
		handle := NormalizeHandle(*p.Username)
		add("username", &handle)
	}
	add("first_name", p.FirstName)
	add("last_name", p.LastName)
	add("email", p.Email)
	add("avatar_url", p.AvatarURL)
	add("language", p.Language)
	add("theme", p.Theme)
	return out
}

func (p ProfileUpdate) Empty() bool {
	return len(p.Assignments()) == 0
}

// BlockEdge is directed: Blocker hides Blocked from its own listings.
type BlockEdge struct {
	BlockerID int64
	BlockedID int64
}
