package httpdto

import (
	"messenger-api/internal/domain"

	"github.com/samber/lo"
)

const (
	ActionBlock   = "block"
	ActionUnblock = "unblock"
)

// SearchUsersQuery holds query parameters for GET /v1/users
type SearchUsersQuery struct {
	Search string `form:"search" binding:"required,notblank"`
}

// UpdateProfileRequest is used for PUT /v1/users. Absent fields are left untouched.
type UpdateProfileRequest struct {
	UserID    int64   `json:"userId"`
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	AvatarURL *string `json:"avatarUrl"`
	Language  *string `json:"language"`
	Theme     *string `json:"theme"`
}

func (r UpdateProfileRequest) ToDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		AvatarURL: r.AvatarURL,
		Language:  r.Language,
		Theme:     r.Theme,
	}
}

// BlockRequest is used for POST /v1/users
type BlockRequest struct {
	Action    string `json:"action"`
	BlockerID int64  `json:"blockerId"`
	BlockedID int64  `json:"blockedId"`
}

func (r BlockRequest) Edge() domain.BlockEdge {
	return domain.BlockEdge{BlockerID: r.BlockerID, BlockedID: r.BlockedID}
}

// PublicUserDTO is one row of GET /v1/users
type PublicUserDTO struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	AvatarURL *string `json:"avatar_url"`
}

type SearchUsersResponse struct {
	Users []PublicUserDTO `json:"users"`
}

// UserDTO is the full profile returned after an update.
type UserDTO struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	AvatarURL *string `json:"avatar_url"`
	Language  string  `json:"language"`
	Theme     string  `json:"theme"`
}

type UpdateProfileResponse struct {
	User UserDTO `json:"user"`
}

func FromPublicProfile(p domain.PublicProfile) PublicUserDTO {
	return PublicUserDTO{
		ID:        p.ID,
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		AvatarURL: p.AvatarURL,
	}
}

func FromPublicProfiles(users []domain.PublicProfile) []PublicUserDTO {
	return lo.Map(users, func(p domain.PublicProfile, _ int) PublicUserDTO {
		return FromPublicProfile(p)
	})
}

func FromUser(u domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.AvatarURL,
		Language:  u.Language,
		Theme:     u.Theme,
	}
}
