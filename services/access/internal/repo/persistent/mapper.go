package persistent

import (
	"peergram/pkg/models"
	"peergram/services/access/internal/entity"
)

func ToIdentityEntity(m *models.Identity) *entity.Identity {
	if m == nil {
		return nil
	}

	return &entity.Identity{
		ID:          m.ID,
		Email:       m.Email,
		Username:    m.Username,
		Password:    m.Password,
		DisplayName: m.DisplayName,
		IsAdmin:     m.IsAdmin,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToIdentityModel(e *entity.Identity) *models.Identity {
	if e == nil {
		return nil
	}

	return &models.Identity{
		ID:          e.ID,
		Email:       e.Email,
		Username:    e.Username,
		Password:    e.Password,
		DisplayName: e.DisplayName,
		IsAdmin:     e.IsAdmin,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToProfileEntity(m *models.Profile) *entity.Profile {
	if m == nil {
		return nil
	}

	links := make([]entity.Link, len(m.Links))
	for i, l := range m.Links {
		links[i] = entity.Link{Label: l.Label, URL: l.URL}
	}

	return &entity.Profile{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		Bio:            m.Bio,
		Website:        m.Website,
		AvatarURL:      m.AvatarURL,
		IsPrivate:      m.IsPrivate,
		IsVerified:     m.IsVerified,
		IsProfessional: m.IsProfessional,
		Links:          links,
		ProfileViews:   m.ProfileViews,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToProfileModel(e *entity.Profile) *models.Profile {
	if e == nil {
		return nil
	}

	links := make([]models.Link, len(e.Links))
	for i, l := range e.Links {
		links[i] = models.Link{Label: l.Label, URL: l.URL}
	}

	return &models.Profile{
		ID:             e.ID,
		OwnerID:        e.OwnerID,
		Bio:            e.Bio,
		Website:        e.Website,
		AvatarURL:      e.AvatarURL,
		IsPrivate:      e.IsPrivate,
		IsVerified:     e.IsVerified,
		IsProfessional: e.IsProfessional,
		Links:          links,
		ProfileViews:   e.ProfileViews,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func ToFollowEdgeEntity(m *models.FollowEdge) *entity.FollowEdge {
	if m == nil {
		return nil
	}

	return &entity.FollowEdge{
		ID:          m.ID,
		FollowerID:  m.FollowerID,
		FollowingID: m.FollowingID,
		CreatedAt:   m.CreatedAt,
	}
}

func ToRoleEntity(m *models.Role) *entity.Role {
	if m == nil {
		return nil
	}

	perms := make([]entity.Permission, len(m.Permissions))
	for i, p := range m.Permissions {
		perms[i] = entity.Permission{
			ID:       p.ID,
			Resource: p.Resource.Name,
			Level:    entity.AccessLevel(p.Level),
		}
	}

	return &entity.Role{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Permissions: perms,
		CreatedAt:   m.CreatedAt,
	}
}

func ToResourceEntity(m *models.Resource) *entity.Resource {
	if m == nil {
		return nil
	}

	return &entity.Resource{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}
