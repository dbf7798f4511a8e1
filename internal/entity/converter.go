package entity

// ToProfile converts a stored user into its public view.
func ToProfile(user *DbUser) UserProfile {
	if user == nil {
		return UserProfile{}
	}
	return UserProfile{ID: user.ID, Email: user.Email, Name: user.Name}
}

// ToSummary converts a stored user into the staff view.
func ToSummary(user *DbUser) UserSummary {
	if user == nil {
		return UserSummary{}
	}
	return UserSummary{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// ToResources converts stored attributes, never returning nil so that an empty
// list serialises as [].
func ToResources(items []DbResource) []Resource {
	out := make([]Resource, 0, len(items))
	for _, item := range items {
		out = append(out, Resource{ID: item.ID, Name: item.Name})
	}
	return out
}
