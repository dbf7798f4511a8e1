package entity

// UserUpdates 用户更新字段
type UserUpdates struct {
	Name         *string
	PasswordHash *string
	IsActive     *bool
	IsStaff      *bool
	IsSuperuser  *bool
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	if u.IsStaff != nil {
		updates["is_staff"] = *u.IsStaff
	}
	if u.IsSuperuser != nil {
		updates["is_superuser"] = *u.IsSuperuser
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
