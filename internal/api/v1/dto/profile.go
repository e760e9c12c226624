package dto

import "time"

// ProfileUpdateDTO carries a partial profile update. Absent fields are left
// untouched; identity fields are not representable here at all.
type ProfileUpdateDTO struct {
	FullName     *string `json:"full_name,omitempty" validate:"omitempty,max=200"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	UserType     *string `json:"user_type,omitempty" validate:"omitempty,oneof=Student 'Working Professional' 'Law Firm' Intern"`
	Organization *string `json:"organization,omitempty" validate:"omitempty,max=200"`
	Designation  *string `json:"designation,omitempty" validate:"omitempty,max=200"`
	Bio          *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Timezone     *string `json:"timezone,omitempty" validate:"omitempty,max=64"`
	Language     *string `json:"language,omitempty" validate:"omitempty,max=16"`
}

// Fields returns the set columns as a column→value map for the repository's
// allow-list update.
func (d *ProfileUpdateDTO) Fields() map[string]any {
	fields := make(map[string]any)
	put := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	put("full_name", d.FullName)
	put("phone", d.Phone)
	put("user_type", d.UserType)
	put("organization", d.Organization)
	put("designation", d.Designation)
	put("bio", d.Bio)
	put("location", d.Location)
	put("timezone", d.Timezone)
	put("language", d.Language)
	return fields
}

// ProfileResponseDTO is returned in API responses
type ProfileResponseDTO struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	FullName     *string   `json:"full_name,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	UserType     *string   `json:"user_type,omitempty"`
	Organization *string   `json:"organization,omitempty"`
	Designation  *string   `json:"designation,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Timezone     string    `json:"timezone"`
	Language     string    `json:"language"`
	UpdatedAt    time.Time `json:"updated_at"`
}
