package model

import "gorm.io/datatypes"

// ProjectPatch is a partial update of a Project. Nil fields are left untouched.
type ProjectPatch struct {
	ID          *int      `json:"id,omitempty"`
	Title       *string   `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Year        *string   `json:"year,omitempty" validate:"omitempty,max=16"`
	Category    *string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Image       *string   `json:"image,omitempty" validate:"omitempty,url,max=1024"`
	Images      *[]string `json:"images,omitempty" validate:"omitempty,dive,url,max=1024"`
	Details     *[]string `json:"details,omitempty" validate:"omitempty,dive,max=255"`
}

// Empty reports whether the patch carries no mutable field.
func (p *ProjectPatch) Empty() bool {
	return len(p.Fields()) == 0
}

// Fields returns the columns to overwrite, keyed by column name.
// When images is set and image is not, image follows images[0].
func (p *ProjectPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Year != nil {
		fields["year"] = *p.Year
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	if p.Images != nil {
		fields["images"] = datatypes.NewJSONSlice(*p.Images)
		if p.Image == nil && len(*p.Images) > 0 {
			fields["image"] = (*p.Images)[0]
		}
	}
	if p.Details != nil {
		fields["details"] = datatypes.NewJSONSlice(*p.Details)
	}
	return fields
}
