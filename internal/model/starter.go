package model

import "gorm.io/datatypes"

// StarterProjects returns the fixed set inserted into an empty collection.
func StarterProjects() []Project {
	return []Project{
		{
			ID:          1,
			Title:       "Wedding Photography",
			Description: "Capturing beautiful moments of couples on their special day.",
			Image:       "https://images.unsplash.com/photo-1519741497674-611481863552",
			Images: datatypes.NewJSONSlice([]string{
				"https://images.unsplash.com/photo-1519741497674-611481863552",
				"https://images.unsplash.com/photo-1511285560929-80b456fea0bc",
				"https://images.unsplash.com/photo-1464023790935-0f9d2e48ad5b",
				"https://images.unsplash.com/photo-1537633552985-df8429e8048b",
			}),
			Year:     "2024",
			Details:  datatypes.NewJSONSlice([]string{"Full Day Coverage", "400+ Photos", "Premium Editing"}),
			Category: "Wedding",
		},
		{
			ID:          2,
			Title:       "Concert Photography",
			Description: "High-energy shots from live music events, capturing performers and audiences in their most authentic moments.",
			Image:       "https://images.unsplash.com/photo-1501281668745-f7f57925c3b4",
			Images: datatypes.NewJSONSlice([]string{
				"https://images.unsplash.com/photo-1501281668745-f7f57925c3b4",
			}),
			Year:     "2024",
			Details:  datatypes.NewJSONSlice([]string{"Stage Photography", "Crowd Shots", "Backstage Access"}),
			Category: "Events",
		},
		{
			ID:          3,
			Title:       "Nature Landscapes",
			Description: "Scenic views from around Sri Lanka, from misty mountains to pristine beaches.",
			Image:       "https://images.unsplash.com/photo-1502082553048-f009c37129b9",
			Images: datatypes.NewJSONSlice([]string{
				"https://images.unsplash.com/photo-1502082553048-f009c37129b9",
			}),
			Year:     "2023",
			Details:  datatypes.NewJSONSlice([]string{"Golden Hour Shots", "Aerial Views", "Location Scouting"}),
			Category: "Nature",
		},
	}
}
