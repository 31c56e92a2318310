package entity

import "time"

// SeedEvents returns the sample dataset the registry falls back to on first
// run or when the persisted collection cannot be decoded.
func SeedEvents() []*Event {
	return []*Event{
		{
			ID:               "1",
			Title:            "TechFest 2024",
			Description:      "Annual technology festival featuring workshops, competitions, and networking opportunities.",
			Category:         CategoryFest,
			Date:             "2024-03-15",
			Time:             "09:00",
			Location:         "Main Auditorium",
			Organizer:        "Tech Club",
			OrganizerID:      "1",
			Image:            "https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=800",
			MaxAttendees:     500,
			CurrentAttendees: 234,
			Price:            0,
			Tags:             []string{"Technology", "Innovation", "Networking"},
			Status:           EventStatusApproved,
			Featured:         true,
			CreatedAt:        time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:               "2",
			Title:            "React Workshop",
			Description:      "Learn modern React development with hooks, context, and best practices.",
			Category:         CategoryWorkshop,
			Date:             "2024-03-20",
			Time:             "14:00",
			Location:         "Computer Lab 1",
			Organizer:        "Web Dev Society",
			OrganizerID:      "2",
			Image:            "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=800",
			MaxAttendees:     50,
			CurrentAttendees: 32,
			Price:            25,
			Tags:             []string{"React", "JavaScript", "Frontend"},
			Status:           EventStatusApproved,
			Featured:         false,
			CreatedAt:        time.Date(2024, 1, 20, 15, 30, 0, 0, time.UTC),
		},
		{
			ID:               "3",
			Title:            "HackathonX",
			Description:      "48-hour coding marathon to build innovative solutions for real-world problems.",
			Category:         CategoryHackathon,
			Date:             "2024-04-05",
			Time:             "18:00",
			Location:         "Innovation Hub",
			Organizer:        "Coding Club",
			OrganizerID:      "3",
			Image:            "https://images.unsplash.com/photo-1504384308090-c894fdcc538d?w=800",
			MaxAttendees:     200,
			CurrentAttendees: 156,
			Price:            50,
			Tags:             []string{"Coding", "Innovation", "Competition"},
			Status:           EventStatusApproved,
			Featured:         true,
			CreatedAt:        time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}
