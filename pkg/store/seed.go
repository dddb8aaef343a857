package store

import (
	"time"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

func strPtr(s string) *string { return &s }

func bloodType(group model.BloodGroup, rh model.RhFactor) *model.BloodType {
	return &model.BloodType{Group: group, RhFactor: rh}
}

// SeedDonorUser is the demo donor account the CLI and server act as by
// default
const SeedDonorUserID = "donor-123"

// SeedRequesterUser is the demo requester account
const SeedRequesterUserID = "requester-456"

// Seed populates the store with the demo dataset: donors, open requests,
// upcoming drives, donation history, the badge catalog and one existing
// chat session.
func Seed(s *Store, now time.Time) {
	janeDoe := model.User{
		ID:          SeedDonorUserID,
		Name:        "Jane Doe",
		Email:       "jane.doe@example.com",
		Location:    "Metropolis",
		Role:        model.RoleDonor,
		BloodType:   bloodType(model.BloodGroupO, model.RhPositive),
		IsAvailable: true,
		IsVerified:  true,
		Badges:      []string{"first-donation", "five-donations"},
		Points:      250,
	}

	hospital := model.User{
		ID:         SeedRequesterUserID,
		Name:       "Metropolis General Hospital",
		Email:      "contact@mgh.org",
		Location:   "Metropolis",
		Role:       model.RoleRequester,
		IsVerified: true,
		Points:     0,
	}

	s.Donors.Add(janeDoe)
	s.Donors.Add(model.User{
		ID:          "donor-2",
		Name:        "John Smith",
		Email:       "john.smith@example.com",
		Location:    "Metropolis",
		Role:        model.RoleDonor,
		BloodType:   bloodType(model.BloodGroupA, model.RhNegative),
		IsAvailable: true,
		IsVerified:  true,
		Badges:      []string{"first-donation", "five-donations", "ten-donations"},
		Points:      500,
	})
	s.Donors.Add(model.User{
		ID:             "donor-3",
		Name:           "Emily Johnson",
		Email:          "emily.j@example.com",
		Location:       "Gotham City",
		Role:           model.RoleDonor,
		BloodType:      bloodType(model.BloodGroupB, model.RhPositive),
		IsAvailable:    false,
		DeferralReason: strPtr("Recently traveled"),
		IsVerified:     false,
		Badges:         []string{"first-donation"},
		Points:         50,
	})
	s.Donors.Add(model.User{
		ID:          "donor-4",
		Name:        "Michael Brown",
		Email:       "michael.b@example.com",
		Location:    "Metropolis",
		Role:        model.RoleDonor,
		BloodType:   bloodType(model.BloodGroupAB, model.RhPositive),
		IsAvailable: true,
		IsVerified:  true,
		Badges:      []string{"first-donation"},
		Points:      100,
	})

	for _, donor := range s.Donors.List() {
		s.Users.Add(donor)
	}
	s.Users.Add(hospital)

	s.Requests.Add(model.DonationRequest{
		ID:            "req-1",
		Requester:     hospital,
		BloodType:     model.BloodType{Group: model.BloodGroupO, RhFactor: model.RhNegative},
		UnitsRequired: 2,
		Location:      "Metropolis General Hospital",
		Urgency:       model.UrgencyCritical,
		CreatedAt:     now.Add(-2 * time.Hour),
		Note:          "Emergency surgery for a trauma patient. O-negative blood is urgently needed.",
		PointsOffered: 150,
	})
	cityBloodBank := hospital
	cityBloodBank.Name = "City Blood Bank"
	s.Requests.Add(model.DonationRequest{
		ID:            "req-2",
		Requester:     cityBloodBank,
		BloodType:     model.BloodType{Group: model.BloodGroupA, RhFactor: model.RhPositive},
		UnitsRequired: 5,
		Location:      "City Blood Bank",
		Urgency:       model.UrgencyHigh,
		CreatedAt:     now.Add(-24 * time.Hour),
		Note:          "Stock levels for A+ are critically low. All donors are welcome.",
		PointsOffered: 100,
	})
	s.Requests.Add(model.DonationRequest{
		ID:            "req-3",
		Requester:     hospital,
		BloodType:     model.BloodType{Group: model.BloodGroupB, RhFactor: model.RhNegative},
		UnitsRequired: 1,
		Location:      "Metropolis General Hospital",
		Urgency:       model.UrgencyMedium,
		CreatedAt:     now.Add(-48 * time.Hour),
		PointsOffered: 75,
	})

	s.Events.Add(model.BloodDriveEvent{
		ID:          "event-1",
		Title:       "Community Heroes Blood Drive",
		Description: "Join us and be a hero! Every donation saves lives. We will have snacks and music.",
		Location:    "Metropolis City Hall",
		Date:        now.Add(7 * 24 * time.Hour),
		Organizer:   "Metropolis Red Cross",
	})
	s.Events.Add(model.BloodDriveEvent{
		ID:          "event-2",
		Title:       "University Challenge Blood Drive",
		Description: "Support your university and save lives! The college with the most donations wins bragging rights.",
		Location:    "Metropolis University Campus",
		Date:        now.Add(14 * 24 * time.Hour),
		Organizer:   "Metropolis University",
	})

	s.History.Append(model.Donation{
		ID:        "hist-1",
		DonorID:   SeedDonorUserID,
		Date:      time.Date(2024, 5, 20, 10, 0, 0, 0, time.Local),
		Location:  "Metropolis General Hospital",
		BloodType: model.BloodType{Group: model.BloodGroupO, RhFactor: model.RhPositive},
		Units:     1,
		Status:    model.DonationCompleted,
	})
	s.History.Append(model.Donation{
		ID:        "hist-2",
		DonorID:   SeedDonorUserID,
		Date:      time.Date(2024, 1, 15, 14, 30, 0, 0, time.Local),
		Location:  "City Blood Bank",
		BloodType: model.BloodType{Group: model.BloodGroupO, RhFactor: model.RhPositive},
		Units:     1,
		Status:    model.DonationCompleted,
	})
	s.History.Append(model.Donation{
		ID:        "hist-3",
		DonorID:   SeedDonorUserID,
		Date:      now.Add(5 * 24 * time.Hour),
		Location:  "Appointment with John Smith",
		BloodType: model.BloodType{Group: model.BloodGroupA, RhFactor: model.RhNegative},
		Units:     1,
		Status:    model.DonationScheduled,
	})

	s.Badges = NewBadgeCatalog([]model.Badge{
		{ID: "first-donation", Name: "First Drop", Description: "You made your first donation!", Icon: "medal"},
		{ID: "five-donations", Name: "Life Saver", Description: "You have donated 5 times.", Icon: "star"},
		{ID: "ten-donations", Name: "Community Hero", Description: "You have donated 10 times.", Icon: "heart"},
	})

	s.Sessions.Register(&model.ChatSession{
		ID:           "chat-session-1",
		Participants: [2]model.User{hospital, janeDoe},
		Messages: []model.ChatMessage{
			{
				ID:        "msg-1",
				SenderID:  SeedRequesterUserID,
				Text:      "Hello Jane, we have an urgent need for O+ blood at Metropolis General. Would you be available to donate today?",
				Timestamp: now.Add(-10 * time.Minute),
			},
			{
				ID:        "msg-2",
				SenderID:  SeedDonorUserID,
				Text:      "Hi there! I am available. What time would be best?",
				Timestamp: now.Add(-8 * time.Minute),
			},
			{
				ID:        "msg-3",
				SenderID:  SeedRequesterUserID,
				Text:      "That's wonderful to hear. Anytime before 5 PM would be a great help to the patient.",
				Timestamp: now.Add(-5 * time.Minute),
			},
		},
	})
}
