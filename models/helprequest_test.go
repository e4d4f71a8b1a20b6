package models

import (
	"strings"
	"testing"
)

func validInput() HelpRequestInput {
	return HelpRequestInput{
		RequesterName:      "Asha Rao",
		RequesterEmail:     "asha@example.com",
		RequesterPhone:     "9876543210",
		HelpType:           "Water Supply",
		Description:        "Borewell failure across the colony",
		City:               "Warangal",
		AffectedPopulation: 10,
		CommunityImpact:    strings.Repeat("x", 20),
	}
}

func TestHelpRequestInputValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*HelpRequestInput)
		valid  bool
	}{
		{"minimum thresholds", func(in *HelpRequestInput) {}, true},
		{"population 9", func(in *HelpRequestInput) { in.AffectedPopulation = 9 }, false},
		{"population 10", func(in *HelpRequestInput) { in.AffectedPopulation = 10 }, true},
		{"impact 19 chars", func(in *HelpRequestInput) { in.CommunityImpact = strings.Repeat("x", 19) }, false},
		{"impact 20 chars", func(in *HelpRequestInput) { in.CommunityImpact = strings.Repeat("x", 20) }, true},
		{"missing email", func(in *HelpRequestInput) { in.RequesterEmail = "" }, false},
		{"bad email", func(in *HelpRequestInput) { in.RequesterEmail = "not-an-email" }, false},
		{"missing city", func(in *HelpRequestInput) { in.City = "" }, false},
	}

	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		err := in.Validate()
		if tc.valid && err != nil {
			t.Errorf("%s: expected valid, got %v", tc.name, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("%s: expected validation error, got nil", tc.name)
		}
	}
}

func TestCanAdvanceHelpStatus(t *testing.T) {
	cases := []struct {
		from    HelpStatus
		to      HelpStatus
		allowed bool
	}{
		{HelpPending, HelpAcknowledged, true},
		{HelpPending, HelpInProgress, true},
		{HelpPending, HelpResolved, true},
		{HelpPending, HelpRejected, true},
		{HelpAcknowledged, HelpInProgress, true},
		{HelpAcknowledged, HelpResolved, true},
		{HelpInProgress, HelpResolved, true},
		{HelpInProgress, HelpRejected, true},
		{HelpAcknowledged, HelpPending, false},
		{HelpInProgress, HelpAcknowledged, false},
		{HelpResolved, HelpPending, false},
		{HelpResolved, HelpInProgress, false},
		{HelpResolved, HelpRejected, false},
		{HelpRejected, HelpResolved, false},
		{HelpRejected, HelpPending, false},
		{HelpPending, HelpPending, false},
		{HelpStatus("BOGUS"), HelpResolved, false},
		{HelpPending, HelpStatus("BOGUS"), false},
	}

	for _, tc := range cases {
		if got := CanAdvanceHelpStatus(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanAdvanceHelpStatus(%s, %s) = %v, expected %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestValidHelpStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "ACKNOWLEDGED", "IN_PROGRESS", "RESOLVED", "REJECTED"} {
		if !ValidHelpStatus(s) {
			t.Errorf("ValidHelpStatus(%q) = false, expected true", s)
		}
	}
	for _, s := range []string{"", "ACTIVE", "CLOSED", "pending"} {
		if ValidHelpStatus(s) {
			t.Errorf("ValidHelpStatus(%q) = true, expected false", s)
		}
	}
}
