// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/survey-intake/models"
	"github.com/danielhkuo/survey-intake/testutil"
)

func newRegistrationStore(t *testing.T) *RegistrationStore {
	t.Helper()
	s := NewRegistrationStore(testutil.SetupTestDB(t))
	s.now = stepClock(time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC))
	return s
}

func testRegistration(name, email string) models.UserRegistration {
	return models.UserRegistration{
		Name:        name,
		Email:       email,
		PhoneNumber: "+15550001111",
	}
}

func TestSaveUser(t *testing.T) {
	s := newRegistrationStore(t)
	ctx := context.Background()

	id, err := s.SaveUser(ctx, testRegistration("Ada", "ada@example.com"), models.UserTypeUser)
	if err != nil {
		t.Fatalf("SaveUser() error = %v", err)
	}
	if id <= 0 {
		t.Errorf("expected positive id, got %d", id)
	}

	// Same email, same type
	_, err = s.SaveUser(ctx, testRegistration("Ada again", "ada@example.com"), models.UserTypeUser)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate user: err = %v, want ErrDuplicate", err)
	}

	// Same email may also register as a creator
	if _, err := s.SaveUser(ctx, testRegistration("Ada", "ada@example.com"), models.UserTypeCreator); err != nil {
		t.Errorf("creator registration rejected: %v", err)
	}
}

func TestGetAllUsersAndCreators(t *testing.T) {
	s := newRegistrationStore(t)
	ctx := context.Background()

	reg := testRegistration("Grace", "grace@example.com")
	reg.Gender = ptr("female")
	reg.InterestReason = ptr("writing")

	s.SaveUser(ctx, reg, models.UserTypeUser)
	s.SaveUser(ctx, testRegistration("Linus", "linus@example.com"), models.UserTypeUser)
	s.SaveUser(ctx, testRegistration("Ken", "ken@example.com"), models.UserTypeCreator)

	users, err := s.GetAllUsers(ctx)
	if err != nil {
		t.Fatalf("GetAllUsers() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Email != "linus@example.com" {
		t.Errorf("newest user first: got %s", users[0].Email)
	}
	if users[1].Gender == nil || *users[1].Gender != "female" || users[1].Profession != nil {
		t.Errorf("optional fields not round-tripped: %+v", users[1])
	}

	creators, err := s.GetAllCreators(ctx)
	if err != nil {
		t.Fatalf("GetAllCreators() error = %v", err)
	}
	if len(creators) != 1 || creators[0].UserType != models.UserTypeCreator {
		t.Errorf("unexpected creators: %+v", creators)
	}
}

func TestSaveNotInterested(t *testing.T) {
	s := newRegistrationStore(t)
	ctx := context.Background()

	sub := models.NotInterestedSubmission{
		Name:                "Bob",
		Email:               "bob@example.com",
		PhoneNumber:         "5551234567",
		NotInterestedReason: ptr("no time"),
	}
	if _, err := s.SaveNotInterested(ctx, sub); err != nil {
		t.Fatalf("SaveNotInterested() error = %v", err)
	}
	if _, err := s.SaveNotInterested(ctx, sub); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate: err = %v, want ErrDuplicate", err)
	}

	all, err := s.GetAllNotInterested(ctx)
	if err != nil {
		t.Fatalf("GetAllNotInterested() error = %v", err)
	}
	if len(all) != 1 || all[0].NotInterestedReason == nil || *all[0].NotInterestedReason != "no time" {
		t.Errorf("unexpected records: %+v", all)
	}
}

func TestGetAllNotInterested_Unavailable(t *testing.T) {
	d := testutil.SetupTestDB(t)
	s := NewRegistrationStore(d)
	testutil.DropTable(t, d, "not_interested_users")

	records, err := s.GetAllNotInterested(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("expected empty default, got %#v", records)
	}
}

func TestGetUserAnalytics(t *testing.T) {
	s := newRegistrationStore(t)
	ctx := context.Background()

	a, err := s.GetUserAnalytics(ctx)
	if err != nil {
		t.Fatalf("GetUserAnalytics() error = %v", err)
	}
	if a.TotalUsers != 0 || len(a.GenderDistribution) != 0 {
		t.Errorf("empty analytics = %+v", a)
	}

	female := testRegistration("A", "a@example.com")
	female.Gender = ptr("female")
	female.Profession = ptr("writer")
	s.SaveUser(ctx, female, models.UserTypeUser)

	male := testRegistration("B", "b@example.com")
	male.Gender = ptr("male")
	male.Profession = ptr("writer")
	s.SaveUser(ctx, male, models.UserTypeCreator)

	s.SaveUser(ctx, testRegistration("C", "c@example.com"), models.UserTypeUser)
	s.SaveNotInterested(ctx, models.NotInterestedSubmission{Name: "D", Email: "d@example.com", PhoneNumber: "5550000000"})

	a, err = s.GetUserAnalytics(ctx)
	if err != nil {
		t.Fatalf("GetUserAnalytics() error = %v", err)
	}
	if a.TotalUsers != 2 || a.TotalCreators != 1 || a.TotalNotInterested != 1 {
		t.Errorf("totals = %+v", a)
	}
	if a.GenderDistribution["female"] != 1 || a.GenderDistribution["male"] != 1 || a.GenderDistribution[unspecified] != 1 {
		t.Errorf("gender_distribution = %v", a.GenderDistribution)
	}
	if a.ProfessionDistribution["writer"] != 2 || a.ProfessionDistribution[unspecified] != 1 {
		t.Errorf("profession_distribution = %v", a.ProfessionDistribution)
	}
}
