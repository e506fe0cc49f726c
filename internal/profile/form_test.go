// ABOUTME: Tests for the profile form controller
// ABOUTME: Covers seeding, dirty tracking, name splitting, and save semantics

package profile

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vitoteks-art/property-rental-platform/internal/client"
	"github.com/vitoteks-art/property-rental-platform/internal/phone"
	"github.com/vitoteks-art/property-rental-platform/internal/session"
)

// sessionAPI satisfies session.API for seeding a logged-in store
type sessionAPI struct {
	auth *client.AuthResponse
}

func (s *sessionAPI) Login(ctx context.Context, req client.LoginRequest) (*client.AuthResponse, error) {
	return s.auth, nil
}

func (s *sessionAPI) Register(ctx context.Context, req client.RegisterRequest) (*client.AuthResponse, error) {
	return s.auth, nil
}

func (s *sessionAPI) Me(ctx context.Context, accessToken string) (*client.User, error) {
	return &s.auth.User, nil
}

// fakeUpdater records the last update and returns a canned result
type fakeUpdater struct {
	lastToken  string
	lastUpdate client.ProfileUpdate
	result     *client.User
	err        error
}

func (f *fakeUpdater) UpdateMe(ctx context.Context, accessToken string, update client.ProfileUpdate) (*client.User, error) {
	f.lastToken = accessToken
	f.lastUpdate = update
	return f.result, f.err
}

func loggedInStore(t *testing.T, user client.User) *session.Store {
	t.Helper()
	api := &sessionAPI{auth: &client.AuthResponse{Access: "tok", Refresh: "ref", User: user}}
	store := session.New(api, nil)
	if err := store.Login(context.Background(), client.LoginRequest{}); err != nil {
		t.Fatalf("seed login failed: %v", err)
	}
	return store
}

func landlord() client.User {
	return client.User{
		ID:        1,
		Username:  "ada",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      client.RoleLandlord,
		Phone:     "+44 7700900123",
		Timezone:  "Europe/London",
		Bio:       "Analytical landlady",
	}
}

func TestNew_SeedsFromSessionUser(t *testing.T) {
	store := loggedInStore(t, landlord())
	form := New(store, &fakeUpdater{})

	if form.FullName() != "Ada Lovelace" {
		t.Errorf("expected combined name, got %q", form.FullName())
	}
	if form.PhoneCountry() != phone.GB || form.PhoneLocal() != "7700900123" {
		t.Errorf("expected parsed phone, got %s %q", form.PhoneCountry(), form.PhoneLocal())
	}
	if form.Timezone() != "Europe/London" || form.Bio() != "Analytical landlady" {
		t.Error("expected timezone and bio seeded")
	}
	if form.Dirty() {
		t.Error("freshly seeded form must not be dirty")
	}
}

func TestNew_LoggedOut_SeedsEmpty(t *testing.T) {
	store := session.New(&sessionAPI{auth: &client.AuthResponse{}}, nil)
	form := New(store, &fakeUpdater{})

	if form.FullName() != "" || form.PhoneLocal() != "" {
		t.Error("logged-out form should be empty")
	}
	if form.PhoneCountry() != phone.DefaultCountry {
		t.Errorf("expected default phone country, got %s", form.PhoneCountry())
	}
}

func TestSetters_MarkDirty(t *testing.T) {
	store := loggedInStore(t, landlord())
	form := New(store, &fakeUpdater{})

	form.SetBio("Updated bio")
	if !form.Dirty() {
		t.Error("edit should mark the form dirty")
	}
}

func TestDiscard_RestoresCommittedValues(t *testing.T) {
	store := loggedInStore(t, landlord())
	form := New(store, &fakeUpdater{})

	form.SetFullName("Someone Else")
	form.SetBio("scratch")
	form.Discard()

	if form.FullName() != "Ada Lovelace" || form.Bio() != "Analytical landlady" {
		t.Error("discard should restore committed values")
	}
	if form.Dirty() {
		t.Error("discard should clear the dirty flag")
	}
}

func TestUpdate_SplitsNameOnLastSpace(t *testing.T) {
	tests := []struct {
		name      string
		fullName  string
		wantFirst string
		wantLast  string
	}{
		{"two words", "Ada Lovelace", "Ada", "Lovelace"},
		{"three words", "Ada Mary Lovelace", "Ada Mary", "Lovelace"},
		{"single word", "Ada", "Ada", ""},
		{"empty", "", "", ""},
		{"extra whitespace", "  Ada   Lovelace  ", "Ada", "Lovelace"},
	}

	store := loggedInStore(t, landlord())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := New(store, &fakeUpdater{})
			form.SetFullName(tt.fullName)
			update := form.Update()
			if update.FirstName != tt.wantFirst || update.LastName != tt.wantLast {
				t.Errorf("split %q = (%q, %q), want (%q, %q)",
					tt.fullName, update.FirstName, update.LastName, tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestUpdate_FormatsPhone(t *testing.T) {
	store := loggedInStore(t, landlord())
	form := New(store, &fakeUpdater{})

	form.SetPhoneCountry(phone.NG)
	form.SetPhoneLocal("8012345678")
	if got := form.Update().Phone; got != "+234 8012345678" {
		t.Errorf("expected formatted phone, got %q", got)
	}

	form.SetPhoneLocal("")
	if got := form.Update().Phone; got != "" {
		t.Errorf("cleared phone should serialize empty, got %q", got)
	}
}

func TestSave_NotLoggedIn(t *testing.T) {
	store := session.New(&sessionAPI{auth: &client.AuthResponse{}}, nil)
	form := New(store, &fakeUpdater{})

	if err := form.Save(context.Background()); err != ErrNotLoggedIn {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestSave_Success_CommitsAndResets(t *testing.T) {
	store := loggedInStore(t, landlord())

	updated := landlord()
	updated.FirstName = "Ada Mary"
	updated.Bio = "New bio"
	api := &fakeUpdater{result: &updated}
	form := New(store, api)

	form.SetFullName("Ada Mary Lovelace")
	form.SetBio("New bio")

	if err := form.Save(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if api.lastToken != "tok" {
		t.Errorf("save should use the session token, got %q", api.lastToken)
	}
	if api.lastUpdate.FirstName != "Ada Mary" || api.lastUpdate.LastName != "Lovelace" {
		t.Errorf("unexpected payload: %+v", api.lastUpdate)
	}

	// The returned profile becomes the committed user, which resets the
	// form through its subscription
	if got := store.Snapshot().User.Bio; got != "New bio" {
		t.Errorf("session user should carry the update, got %q", got)
	}
	if form.Dirty() {
		t.Error("successful save should clear the dirty flag")
	}
	if form.SaveError() != "" {
		t.Errorf("successful save should clear the error, got %q", form.SaveError())
	}
}

func TestSave_Failure_KeepsEditsAndDirty(t *testing.T) {
	store := loggedInStore(t, landlord())
	api := &fakeUpdater{err: &client.APIError{Status: 400, Message: "phone: invalid format"}}
	form := New(store, api)

	form.SetPhoneLocal("not-a-number")

	err := form.Save(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !form.Dirty() {
		t.Error("failed save must keep the form dirty")
	}
	if form.PhoneLocal() != "not-a-number" {
		t.Error("failed save must keep the working copy")
	}
	if form.SaveError() != "phone: invalid format" {
		t.Errorf("expected recorded error, got %q", form.SaveError())
	}
	if got := store.Snapshot().User.Phone; got != "+44 7700900123" {
		t.Error("failed save must not touch the committed user")
	}
}

// slowUpdater holds the request long enough for readers to overlap the
// save, mirroring how the TUI runs Save off the event-loop goroutine
type slowUpdater struct {
	result *client.User
}

func (s *slowUpdater) UpdateMe(ctx context.Context, accessToken string, update client.ProfileUpdate) (*client.User, error) {
	time.Sleep(10 * time.Millisecond)
	return s.result, nil
}

func TestSave_ConcurrentWithReaders(t *testing.T) {
	store := loggedInStore(t, landlord())

	updated := landlord()
	updated.Bio = "Committed bio"
	form := New(store, &slowUpdater{result: &updated})
	form.SetBio("edited")

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// The view goroutine keeps polling while the save is in flight
		for {
			select {
			case <-done:
				return
			default:
				_ = form.Dirty()
				_ = form.Bio()
				_ = form.SaveError()
			}
		}
	}()

	if err := form.Save(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(done)
	wg.Wait()

	if form.Bio() != "Committed bio" {
		t.Errorf("expected reseeded bio after save, got %q", form.Bio())
	}
	if form.Dirty() {
		t.Error("successful save should clear the dirty flag")
	}
}

func TestSessionChange_ResetsForm(t *testing.T) {
	store := loggedInStore(t, landlord())
	form := New(store, &fakeUpdater{})

	form.SetBio("work in progress")

	// A committed session change (e.g. re-login) discards local edits
	fresh := landlord()
	fresh.Bio = "Server truth"
	store.SetUser(&fresh)

	if form.Bio() != "Server truth" {
		t.Errorf("form should reseed from the committed user, got %q", form.Bio())
	}
	if form.Dirty() {
		t.Error("reseed should clear the dirty flag")
	}
}
