// ABOUTME: Profile form controller with dirty tracking and save semantics
// ABOUTME: Stages local edits separately from the committed session user

package profile

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/vitoteks-art/property-rental-platform/internal/client"
	"github.com/vitoteks-art/property-rental-platform/internal/phone"
	"github.com/vitoteks-art/property-rental-platform/internal/session"
)

// Updater is the backend surface the form depends on
type Updater interface {
	UpdateMe(ctx context.Context, accessToken string, update client.ProfileUpdate) (*client.User, error)
}

// ErrNotLoggedIn is returned by Save when no access token is held
var ErrNotLoggedIn = errors.New("not logged in")

// Form holds a working copy of the editable profile fields. The committed
// value lives in the session store; edits stay local until Save commits
// them back through the backend. The sync is one-directional: committed
// state resets the working copy, never the other way around.
//
// Save runs off the UI goroutine and the session subscription resets the
// form from whichever goroutine committed, so every field access goes
// through the mutex.
type Form struct {
	store *session.Store
	api   Updater

	mu           sync.Mutex
	fullName     string
	phoneCountry phone.Country
	phoneLocal   string
	timezone     string
	bio          string

	dirty   bool
	saveErr string
}

// New creates a form controller bound to the session store. The form
// subscribes to the store so any committed user change, including the one
// caused by its own successful save, resets the working copy.
func New(store *session.Store, api Updater) *Form {
	f := &Form{store: store, api: api}
	f.Reset()
	store.Subscribe(f.Reset)
	return f
}

// Reset re-seeds the working copy from the committed session user and
// clears the dirty flag and any save error
func (f *Form) Reset() {
	user := f.store.Snapshot().User

	f.mu.Lock()
	defer f.mu.Unlock()
	if user == nil {
		f.fullName = ""
		f.phoneCountry = phone.DefaultCountry
		f.phoneLocal = ""
		f.timezone = ""
		f.bio = ""
	} else {
		f.fullName = combineName(user.FirstName, user.LastName)
		f.phoneCountry, f.phoneLocal = phone.Parse(user.Phone)
		f.timezone = user.Timezone
		f.bio = user.Bio
	}
	f.dirty = false
	f.saveErr = ""
}

// Discard throws away local edits, restoring the committed values
func (f *Form) Discard() {
	f.Reset()
}

// Field accessors

func (f *Form) FullName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fullName
}

func (f *Form) PhoneCountry() phone.Country {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phoneCountry
}

func (f *Form) PhoneLocal() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phoneLocal
}

func (f *Form) Timezone() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.timezone
}

func (f *Form) Bio() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bio
}

func (f *Form) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty
}

func (f *Form) SaveError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saveErr
}

// Field setters mark the form dirty

func (f *Form) SetFullName(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fullName = v
	f.dirty = true
}

func (f *Form) SetPhoneCountry(v phone.Country) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phoneCountry = v
	f.dirty = true
}

func (f *Form) SetPhoneLocal(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phoneLocal = v
	f.dirty = true
}

func (f *Form) SetTimezone(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timezone = v
	f.dirty = true
}

func (f *Form) SetBio(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bio = v
	f.dirty = true
}

// Update builds the PATCH payload from the fields the form owns.
// Username, email, and role are never included.
func (f *Form) Update() client.ProfileUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateLocked()
}

// updateLocked builds the payload; callers hold f.mu
func (f *Form) updateLocked() client.ProfileUpdate {
	first, last := splitFullName(f.fullName)
	return client.ProfileUpdate{
		FirstName: first,
		LastName:  last,
		Phone:     phone.Format(f.phoneCountry, f.phoneLocal),
		Timezone:  f.timezone,
		Bio:       f.bio,
	}
}

// Save commits the working copy through the backend. On success the
// returned profile replaces the session user, which resets this form via
// the subscription (clearing dirty). On failure the working copy and the
// dirty flag are preserved so the user's edits are not lost, and the
// error message is recorded for display.
//
// The mutex is not held across the network call; a snapshot of the
// payload is taken under lock and the result is applied under lock.
func (f *Form) Save(ctx context.Context) error {
	token := f.store.Snapshot().Access
	if token == "" {
		return ErrNotLoggedIn
	}

	f.mu.Lock()
	f.saveErr = ""
	update := f.updateLocked()
	f.mu.Unlock()

	updated, err := f.api.UpdateMe(ctx, token, update)
	if err != nil {
		f.mu.Lock()
		f.saveErr = err.Error()
		f.mu.Unlock()
		return err
	}

	f.store.SetUser(updated)
	return nil
}

// combineName joins first and last names, dropping empty parts
func combineName(first, last string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{first, last} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// splitFullName splits an edited full name back into first and last.
// The last whitespace-separated word becomes the last name; everything
// before it is the first name.
func splitFullName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}
