package client

import (
	"context"
	"errors"
	"time"

	"go-talentpool-backend/internal/domain"
)

// SyncState tracks where the profile form is in its lifecycle.
type SyncState int

const (
	StateUnauthenticated SyncState = iota
	StateLoading
	StateNoProfile  // create mode, empty form
	StateHasProfile // update mode, form pre-filled
	StateSubmitting
	StateSaved
	StateConflicted // create hit an existing profile; user must re-submit
)

func (s SyncState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateLoading:
		return "loading"
	case StateNoProfile:
		return "no-profile"
	case StateHasProfile:
		return "has-profile"
	case StateSubmitting:
		return "submitting"
	case StateSaved:
		return "saved"
	case StateConflicted:
		return "conflicted"
	default:
		return "unknown"
	}
}

// ErrMissingFields is returned by Submit when name, email or skills are blank.
var ErrMissingFields = errors.New("name, email and skills are required")

// FormData mirrors the edit form. Skills hold the free-text
// comma-separated editing representation, not the canonical sequence.
type FormData struct {
	Name        string
	Email       string
	Skills      string
	Description string
	Grades      string
	ResumeLink  string
}

// SyncController decides whether a profile write is an insert or an
// update, and recovers from losing a create race via the 409 response.
// Its form and profile list are transient copies of server state, stale
// until the next fetch.
type SyncController struct {
	api *Client

	userID   int64
	email    string
	state    SyncState
	updating bool
	form     FormData
	message  string
	profiles []domain.StudentProfile
}

func NewSyncController(api *Client) *SyncController {
	return &SyncController{api: api, state: StateUnauthenticated}
}

func (s *SyncController) State() SyncState                  { return s.state }
func (s *SyncController) UpdateMode() bool                  { return s.updating }
func (s *SyncController) UserID() int64                     { return s.userID }
func (s *SyncController) Form() FormData                    { return s.form }
func (s *SyncController) SetForm(form FormData)             { s.form = form }
func (s *SyncController) Message() string                   { return s.message }
func (s *SyncController) Profiles() []domain.StudentProfile { return s.profiles }

// Login authenticates and immediately loads the user's profile to decide
// between create and update mode.
func (s *SyncController) Login(ctx context.Context, email, password string) error {
	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.message = "Error: " + err.Error()
		return err
	}

	s.userID = res.UserID
	s.email = res.Email
	s.state = StateLoading
	return s.load(ctx)
}

func (s *SyncController) load(ctx context.Context) error {
	profile, err := s.api.GetProfile(ctx, s.userID)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == 404 {
			s.form = FormData{Email: s.email}
			s.updating = false
			s.state = StateNoProfile
			s.message = "No existing profile found for your account. Please create your profile."
			return nil
		}
		s.form = FormData{Email: s.email}
		s.updating = false
		s.state = StateNoProfile
		s.message = "Error loading your profile: " + err.Error()
		return err
	}

	s.form = FormData{
		Name:        profile.Name,
		Email:       profile.Email,
		Skills:      JoinSkills(profile.Skills),
		Description: profile.Description,
		Grades:      profile.Grades,
		ResumeLink:  profile.ResumeLink,
	}
	s.updating = true
	s.state = StateHasProfile
	s.message = "Your existing profile has been loaded for updates."
	return nil
}

// Submit writes the form. In create mode a 409 flips the controller to
// update mode without touching the entered data and without resubmitting;
// the user decides when to try again. Successful writes re-fetch the full
// profile list so the browse snapshot reflects the change.
func (s *SyncController) Submit(ctx context.Context) error {
	if s.userID == 0 {
		s.message = "Error: User not logged in. Cannot submit profile."
		return errors.New("not logged in")
	}
	if s.form.Name == "" || s.form.Email == "" || s.form.Skills == "" {
		s.message = "Error: Please fill in Full Name, Contact Info (Email), and Skills."
		return ErrMissingFields
	}

	profile := &domain.StudentProfile{
		UserID:      s.userID,
		Name:        s.form.Name,
		Email:       s.form.Email,
		Skills:      SplitSkills(s.form.Skills),
		Description: s.form.Description,
		Grades:      s.form.Grades,
		ResumeLink:  s.form.ResumeLink,
		LastUpdated: time.Now(),
	}

	wasUpdating := s.updating
	s.state = StateSubmitting

	if !wasUpdating {
		if _, err := s.api.CreateProfile(ctx, profile); err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.Status == 409 {
				// The race was lost: a profile exists. Flip to update mode,
				// keep the form, let the user re-submit.
				s.updating = true
				s.state = StateConflicted
				s.message = "A profile already exists for your account. Please use the \"Update Profile\" button to make changes."
				return err
			}
			s.state = StateNoProfile
			s.message = "Error: " + err.Error()
			return err
		}
		s.updating = true
		s.message = "Profile created successfully! You can now update it."
	} else {
		if err := s.api.UpdateProfile(ctx, s.userID, profile); err != nil {
			s.state = StateHasProfile
			s.message = "Error: " + err.Error()
			return err
		}
		s.message = "Profile updated successfully!"
	}

	s.state = StateSaved
	return s.refresh(ctx)
}

// refresh reloads the full profile list; no targeted cache update.
func (s *SyncController) refresh(ctx context.Context) error {
	s.state = StateLoading
	profiles, err := s.api.ListProfiles(ctx)
	if err != nil {
		s.state = StateHasProfile
		return err
	}
	s.profiles = profiles
	s.state = StateHasProfile
	return nil
}
