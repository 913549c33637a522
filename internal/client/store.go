package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Fixed user-facing strings. Login rejections are remapped so the user is
// pointed at signup instead of shown the server's generic rejection.
const (
	msgInvalidCredentials = "Invalid identifier or password"
	msgNotRegistered      = "User not registered. Please sign up first."
	msgSessionExpired     = "Session expired. Please login again"
	msgSomethingWrong     = "Something went wrong"
	msgInvalidEntry       = "Please enter valid data"
	msgMissingData        = "Missing data"
	msgLoginSuccess       = "Login successful"
	msgLogoutSuccess      = "Logged out successfully"
)

// Store holds the session for one signed-in user: identity, the derived
// onboarding flag, and cached food and activity collections. Mutating
// operations call the backend and reconcile the cache with the response.
// Every operation handles its own failures: nothing propagates past the
// store, failures surface as notifications.
type Store struct {
	api      *API
	slots    *SlotStore
	notify   Notifier
	navigate func(path string)
	now      func() time.Time

	mu           sync.RWMutex
	ready        bool
	user         *User
	foodLogs     []FoodEntry
	activityLogs []ActivityEntry
	theme        string
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithNotifier routes user-facing messages to n.
func WithNotifier(n Notifier) StoreOption {
	return func(s *Store) { s.notify = n }
}

// WithNavigate installs the navigation side effect used by Logout.
func WithNavigate(fn func(path string)) StoreOption {
	return func(s *Store) { s.navigate = fn }
}

// WithClock overrides the wall clock used for meal-type derivation.
func WithClock(fn func() time.Time) StoreOption {
	return func(s *Store) { s.now = fn }
}

// NewStore returns a Store using api for backend calls and slots for the
// durable token and theme state.
func NewStore(api *API, slots *SlotStore, opts ...StoreOption) *Store {
	s := &Store{
		api:      api,
		slots:    slots,
		notify:   LogNotifier{},
		navigate: func(string) {},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs the one-shot startup protocol: restore the persisted token,
// resolve the user, then fetch both log collections. With no token there is
// nothing to resolve and the store is ready immediately. Readiness gates on
// user resolution only; it is set whether or not that resolution succeeds,
// and the log fetches run regardless of its outcome.
func (s *Store) Start(ctx context.Context) {
	if theme, err := s.slots.Get(ThemeSlot); err == nil && theme != "" {
		s.mu.Lock()
		s.theme = theme
		s.mu.Unlock()
	}

	token, err := s.slots.Get(TokenSlot)
	if err != nil || token == "" {
		s.setReady()
		return
	}

	s.api.SetAuthToken(token)
	s.FetchUser(ctx)
	s.setReady()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.FetchFoodLogs(ctx)
	}()
	go func() {
		defer wg.Done()
		s.FetchActivityLogs(ctx)
	}()
	wg.Wait()
}

// Signup registers a new account and establishes the session.
func (s *Store) Signup(ctx context.Context, creds Credentials) {
	resp, err := s.api.Register(ctx, creds)
	if err != nil {
		s.notify.Error(failureMessage(err, msgSomethingWrong))
		return
	}
	s.establishSession(resp)
}

// Login authenticates with an identifier (email or username) and password
// and establishes the session. The server's generic credential rejection is
// remapped to guidance toward signup.
func (s *Store) Login(ctx context.Context, identifier, password string) {
	resp, err := s.api.Login(ctx, identifier, password)
	if err != nil {
		message := failureMessage(err, "Login failed")
		if message == msgInvalidCredentials {
			message = msgNotRegistered
		}
		s.notify.Error(message)
		return
	}
	s.establishSession(resp)
	s.notify.Success(msgLoginSuccess)
}

// FetchUser resolves the profile for the current credential and replaces
// the held user. A failed resolution is the one hard failure in the store:
// the persisted token and user are cleared so a stale credential is never
// treated as valid.
func (s *Store) FetchUser(ctx context.Context) {
	user, err := s.api.Me(ctx)
	if err != nil {
		s.notify.Error(failureMessage(err, msgSessionExpired))
		_ = s.slots.Delete(TokenSlot)
		s.api.SetAuthToken("")
		s.mu.Lock()
		s.user = nil
		s.mu.Unlock()
		return
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// FetchFoodLogs replaces the cached food collection with the server's
// listing. On failure the existing cache is left untouched.
func (s *Store) FetchFoodLogs(ctx context.Context) {
	logs, err := s.api.FoodLogs(ctx)
	if err != nil {
		s.notify.Error(failureMessage(err, msgSomethingWrong))
		return
	}
	s.mu.Lock()
	s.foodLogs = logs
	s.mu.Unlock()
}

// FetchActivityLogs replaces the cached activity collection with the
// server's listing. On failure the existing cache is left untouched.
func (s *Store) FetchActivityLogs(ctx context.Context) {
	logs, err := s.api.ActivityLogs(ctx)
	if err != nil {
		s.notify.Error(failureMessage(err, msgSomethingWrong))
		return
	}
	s.mu.Lock()
	s.activityLogs = logs
	s.mu.Unlock()
}

// Logout clears the session: persisted token, held user, cached
// collections and the outgoing credential, then navigates back to the
// application root. Safe to call when nobody is signed in.
func (s *Store) Logout() {
	_ = s.slots.Delete(TokenSlot)
	s.api.SetAuthToken("")
	s.mu.Lock()
	s.user = nil
	s.foodLogs = nil
	s.activityLogs = nil
	s.mu.Unlock()
	s.navigate("/")
	s.notify.Success(msgLogoutSuccess)
}

// CreateFood validates and creates a food entry, then appends the server's
// canonical record to the cache.
func (s *Store) CreateFood(ctx context.Context, name string, calories int, mealType string) {
	if strings.TrimSpace(name) == "" || calories <= 0 || mealType == "" {
		s.notify.Error(msgInvalidEntry)
		return
	}
	entry, err := s.api.CreateFoodLog(ctx, name, calories, mealType)
	if err != nil {
		s.notify.Error(failureMessage(err, msgSomethingWrong))
		return
	}
	s.AppendFoodEntry(*entry)
}

// DeleteFood deletes a food entry on the server and removes it from the
// cache.
func (s *Store) DeleteFood(ctx context.Context, documentID string) {
	if err := s.api.DeleteFoodLog(ctx, documentID); err != nil {
		s.notify.Error(failureMessage(err, msgSomethingWrong))
		return
	}
	s.RemoveFoodEntry(documentID)
}

// CreateActivity validates and creates an activity entry, then appends the
// server's canonical record to the cache.
func (s *Store) CreateActivity(ctx context.Context, name string, durationMinutes, caloriesBurned int) {
	if strings.TrimSpace(name) == "" || durationMinutes <= 0 || caloriesBurned < 0 {
		s.notify.Error(msgInvalidEntry)
		return
	}
	entry, err := s.api.CreateActivityLog(ctx, name, durationMinutes, caloriesBurned)
	if err != nil {
		s.notify.Error(failureMessage(err, msgSomethingWrong))
		return
	}
	s.AppendActivityEntry(*entry)
}

// DeleteActivity deletes an activity entry on the server and removes it
// from the cache.
func (s *Store) DeleteActivity(ctx context.Context, documentID string) {
	if err := s.api.DeleteActivityLog(ctx, documentID); err != nil {
		s.notify.Error(failureMessage(err, msgSomethingWrong))
		return
	}
	s.RemoveActivityEntry(documentID)
}

// AnalyzeImage uploads an image for food recognition, derives the meal type
// from the current hour (the analysis endpoint does not return one), and
// creates a food entry from the result. An incomplete analysis result
// surfaces "Missing data" and creates nothing.
func (s *Store) AnalyzeImage(ctx context.Context, image []byte, filename string) {
	result, err := s.api.AnalyzeImage(ctx, image, filename)
	if err != nil {
		s.notify.Error(failureMessage(err, msgSomethingWrong))
		return
	}

	mealType := MealTypeForHour(s.now().Hour())
	if mealType == "" || result.Name == "" || result.Calories == 0 {
		s.notify.Error(msgMissingData)
		return
	}

	entry, err := s.api.CreateFoodLog(ctx, result.Name, result.Calories, mealType)
	if err != nil {
		s.notify.Error(failureMessage(err, msgSomethingWrong))
		return
	}
	s.AppendFoodEntry(*entry)
}

// AppendFoodEntry inserts a server-returned record into the cached food
// collection. Pure cache edit; no backend call.
func (s *Store) AppendFoodEntry(entry FoodEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.foodLogs = append(s.foodLogs, entry)
}

// RemoveFoodEntry drops the cached food entry matching documentID,
// preserving the order of the rest.
func (s *Store) RemoveFoodEntry(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.foodLogs[:0]
	for _, e := range s.foodLogs {
		if e.DocumentID != documentID {
			kept = append(kept, e)
		}
	}
	s.foodLogs = kept
}

// AppendActivityEntry inserts a server-returned record into the cached
// activity collection.
func (s *Store) AppendActivityEntry(entry ActivityEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activityLogs = append(s.activityLogs, entry)
}

// RemoveActivityEntry drops the cached activity entry matching documentID.
func (s *Store) RemoveActivityEntry(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.activityLogs[:0]
	for _, e := range s.activityLogs {
		if e.DocumentID != documentID {
			kept = append(kept, e)
		}
	}
	s.activityLogs = kept
}

// SetTheme persists the UI theme preference ("light" or "dark").
func (s *Store) SetTheme(theme string) {
	if err := s.slots.Set(ThemeSlot, theme); err != nil {
		s.notify.Error(failureMessage(err, msgSomethingWrong))
		return
	}
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
}

// Theme returns the current UI theme preference, defaulting to "light".
func (s *Store) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.theme == "" {
		return "light"
	}
	return s.theme
}

// Ready reports whether startup session resolution has finished,
// successfully or not.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// User returns the signed-in user, or nil.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// OnboardingCompleted reports whether the signed-in user has supplied age,
// weight and goal.
func (s *Store) OnboardingCompleted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.OnboardingCompleted()
}

// FoodLogs returns a copy of the cached food collection.
func (s *Store) FoodLogs() []FoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]FoodEntry, len(s.foodLogs))
	copy(out, s.foodLogs)
	return out
}

// ActivityLogs returns a copy of the cached activity collection.
func (s *Store) ActivityLogs() []ActivityEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ActivityEntry, len(s.activityLogs))
	copy(out, s.activityLogs)
	return out
}

// establishSession installs the user and token from a successful signup or
// login: the token is persisted and set as the outgoing credential in the
// same operation so the two never diverge.
func (s *Store) establishSession(resp *AuthResponse) {
	if err := s.slots.Set(TokenSlot, resp.JWT); err != nil {
		s.notify.Error(failureMessage(err, msgSomethingWrong))
		return
	}
	s.api.SetAuthToken(resp.JWT)
	s.mu.Lock()
	s.user = resp.User
	s.mu.Unlock()
}

func (s *Store) setReady() {
	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
}

// MealTypeForHour maps a wall-clock hour to the meal type assumed for an
// image-analysis entry: mornings are breakfast, early afternoon lunch, late
// afternoon a snack, evenings dinner.
func MealTypeForHour(hour int) string {
	switch {
	case hour >= 0 && hour < 12:
		return "breakfast"
	case hour >= 12 && hour < 16:
		return "lunch"
	case hour >= 16 && hour < 18:
		return "snack"
	case hour >= 18 && hour < 24:
		return "dinner"
	}
	return ""
}

// failureMessage picks the message shown for err: a structured server
// message wins, then the transport error text, then fallback.
func failureMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
