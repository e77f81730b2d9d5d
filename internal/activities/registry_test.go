package activities

import (
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/metrics"
	"mergington-activities/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(DefaultSeed(), logger.NewTestLogger(t))
}

func participants(t *testing.T, r *Registry, name string) []string {
	t.Helper()
	a, err := r.Get(name)
	require.NoError(t, err)
	return a.Participants
}

func countOf(list []string, email string) int {
	n := 0
	for _, p := range list {
		if p == email {
			n++
		}
	}
	return n
}

// ==========================
// Seed
// ==========================

func TestDefaultSeed(t *testing.T) {
	seed := DefaultSeed()
	require.Len(t, seed, 9)

	for _, name := range []string{
		"Chess Club", "Programming Class", "Gym Class", "Basketball Team", "Tennis Club",
		"Drama Club", "Art Studio", "Debate Team", "Science Club",
	} {
		assert.Contains(t, seed, name)
	}

	chess := seed["Chess Club"]
	assert.Equal(t, "Learn strategies and compete in chess tournaments", chess.Description)
	assert.Equal(t, "Fridays, 3:30 PM - 5:00 PM", chess.Schedule)
	assert.Equal(t, 12, chess.MaxParticipants)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess.Participants)

	assert.Equal(t, 8, seed["Tennis Club"].MaxParticipants)
	assert.Equal(t, []string{"jordan@mergington.edu", "alex@mergington.edu"}, seed["Science Club"].Participants)
}

func TestNewRegistry_CopiesSeed(t *testing.T) {
	seed := DefaultSeed()
	r := NewRegistry(seed, nil)

	chess := seed["Chess Club"]
	chess.Participants[0] = "mutated@mergington.edu"

	assert.Equal(t, "michael@mergington.edu", participants(t, r, "Chess Club")[0])
}

// ==========================
// List
// ==========================

func TestList_ReturnsEveryActivity(t *testing.T) {
	r := createTestRegistry(t)
	all := r.List()

	assert.Len(t, all, 9)
	assert.Equal(t, 9, r.Len())
	for name, a := range DefaultSeed() {
		assert.Equal(t, a, all[name], name)
	}
}

func TestList_IsSnapshot(t *testing.T) {
	r := createTestRegistry(t)
	before := r.List()

	_, err := r.Enroll("Chess Club", "newstudent@mergington.edu")
	require.NoError(t, err)

	assert.Len(t, before["Chess Club"].Participants, 2)
	assert.Len(t, r.List()["Chess Club"].Participants, 3)

	before["Drama Club"] = models.Activity{}
	assert.Equal(t, "Wednesdays, 3:30 PM - 5:00 PM", r.List()["Drama Club"].Schedule)
}

// ==========================
// Enroll
// ==========================

func TestEnroll_Success(t *testing.T) {
	r := createTestRegistry(t)

	msg, err := r.Enroll("Chess Club", "newstudent@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, "Signed up newstudent@mergington.edu for Chess Club", msg)

	got := participants(t, r, "Chess Club")
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu", "newstudent@mergington.edu"}, got)
	assert.Equal(t, 1, countOf(got, "newstudent@mergington.edu"))
}

func TestEnroll_Errors(t *testing.T) {
	tests := []struct {
		name     string
		activity string
		email    string
		sentinel error
		wantMsg  string
	}{
		{
			name:     "already signed up",
			activity: "Chess Club",
			email:    "michael@mergington.edu",
			sentinel: apperrors.ErrAlreadySignedUp,
			wantMsg:  "Student already signed up",
		},
		{
			name:     "unknown activity",
			activity: "Nonexistent Club",
			email:    "student@mergington.edu",
			sentinel: apperrors.ErrActivityNotFound,
			wantMsg:  "Activity not found",
		},
		{
			name:     "activity names are case sensitive",
			activity: "chess club",
			email:    "student@mergington.edu",
			sentinel: apperrors.ErrActivityNotFound,
			wantMsg:  "Activity not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := createTestRegistry(t)
			before := r.List()

			msg, err := r.Enroll(tt.activity, tt.email)
			require.Error(t, err)
			assert.Empty(t, msg)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.wantMsg, apperrors.Normalize(err).Message)

			assert.Equal(t, before, r.List(), "failed enroll must not mutate the registry")
		})
	}
}

func TestEnroll_DuplicateDoesNotDuplicate(t *testing.T) {
	r := createTestRegistry(t)

	_, err := r.Enroll("Art Studio", "kim@mergington.edu")
	require.NoError(t, err)
	_, err = r.Enroll("Art Studio", "kim@mergington.edu")
	require.ErrorIs(t, err, apperrors.ErrAlreadySignedUp)

	assert.Equal(t, 1, countOf(participants(t, r, "Art Studio"), "kim@mergington.edu"))
}

func TestEnroll_MultipleActivities(t *testing.T) {
	r := createTestRegistry(t)
	email := "versatile@mergington.edu"

	_, err := r.Enroll("Chess Club", email)
	require.NoError(t, err)
	_, err = r.Enroll("Programming Class", email)
	require.NoError(t, err)

	assert.Contains(t, participants(t, r, "Chess Club"), email)
	assert.Contains(t, participants(t, r, "Programming Class"), email)
}

func TestEnroll_CapacityIsNotEnforced(t *testing.T) {
	r := createTestRegistry(t)

	for i := 0; i < 10; i++ {
		_, err := r.Enroll("Tennis Club", fmt.Sprintf("player%d@mergington.edu", i))
		require.NoError(t, err)
	}

	a, err := r.Get("Tennis Club")
	require.NoError(t, err)
	assert.Greater(t, len(a.Participants), a.MaxParticipants)
}

func TestEnroll_UpdatesMetrics(t *testing.T) {
	r := createTestRegistry(t)
	signups := metrics.SignupsTotal.WithLabelValues("Debate Team")
	before := testutil.ToFloat64(signups)

	_, err := r.Enroll("Debate Team", "orator@mergington.edu")
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(signups))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Participants.WithLabelValues("Debate Team")))

	failures := metrics.OperationFailures.WithLabelValues(OperationEnroll, string(apperrors.ErrCodeAlreadySignedUp))
	failBefore := testutil.ToFloat64(failures)
	_, _ = r.Enroll("Debate Team", "orator@mergington.edu")
	assert.Equal(t, failBefore+1, testutil.ToFloat64(failures))
}

// ==========================
// Withdraw
// ==========================

func TestWithdraw_Success(t *testing.T) {
	r := createTestRegistry(t)

	msg, err := r.Withdraw("Chess Club", "michael@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, "Unregistered michael@mergington.edu from Chess Club", msg)

	assert.Equal(t, []string{"daniel@mergington.edu"}, participants(t, r, "Chess Club"))
}

func TestWithdraw_PreservesOrderOfOthers(t *testing.T) {
	r := createTestRegistry(t)
	for _, e := range []string{"a@mergington.edu", "b@mergington.edu", "c@mergington.edu"} {
		_, err := r.Enroll("Gym Class", e)
		require.NoError(t, err)
	}

	_, err := r.Withdraw("Gym Class", "a@mergington.edu")
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"john@mergington.edu", "olivia@mergington.edu", "b@mergington.edu", "c@mergington.edu"},
		participants(t, r, "Gym Class"))
}

func TestWithdraw_OnlyTouchesTargetActivity(t *testing.T) {
	r := createTestRegistry(t)

	_, err := r.Withdraw("Science Club", "jordan@mergington.edu")
	require.NoError(t, err)

	assert.Equal(t, []string{"alex@mergington.edu"}, participants(t, r, "Science Club"))
	assert.Equal(t, []string{"jordan@mergington.edu", "casey@mergington.edu"}, participants(t, r, "Tennis Club"))
}

func TestWithdraw_Errors(t *testing.T) {
	tests := []struct {
		name     string
		activity string
		email    string
		sentinel error
		wantMsg  string
	}{
		{
			name:     "not registered",
			activity: "Chess Club",
			email:    "notregistered@mergington.edu",
			sentinel: apperrors.ErrNotSignedUp,
			wantMsg:  "Student not found in activity",
		},
		{
			name:     "unknown activity",
			activity: "Nonexistent Club",
			email:    "student@mergington.edu",
			sentinel: apperrors.ErrActivityNotFound,
			wantMsg:  "Activity not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := createTestRegistry(t)
			before := r.List()

			_, err := r.Withdraw(tt.activity, tt.email)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.wantMsg, apperrors.Normalize(err).Message)
			assert.Equal(t, before, r.List())
		})
	}
}

func TestEnrollThenWithdraw_RoundTrip(t *testing.T) {
	r := createTestRegistry(t)
	before := participants(t, r, "Chess Club")

	_, err := r.Enroll("Chess Club", "temporary@mergington.edu")
	require.NoError(t, err)
	_, err = r.Withdraw("Chess Club", "temporary@mergington.edu")
	require.NoError(t, err)

	assert.Equal(t, before, participants(t, r, "Chess Club"))
}

// ==========================
// Concurrency
// ==========================

func TestRegistry_ConcurrentEnrollWithdraw(t *testing.T) {
	r := NewRegistry(DefaultSeed(), logger.NewNoOpLogger())
	const workers = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("student%d@mergington.edu", i)
			_, _ = r.Enroll("Drama Club", email)
			_ = r.List()
			if i%2 == 0 {
				_, _ = r.Withdraw("Drama Club", email)
			}
		}(i)
	}
	wg.Wait()

	got := participants(t, r, "Drama Club")
	assert.Len(t, got, 1+workers/2)
	for _, p := range got {
		assert.Equal(t, 1, countOf(got, p), p)
	}
}

func TestRegistry_ConcurrentDuplicateEnroll(t *testing.T) {
	r := NewRegistry(DefaultSeed(), logger.NewNoOpLogger())

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Enroll("Basketball Team", "same@mergington.edu"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, countOf(participants(t, r, "Basketball Team"), "same@mergington.edu"))
}
