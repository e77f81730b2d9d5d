// Package activities owns the in-memory activity registry: the seeded catalog of
// extracurricular activities and their rosters.
package activities

import (
	"fmt"
	"sort"
	"sync"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/metrics"
	"mergington-activities/internal/models"
)

const (
	OperationEnroll   = "enroll"
	OperationWithdraw = "withdraw"
)

// Registry maps activity names to activities. The set of names is fixed at
// construction; only rosters change. All methods are safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	activities map[string]*models.Activity
	logger     logger.Logger
}

// NewRegistry copies seed so later changes to the caller's data are not visible.
func NewRegistry(seed map[string]models.Activity, log logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	r := &Registry{
		activities: make(map[string]*models.Activity, len(seed)),
		logger:     log.WithFields(map[string]interface{}{"component": "registry"}),
	}
	for name, a := range seed {
		clone := a.Clone()
		r.activities[name] = &clone
		metrics.Participants.WithLabelValues(name).Set(float64(len(clone.Participants)))
	}
	r.logger.Info("registry seeded", map[string]interface{}{"activities": len(r.activities)})
	return r
}

// List returns a snapshot of every activity.
func (r *Registry) List() map[string]models.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]models.Activity, len(r.activities))
	for name, a := range r.activities {
		out[name] = a.Clone()
	}
	return out
}

// Get returns a snapshot of one activity.
func (r *Registry) Get(name string) (models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[name]
	if !ok {
		return models.Activity{}, apperrors.NewActivityNotFoundError(name)
	}
	return a.Clone(), nil
}

// Len is the number of activities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.activities)
}

// Enroll appends email to the activity roster. Capacity is not checked.
func (r *Registry) Enroll(activityName, email string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[activityName]
	if !ok {
		return "", r.reject(OperationEnroll, apperrors.NewActivityNotFoundError(activityName))
	}
	if a.HasParticipant(email) {
		return "", r.reject(OperationEnroll, apperrors.NewAlreadySignedUpError(activityName, email))
	}

	a.Participants = append(a.Participants, email)

	metrics.SignupsTotal.WithLabelValues(activityName).Inc()
	metrics.Participants.WithLabelValues(activityName).Set(float64(len(a.Participants)))
	r.logger.Info("participant enrolled", map[string]interface{}{
		"activity":     activityName,
		"email":        email,
		"participants": len(a.Participants),
	})
	return fmt.Sprintf("Signed up %s for %s", email, activityName), nil
}

// Withdraw removes email from the activity roster.
func (r *Registry) Withdraw(activityName, email string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[activityName]
	if !ok {
		return "", r.reject(OperationWithdraw, apperrors.NewActivityNotFoundError(activityName))
	}
	if !a.RemoveParticipant(email) {
		return "", r.reject(OperationWithdraw, apperrors.NewNotSignedUpError(activityName, email))
	}

	metrics.UnregistrationsTotal.WithLabelValues(activityName).Inc()
	metrics.Participants.WithLabelValues(activityName).Set(float64(len(a.Participants)))
	r.logger.Info("participant withdrawn", map[string]interface{}{
		"activity":     activityName,
		"email":        email,
		"participants": len(a.Participants),
	})
	return fmt.Sprintf("Unregistered %s from %s", email, activityName), nil
}

func (r *Registry) reject(operation string, err *apperrors.StandardError) error {
	metrics.OperationFailures.WithLabelValues(operation, string(err.Code)).Inc()
	fields := map[string]interface{}{"operation": operation, "errorCode": string(err.Code)}
	for k, v := range err.Metadata {
		fields[k] = v
	}
	r.logger.Debug("operation rejected", fields)
	return err
}

func sortedNames(m map[string]models.Activity) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
