// Package contract implements the per-patient access ledger: time-boxed
// grants that let a requester read specific data types for one patient.
package contract

import (
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/types"
	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/validator"

	"github.com/benbjohnson/clock"
)

// ErrAccessKeyExists is returned when a grant would reuse the key of an
// existing rule, which happens for two grants to the same requester within
// the same second.
var ErrAccessKeyExists = errors.New("access key already exists")

// MaxDurationHours is the longest grant, in hours, whose expiry a
// time.Duration can represent. The DurationHours tags below carry the same
// bound.
const MaxDurationHours = 2562047

// AccessRule is a single grant. Only Active ever changes after creation.
type AccessRule struct {
	RequesterID string
	DataTypes   types.Set[string]
	GrantedAt   time.Time
	ExpiresAt   time.Time
	Active      bool
}

// GrantResult is returned by GrantAccess.
type GrantResult struct {
	AccessKey   string    `json:"accessKey"`
	Granted     bool      `json:"granted"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Permissions []string  `json:"permissions"`
}

// grantInput is validated before a rule is created.
type grantInput struct {
	RequesterID   string   `validate:"notblank"`
	DataTypes     []string `validate:"min=1,dive,notblank"`
	DurationHours float64  `validate:"gt=0,lte=2562047"`
}

// SmartContract is the access ledger of one patient. It is safe for
// concurrent use.
type SmartContract struct {
	mu sync.RWMutex

	id        string
	patientID string
	createdAt time.Time
	rules     map[string]*AccessRule

	clock clock.Clock
}

// Option customizes a SmartContract.
type Option func(*SmartContract)

// WithClock sets the clock used for grant times and expiry checks.
func WithClock(c clock.Clock) Option {
	return func(s *SmartContract) {
		s.clock = c
	}
}

// New creates an empty contract.
func New(contractID, patientID string, opts ...Option) *SmartContract {
	c := &SmartContract{
		id:        contractID,
		patientID: patientID,
		rules:     make(map[string]*AccessRule),
		clock:     clock.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.createdAt = c.clock.Now()
	return c
}

// ID returns the contract id.
func (c *SmartContract) ID() string { return c.id }

// PatientID returns the patient the contract belongs to.
func (c *SmartContract) PatientID() string { return c.patientID }

// CreatedAt returns the deployment time.
func (c *SmartContract) CreatedAt() time.Time { return c.createdAt }

// GrantAccess records a grant for requesterID covering dataTypes that
// expires durationHours from now. The access key combines the requester
// with the grant time in whole seconds.
func (c *SmartContract) GrantAccess(requesterID string, dataTypes []string, durationHours float64) (GrantResult, error) {
	in := grantInput{
		RequesterID:   requesterID,
		DataTypes:     dataTypes,
		DurationHours: durationHours,
	}
	if err := validator.Validate(in); err != nil {
		return GrantResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	accessKey := fmt.Sprintf("%s_%d", requesterID, now.Unix())
	if _, exists := c.rules[accessKey]; exists {
		return GrantResult{}, fmt.Errorf("%w: %s", ErrAccessKeyExists, accessKey)
	}

	rule := &AccessRule{
		RequesterID: requesterID,
		DataTypes:   types.NewSet(dataTypes...),
		GrantedAt:   now,
		ExpiresAt:   now.Add(time.Duration(durationHours * float64(time.Hour))),
		Active:      true,
	}
	c.rules[accessKey] = rule

	return GrantResult{
		AccessKey:   accessKey,
		Granted:     true,
		ExpiresAt:   rule.ExpiresAt,
		Permissions: types.Sorted(rule.DataTypes),
	}, nil
}

// RevokeAccess deactivates the rule stored under accessKey and reports
// whether such a rule exists. Revoking an inactive rule is a no-op that
// still returns true.
func (c *SmartContract) RevokeAccess(accessKey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	rule, ok := c.rules[accessKey]
	if !ok {
		return false
	}

	rule.Active = false
	return true
}

// ValidateAccess reports whether requesterID currently holds an active,
// unexpired grant that covers dataType. It is evaluated against the clock
// on every call.
func (c *SmartContract) ValidateAccess(requesterID, dataType string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.clock.Now()
	for _, rule := range c.rules {
		if rule.RequesterID == requesterID &&
			rule.Active &&
			now.Before(rule.ExpiresAt) &&
			rule.DataTypes.Has(dataType) {
			return true
		}
	}

	return false
}

// AccessRules returns a snapshot of every rule keyed by access key.
func (c *SmartContract) AccessRules() map[string]AccessRule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]AccessRule, len(c.rules))
	for key, rule := range c.rules {
		snapshot := *rule
		snapshot.DataTypes = rule.DataTypes.Clone()
		out[key] = snapshot
	}

	return out
}

// ActiveRuleCount returns the number of rules that are active and unexpired.
func (c *SmartContract) ActiveRuleCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.clock.Now()
	count := 0
	for rule := range maps.Values(c.rules) {
		if rule.Active && now.Before(rule.ExpiresAt) {
			count++
		}
	}

	return count
}
