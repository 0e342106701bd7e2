// Package profile loads and saves the applicant profile. Stores are key-value:
// reads and writes are restricted to the recognized profile keys, and a
// missing key is absent data rather than an error.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/job-autofill/internal/schemas"
	"github.com/jonathan/job-autofill/internal/types"
)

// Values is a partial profile keyed by profile key, each value in JSON form.
type Values map[string]json.RawMessage

// Store is the profile persistence contract.
type Store interface {
	// Get returns the stored values for the requested keys. Unknown or unset
	// keys are omitted from the result.
	Get(ctx context.Context, keys ...string) (Values, error)
	// Set writes a partial mapping. Keys not in the mapping are untouched.
	Set(ctx context.Context, values Values) error
}

var validate = validator.New()

// Load reads every recognized key once and builds the profile used for the
// rest of a session.
func Load(ctx context.Context, store Store) (*types.Profile, error) {
	values, err := store.Get(ctx, types.ProfileKeys...)
	if err != nil {
		return nil, &Error{Message: "failed to read profile", Cause: err}
	}
	return values.Profile()
}

// Profile decodes the values into a Profile.
func (v Values) Profile() (*types.Profile, error) {
	content, err := json.Marshal(v.known())
	if err != nil {
		return nil, &Error{Message: "failed to encode stored values", Cause: err}
	}
	var p types.Profile
	if err := json.Unmarshal(content, &p); err != nil {
		return nil, &Error{Message: "stored profile is malformed", Cause: err}
	}
	return &p, nil
}

func (v Values) known() Values {
	out := make(Values, len(v))
	for k, raw := range v {
		if types.IsProfileKey(k) {
			out[k] = raw
		}
	}
	return out
}

// CheckKeys rejects keys outside the recognized set.
func (v Values) CheckKeys() error {
	var unknown []string
	for k := range v {
		if !types.IsProfileKey(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &UnknownKeyError{Keys: unknown}
}

// Save validates a partial write and applies it. The write is checked for
// unknown keys, against the profile schema, and finally as part of the
// merged profile, so a store never holds values that would fail to load.
func Save(ctx context.Context, store Store, values Values) error {
	if len(values) == 0 {
		return nil
	}
	if err := values.CheckKeys(); err != nil {
		return err
	}

	content, err := json.Marshal(values)
	if err != nil {
		return &ValidationError{Message: "values are not valid JSON", Cause: err}
	}
	if err := schemas.ValidateProfile(content); err != nil {
		return &ValidationError{Message: "schema check failed", Cause: err}
	}

	current, err := store.Get(ctx, types.ProfileKeys...)
	if err != nil {
		return &Error{Message: "failed to read profile", Cause: err}
	}
	merged := make(Values, len(current)+len(values))
	for k, raw := range current {
		merged[k] = raw
	}
	for k, raw := range values {
		merged[k] = raw
	}
	p, err := merged.Profile()
	if err != nil {
		return &ValidationError{Message: "merged profile does not decode", Cause: err}
	}
	if err := validate.Struct(p); err != nil {
		return &ValidationError{Message: "field check failed", Cause: err}
	}

	if err := store.Set(ctx, values); err != nil {
		return &Error{Message: "failed to write profile", Cause: err}
	}
	return nil
}

// FromProfile converts a Profile into values, omitting unset attributes.
func FromProfile(p *types.Profile) (Values, error) {
	content, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	var values Values
	if err := json.Unmarshal(content, &values); err != nil {
		return nil, fmt.Errorf("failed to split profile: %w", err)
	}
	return values, nil
}

// ParseAssignments turns key=value arguments into values. Scalar keys take the
// text verbatim; workExperience takes a JSON array.
func ParseAssignments(args []string) (Values, error) {
	values := make(Values, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, &ValidationError{Message: fmt.Sprintf("expected key=value, got %q", arg)}
		}
		if key == types.KeyWorkExperience {
			if !json.Valid([]byte(value)) {
				return nil, &ValidationError{Message: "workExperience must be a JSON array"}
			}
			values[key] = json.RawMessage(value)
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, &ValidationError{Message: "failed to encode value", Cause: err}
		}
		values[key] = raw
	}
	return values, nil
}
