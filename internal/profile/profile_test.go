package profile

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/job-autofill/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingKeysAreAbsent(t *testing.T) {
	store := NewMemoryStore(Values{
		types.KeyEmail: json.RawMessage(`"jane@x.com"`),
	})

	p, err := Load(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", p.Email)
	assert.Empty(t, p.FullName)
	assert.Empty(t, p.WorkExperience)
}

func TestLoad_IgnoresUnrecognizedStoredKeys(t *testing.T) {
	store := NewMemoryStore(Values{
		"legacyField":     json.RawMessage(`{"x":1}`),
		types.KeyFullName: json.RawMessage(`"Jane Doe"`),
	})

	p, err := Load(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.FullName)
}

func TestSave(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		values  Values
		wantErr any
	}{
		{
			name:   "partial write",
			values: Values{types.KeyCity: json.RawMessage(`"Austin"`)},
		},
		{
			name:    "unknown key",
			values:  Values{"favoriteColor": json.RawMessage(`"blue"`)},
			wantErr: &UnknownKeyError{},
		},
		{
			name:    "schema type mismatch",
			values:  Values{types.KeyZip: json.RawMessage(`32801`)},
			wantErr: &ValidationError{},
		},
		{
			name:    "bad email",
			values:  Values{types.KeyEmail: json.RawMessage(`"not-an-email"`)},
			wantErr: &ValidationError{},
		},
		{
			name:    "bad link",
			values:  Values{types.KeyLinkedIn: json.RawMessage(`"linkedin"`)},
			wantErr: &ValidationError{},
		},
		{
			name: "work experience list",
			values: Values{types.KeyWorkExperience: json.RawMessage(
				`[{"title":"Engineer","company":"Acme","current":true},{"title":"Intern","enabled":false}]`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore(nil)
			err := Save(ctx, store, tt.values)

			switch want := tt.wantErr.(type) {
			case nil:
				require.NoError(t, err)
				got, err := store.Get(ctx, types.ProfileKeys...)
				require.NoError(t, err)
				assert.Len(t, got, len(tt.values))
			case *UnknownKeyError:
				assert.True(t, errors.As(err, &want))
			case *ValidationError:
				assert.True(t, errors.As(err, &want))
			}
		})
	}
}

func TestSave_MergedProfileIsChecked(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(Values{types.KeyEmail: json.RawMessage(`"jane@x.com"`)})

	require.NoError(t, Save(ctx, store, Values{types.KeyPhone: json.RawMessage(`"555-0100"`)}))

	p, err := Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", p.Email)
	assert.Equal(t, "555-0100", p.Phone)
}

func TestFromProfile(t *testing.T) {
	values, err := FromProfile(&types.Profile{FullName: "Jane Doe", City: "Austin"})
	require.NoError(t, err)
	assert.Len(t, values, 2)
	assert.JSONEq(t, `"Austin"`, string(values[types.KeyCity]))
}

func TestParseAssignments(t *testing.T) {
	values, err := ParseAssignments([]string{
		"fullName=Jane Doe",
		"summary=a=b",
		`workExperience=[{"title":"Engineer"}]`,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `"Jane Doe"`, string(values[types.KeyFullName]))
	assert.JSONEq(t, `"a=b"`, string(values[types.KeySummary]))
	assert.JSONEq(t, `[{"title":"Engineer"}]`, string(values[types.KeyWorkExperience]))

	_, err = ParseAssignments([]string{"noequals"})
	assert.Error(t, err)

	_, err = ParseAssignments([]string{"workExperience=[oops"})
	assert.Error(t, err)
}

func TestFileStore_JSONAndYAML(t *testing.T) {
	for _, name := range []string{"profile.json", "profile.yaml"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "nested", name)
			store := NewFileStore(path)

			p, err := Load(ctx, store)
			require.NoError(t, err)
			assert.Empty(t, p.FullName)

			require.NoError(t, Save(ctx, store, Values{
				types.KeyFullName:       json.RawMessage(`"Jane Doe"`),
				types.KeyWorkExperience: json.RawMessage(`[{"title":"Engineer","current":true}]`),
			}))
			require.NoError(t, Save(ctx, store, Values{types.KeyCity: json.RawMessage(`"Austin"`)}))

			p, err = Load(ctx, NewFileStore(path))
			require.NoError(t, err)
			assert.Equal(t, "Jane Doe", p.FullName)
			assert.Equal(t, "Austin", p.City)
			require.Len(t, p.WorkExperience, 1)
			assert.True(t, p.WorkExperience[0].Current)

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp files must not be left behind")
		})
	}
}

func TestFileStore_ReadsHandWrittenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "me.yml")
	content := `
fullName: Jane Doe
zip: "32801"
workExperience:
  - title: Engineer
    enabled: false
  - title: Lead
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, err := Load(context.Background(), NewFileStore(path))
	require.NoError(t, err)
	assert.Equal(t, "32801", p.Zip)
	enabled := p.EnabledExperience()
	require.Len(t, enabled, 1)
	assert.Equal(t, "Lead", enabled[0].Title)
}

func TestFileStore_RejectsUnknownKeys(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "p.json"))
	err := store.Set(context.Background(), Values{"nope": json.RawMessage(`1`)})
	var unknown *UnknownKeyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"nope"}, unknown.Keys)
}

func TestFileStore_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	require.NoError(t, os.WriteFile(path, []byte(`{oops`), 0o600))

	_, err := Load(context.Background(), NewFileStore(path))
	var profileErr *Error
	assert.True(t, errors.As(err, &profileErr))
}
