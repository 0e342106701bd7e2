package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsProfileKey(t *testing.T) {
	for _, k := range ProfileKeys {
		assert.True(t, IsProfileKey(k), k)
	}
	assert.False(t, IsProfileKey("password"))
	assert.False(t, IsProfileKey("Email"))
}

func TestNameParts(t *testing.T) {
	tests := []struct {
		full, first, last string
	}{
		{full: "Jane Doe", first: "Jane", last: "Doe"},
		{full: "  Mary   Ann  Smith ", first: "Mary", last: "Ann Smith"},
		{full: "Cher", first: "Cher", last: ""},
		{full: "", first: "", last: ""},
	}
	for _, tt := range tests {
		t.Run(tt.full, func(t *testing.T) {
			first, last := Profile{FullName: tt.full}.NameParts()
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}

func TestWebsiteLink(t *testing.T) {
	assert.Equal(t, "https://jane.dev", Profile{Website: "https://jane.dev", LinkedIn: "https://linkedin.com/in/jane"}.WebsiteLink())
	assert.Equal(t, "https://linkedin.com/in/jane", Profile{LinkedIn: "https://linkedin.com/in/jane", GitHub: "https://github.com/jane"}.WebsiteLink())
	assert.Equal(t, "https://github.com/jane", Profile{GitHub: "https://github.com/jane"}.WebsiteLink())
	assert.Empty(t, Profile{}.WebsiteLink())
}

func TestEnabledExperience(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"workExperience":[
		{"title":"A","enabled":false},
		{"title":"B"},
		{"title":"C","enabled":true}
	]}`), &p))

	enabled := p.EnabledExperience()
	require.Len(t, enabled, 2)
	assert.Equal(t, "B", enabled[0].Title)
	assert.Equal(t, "C", enabled[1].Title)
}
