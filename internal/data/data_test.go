package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamLuCat/portfolio/internal/models"
)

func TestLoad_Embedded(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Pham Quang Vu", d.Hero.Name)
	assert.Len(t, d.Projects, 6)
	assert.Len(t, d.Experiences, 3)
	assert.Equal(t, "p4", d.Projects[0].ID)
	assert.True(t, d.Experiences[0].Current)
}

func TestParse_DuplicateProjectID(t *testing.T) {
	raw := `{
		"hero": {"name": "A"},
		"contact": {"email": "a@example.com"},
		"projects": [
			{"id": "x", "title": "One", "description": "d", "category": "Web"},
			{"id": "x", "title": "Two", "description": "d", "category": "Mobile"}
		]
	}`

	d, err := Parse([]byte(raw))
	assert.Nil(t, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate project id")
}

func TestParse_UnknownCategory(t *testing.T) {
	raw := `{
		"hero": {"name": "A"},
		"contact": {"email": "a@example.com"},
		"projects": [{"id": "x", "title": "One", "description": "d", "category": "Desktop"}]
	}`

	_, err := Parse([]byte(raw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestParse_ProficiencyOutOfRange(t *testing.T) {
	raw := `{
		"hero": {"name": "A"},
		"contact": {"email": "a@example.com"},
		"skills": {"proficiencies": [{"label": "Go", "percentage": 140}]}
	}`

	_, err := Parse([]byte(raw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Percentage")
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{ nope }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse portfolio data")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	require.NoError(t, os.WriteFile(path, embedded, 0644))

	d, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryWeb, d.Projects[3].Category)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
