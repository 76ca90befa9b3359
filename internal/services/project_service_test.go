package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamLuCat/portfolio/internal/models"
)

func testData() *models.PortfolioData {
	return &models.PortfolioData{
		Projects: []models.Project{
			{ID: "m1", Category: models.CategoryMobile, DemoURL: "https://demo.example", SourceURL: "#"},
			{ID: "w1", Category: models.CategoryWeb, DemoURL: " ", SourceURL: "https://git.example"},
			{ID: "m2", Category: models.CategoryMobile},
		},
	}
}

func TestProjectService_List(t *testing.T) {
	s := NewProjectService(testData())

	all, err := s.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mobile, err := s.List("mobile")
	require.NoError(t, err)
	require.Len(t, mobile, 2)
	assert.Equal(t, "m1", mobile[0].ID)
	assert.Equal(t, "m2", mobile[1].ID)

	kit, err := s.List("UI Kit")
	require.NoError(t, err)
	assert.Empty(t, kit)

	_, err = s.List("Desktop")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestProjectService_GetByID(t *testing.T) {
	s := NewProjectService(testData())

	p, err := s.GetByID("w1")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryWeb, p.Category)

	_, err = s.GetByID("nope")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_ResolveLink(t *testing.T) {
	s := NewProjectService(testData())

	tests := []struct {
		id   string
		kind models.LinkKind
		want LinkTarget
	}{
		{"m1", models.LinkDemo, LinkTarget{URL: "https://demo.example"}},
		{"m1", models.LinkSource, LinkTarget{NotFound: true}},
		{"w1", models.LinkDemo, LinkTarget{NotFound: true}},
		{"w1", models.LinkSource, LinkTarget{URL: "https://git.example"}},
		{"m2", models.LinkDemo, LinkTarget{NotFound: true}},
	}
	for _, tt := range tests {
		got, err := s.ResolveLink(tt.id, tt.kind)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s/%s", tt.id, tt.kind)
	}

	_, err := s.ResolveLink("m1", "wiki")
	assert.Error(t, err)
	_, err = s.ResolveLink("zzz", models.LinkDemo)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
