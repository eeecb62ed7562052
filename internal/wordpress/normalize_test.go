package wordpress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sharecom5/TBM/internal/wordpress"
)

const stockImageURL = "https://images.unsplash.com/photo-1529107386315-e1a2ed48a620"

func TestNormalizeMinimalPost(t *testing.T) {
	// A post lacking every embedded collection must still normalize,
	// degrading to the documented defaults.
	post := wordpress.Post{
		ID:      42,
		Slug:    "bare-post",
		Date:    "2026-08-30T10:00:00",
		Title:   wordpress.Rendered{Rendered: "Bare Post"},
		Excerpt: wordpress.Rendered{Rendered: "<p>Summary.</p>"},
		Content: wordpress.Rendered{Rendered: "<p>Body</p>"},
	}

	got := wordpress.Normalize(post)

	assert.Equal(t, 42, got.ID)
	assert.Equal(t, "bare-post", got.Slug)
	assert.Equal(t, "Bare Post", got.Title)
	assert.Equal(t, "Summary....", got.Excerpt)
	assert.Equal(t, "<p>Body</p>", got.Content)
	assert.Equal(t, "Editorial Team", got.Author.Name)
	assert.Empty(t, got.Author.Avatar)
	assert.Equal(t, stockImageURL, got.Image.URL)
	assert.Equal(t, "Bare Post", got.Image.Alt)
	assert.Empty(t, got.Image.Caption)
	assert.Empty(t, got.Categories)
	assert.Equal(t, "Bare Post", got.SEO.Title)
	assert.Empty(t, got.SEO.Description)
	assert.False(t, got.Sticky)
}

func TestNormalizeFullPost(t *testing.T) {
	post := wordpress.Post{
		ID:      7,
		Slug:    "india-world",
		Date:    "2026-08-31T08:30:00",
		Sticky:  true,
		Title:   wordpress.Rendered{Rendered: "India &amp; World"},
		Excerpt: wordpress.Rendered{Rendered: "<p>Short summary.</p>"},
		Content: wordpress.Rendered{Rendered: "<p>Full <em>story</em></p>"},
		RankMathTitle:       "India &amp; World | The Bharat Mirror",
		RankMathDescription: "Latest news &amp; analysis",
		YoastHead:           "<meta name=\"description\" content=\"x\"/>",
		Embedded: &wordpress.Embedded{
			FeaturedMedia: []wordpress.Media{{
				SourceURL: "https://cdn.example.com/lead.jpg",
				AltText:   "Lead photo",
				Caption:   &wordpress.Rendered{Rendered: "Photo &amp; caption"},
			}},
			Author: []wordpress.Author{{
				Name:       "A. Reporter",
				AvatarURLs: map[string]string{"96": "https://cdn.example.com/a96.png"},
			}},
			Terms: [][]wordpress.Term{{
				{ID: 1, Name: "India", Slug: "india"},
				{ID: 2, Name: "Business &amp; Economy", Slug: "business"},
			}},
		},
	}

	got := wordpress.Normalize(post)

	assert.Equal(t, "India & World", got.Title)
	assert.Equal(t, "Short summary....", got.Excerpt)
	assert.Equal(t, "A. Reporter", got.Author.Name)
	assert.Equal(t, "https://cdn.example.com/a96.png", got.Author.Avatar)
	assert.Equal(t, "https://cdn.example.com/lead.jpg", got.Image.URL)
	assert.Equal(t, "Lead photo", got.Image.Alt)
	assert.Equal(t, "Photo & caption", got.Image.Caption)

	require.Len(t, got.Categories, 2)
	assert.Equal(t, wordpress.PostCategory{ID: 1, Name: "India", Slug: "india"}, got.Categories[0])
	assert.Equal(t, "Business & Economy", got.Categories[1].Name)

	assert.Equal(t, "India & World | The Bharat Mirror", got.SEO.Title)
	assert.Equal(t, "Latest news & analysis", got.SEO.Description)
	assert.Equal(t, post.YoastHead, got.SEO.FullHead)
	assert.True(t, got.Sticky)
}

func TestNormalizeAltTextFallsBackToRawTitle(t *testing.T) {
	// The alt fallback deliberately uses the undecoded title.
	post := wordpress.Post{
		ID:    1,
		Title: wordpress.Rendered{Rendered: "India &amp; World"},
		Embedded: &wordpress.Embedded{
			FeaturedMedia: []wordpress.Media{{SourceURL: "https://cdn.example.com/x.jpg"}},
		},
	}

	got := wordpress.Normalize(post)

	assert.Equal(t, "India &amp; World", got.Image.Alt)
	assert.Equal(t, "India & World", got.Title)
}

func TestNormalizeEmptyEmbeddedCollections(t *testing.T) {
	// Present-but-empty collections behave like absent ones.
	post := wordpress.Post{
		ID:       3,
		Title:    wordpress.Rendered{Rendered: "Empty Embeds"},
		Embedded: &wordpress.Embedded{},
	}

	got := wordpress.Normalize(post)

	assert.Equal(t, "Editorial Team", got.Author.Name)
	assert.Equal(t, stockImageURL, got.Image.URL)
	assert.Empty(t, got.Categories)
}

func TestNormalizeAll(t *testing.T) {
	posts := []wordpress.Post{
		{ID: 1, Title: wordpress.Rendered{Rendered: "One"}},
		{ID: 2, Title: wordpress.Rendered{Rendered: "Two"}},
	}

	got := wordpress.NormalizeAll(posts)

	require.Len(t, got, 2)
	assert.Equal(t, "One", got[0].Title)
	assert.Equal(t, "Two", got[1].Title)
}
