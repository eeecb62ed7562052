package wordpress

// Defaults substituted when an embedded resource is absent.
const (
	// defaultAuthorName is the editorial placeholder for posts with no
	// embedded author.
	defaultAuthorName = "Editorial Team"

	// defaultImageURL is the stock photo used when a post has no
	// featured media.
	defaultImageURL = "https://images.unsplash.com/photo-1529107386315-e1a2ed48a620"

	// avatarSize is the avatar_urls key the presentation layer uses.
	avatarSize = "96"
)

// Normalize maps a raw CMS post into a flat PostData. It is total over
// well-formed input: absent embedded collections degrade to the documented
// defaults and never produce an error.
func Normalize(post Post) PostData {
	var media *Media
	var author *Author
	var terms []Term

	if e := post.Embedded; e != nil {
		if len(e.FeaturedMedia) > 0 {
			media = &e.FeaturedMedia[0]
		}
		if len(e.Author) > 0 {
			author = &e.Author[0]
		}
		if len(e.Terms) > 0 {
			terms = e.Terms[0]
		}
	}

	data := PostData{
		ID:      post.ID,
		Slug:    post.Slug,
		Title:   DecodeEntities(post.Title.Rendered),
		Excerpt: SanitizeExcerpt(post.Excerpt.Rendered),
		Content: post.Content.Rendered,
		Date:    post.Date,
		Sticky:  post.Sticky,
	}

	data.Author = PostAuthor{Name: defaultAuthorName}
	if author != nil {
		if author.Name != "" {
			data.Author.Name = author.Name
		}
		data.Author.Avatar = author.AvatarURLs[avatarSize]
	}

	// Alt text falls back to the raw (undecoded) title.
	data.Image = PostImage{
		URL: defaultImageURL,
		Alt: post.Title.Rendered,
	}
	if media != nil {
		if media.SourceURL != "" {
			data.Image.URL = media.SourceURL
		}
		if media.AltText != "" {
			data.Image.Alt = media.AltText
		}
		if media.Caption != nil && media.Caption.Rendered != "" {
			data.Image.Caption = DecodeEntities(media.Caption.Rendered)
		}
	}

	data.Categories = make([]PostCategory, 0, len(terms))
	for _, term := range terms {
		data.Categories = append(data.Categories, PostCategory{
			ID:   term.ID,
			Name: DecodeEntities(term.Name),
			Slug: term.Slug,
		})
	}

	data.SEO = PostSEO{
		Title:    DecodeEntities(post.Title.Rendered),
		FullHead: post.YoastHead,
	}
	if post.RankMathTitle != "" {
		data.SEO.Title = DecodeEntities(post.RankMathTitle)
	}
	if post.RankMathDescription != "" {
		data.SEO.Description = DecodeEntities(post.RankMathDescription)
	}

	return data
}

// NormalizeAll maps a slice of raw posts.
func NormalizeAll(posts []Post) []PostData {
	out := make([]PostData, 0, len(posts))
	for _, p := range posts {
		out = append(out, Normalize(p))
	}
	return out
}
