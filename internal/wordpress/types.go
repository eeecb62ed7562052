package wordpress

// Rendered wraps WordPress's rendered-HTML field shape.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Post is the raw post record as returned by the WordPress REST API with
// _embed enabled. The CMS owns this shape; every embedded field is
// optional and absence degrades to a documented default in Normalize.
type Post struct {
	ID      int      `json:"id"`
	Slug    string   `json:"slug"`
	Date    string   `json:"date"`
	Sticky  bool     `json:"sticky"`
	Title   Rendered `json:"title"`
	Excerpt Rendered `json:"excerpt"`
	Content Rendered `json:"content"`

	// SEO plugin fields, present only when the corresponding plugin is
	// active on the CMS.
	RankMathTitle       string `json:"rank_math_title,omitempty"`
	RankMathDescription string `json:"rank_math_description,omitempty"`
	YoastHead           string `json:"yoast_head,omitempty"`

	Embedded *Embedded `json:"_embedded,omitempty"`
}

// Embedded holds the related resources inlined by the _embed parameter.
type Embedded struct {
	FeaturedMedia []Media  `json:"wp:featuredmedia"`
	Author        []Author `json:"author"`
	// Terms is an array of taxonomy groups; the first group is the
	// category list.
	Terms [][]Term `json:"wp:term"`
}

// Media is an embedded featured-media resource.
type Media struct {
	SourceURL string    `json:"source_url"`
	AltText   string    `json:"alt_text"`
	Caption   *Rendered `json:"caption,omitempty"`
}

// Author is an embedded author resource.
type Author struct {
	Name       string            `json:"name"`
	AvatarURLs map[string]string `json:"avatar_urls"`
}

// Term is an embedded taxonomy term.
type Term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Category is a taxonomy term from the /wp/v2/categories endpoint.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// PostData is the flat, presentation-ready post record derived from a raw
// Post. Title, excerpt and SEO title are entity-decoded plain text;
// Content keeps its HTML and is rendered as-is.
type PostData struct {
	ID         int            `json:"id"`
	Slug       string         `json:"slug"`
	Title      string         `json:"title"`
	Excerpt    string         `json:"excerpt"`
	Content    string         `json:"content"`
	Date       string         `json:"date"`
	Author     PostAuthor     `json:"author"`
	Image      PostImage      `json:"image"`
	Categories []PostCategory `json:"categories"`
	SEO        PostSEO        `json:"seo"`
	Sticky     bool           `json:"sticky"`
}

// PostAuthor is the author block of a normalized post.
type PostAuthor struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// PostImage is the featured image block of a normalized post.
type PostImage struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// PostCategory is a category reference on a normalized post.
type PostCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PostSEO carries the SEO metadata of a normalized post.
type PostSEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FullHead    string `json:"fullHead,omitempty"`
}
