package web

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/KiloProjects/blognova"
	"github.com/KiloProjects/blognova/internal/util"
	"github.com/KiloProjects/blognova/sudoapi"
)

type ReqContext struct {
	User *blognova.User
}

func GenContext(r *http.Request) *ReqContext {
	return &ReqContext{
		User: util.User(r),
	}
}

// feedEntry is a post joined with the display data the listing pages need.
type feedEntry struct {
	Post   *blognova.Post
	Author *blognova.User
}

type IndexParams struct {
	Ctx *ReqContext

	Entries  []*feedEntry
	Page     int
	NumPages int
}

type commentEntry struct {
	Comment  *blognova.Comment
	Author   *blognova.User
	Rendered template.HTML

	Editable bool
}

type PostParams struct {
	Ctx *ReqContext

	Post     *blognova.Post
	Author   *blognova.User
	Category *blognova.Category
	Location *blognova.Location

	Rendered template.HTML

	Comments []*commentEntry

	PostEditor bool
}

type PostFormParams struct {
	Ctx *ReqContext

	// Post is nil when creating
	Post *blognova.Post

	Categories []*blognova.Category
	Locations  []*blognova.Location

	Error string
}

type PostDeleteParams struct {
	Ctx *ReqContext

	Post     *blognova.Post
	Rendered template.HTML
}

type CategoryParams struct {
	Ctx *ReqContext

	Category *blognova.Category

	Entries  []*feedEntry
	Page     int
	NumPages int
}

type ProfileParams struct {
	Ctx *ReqContext

	ContentUser *blognova.User
	Owner       bool

	Entries  []*feedEntry
	Page     int
	NumPages int
}

type ProfileEditParams struct {
	Ctx *ReqContext

	Error string
}

type CommentEditParams struct {
	Ctx *ReqContext

	Post    *blognova.Post
	Comment *blognova.Comment

	Error string
}

type CommentDeleteParams struct {
	Ctx *ReqContext

	Post    *blognova.Post
	Comment *blognova.Comment
}

type AuthParams struct {
	Ctx *ReqContext

	Back  string
	Error string
}

type StatusParams struct {
	Ctx *ReqContext

	Code    int
	Message string
}

// feedEntries joins a page of posts with their authors.
func (rt *Web) feedEntries(r *http.Request, feed *sudoapi.PostFeed) []*feedEntry {
	ids := make([]int, 0, len(feed.Posts))
	for _, post := range feed.Posts {
		ids = append(ids, post.AuthorID)
	}
	authors, err := rt.base.UsersByIDs(r.Context(), ids)
	if err != nil {
		slog.WarnContext(r.Context(), "Couldn't load feed authors", slog.Any("err", err))
		authors = make(map[int]*blognova.User)
	}
	entries := make([]*feedEntry, 0, len(feed.Posts))
	for _, post := range feed.Posts {
		entries = append(entries, &feedEntry{Post: post, Author: authors[post.AuthorID]})
	}
	return entries
}

func (rt *Web) parse(optFuncs template.FuncMap, files ...string) *template.Template {
	templs, err := fs.Sub(templateDir, "templ")
	if err != nil {
		slog.Error("Couldn't open template directory", slog.Any("err", err))
		panic(err)
	}
	t := template.New("layout.html").Funcs(rt.funcs)
	if optFuncs != nil {
		t = t.Funcs(optFuncs)
	}
	files = append(files, "util/navbar.html", "util/footer.html")
	return template.Must(t.ParseFS(templs, append([]string{"layout.html"}, files...)...))
}
