package web

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KiloProjects/blognova"
	"github.com/KiloProjects/blognova/internal/util"
	"github.com/KiloProjects/blognova/sudoapi"
	"github.com/gorilla/schema"
	"golang.org/x/sync/errgroup"
)

const pubDateFormat = "2006-01-02T15:04"

func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return page
}

func (rt *Web) index() http.HandlerFunc {
	templ := rt.parse(nil, "index.html", "util/post_summary.html", "util/paginator.html")
	return func(w http.ResponseWriter, r *http.Request) {
		feed, err := rt.base.HomeFeed(r.Context(), parsePage(r))
		if err != nil {
			rt.statusPage(w, r, blognova.ErrorCode(err), "Couldn't load posts")
			return
		}
		rt.runTempl(w, r, templ, &IndexParams{
			Ctx: GenContext(r),

			Entries:  rt.feedEntries(r, feed),
			Page:     feed.Page,
			NumPages: feed.NumPages,
		})
	}
}

func (rt *Web) postDetail() http.HandlerFunc {
	templ := rt.parse(nil, "post/view.html", "util/comment.html")
	return func(w http.ResponseWriter, r *http.Request) {
		post := util.Post(r)

		var author *blognova.User
		var category *blognova.Category
		var location *blognova.Location
		var comments []*blognova.Comment
		var commentAuthors map[int]*blognova.User

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			author, err = rt.base.UserByID(ctx, post.AuthorID)
			return
		})
		g.Go(func() error {
			if post.CategoryID == nil {
				return nil
			}
			category, _ = rt.base.CategoryByID(ctx, *post.CategoryID)
			return nil
		})
		g.Go(func() error {
			if post.LocationID == nil {
				return nil
			}
			location, _ = rt.base.Location(ctx, *post.LocationID)
			return nil
		})
		g.Go(func() error {
			cmts, err := rt.base.PostComments(ctx, post.ID)
			if err != nil {
				return err
			}
			ids := make([]int, 0, len(cmts))
			for _, c := range cmts {
				ids = append(ids, c.AuthorID)
			}
			authors, err := rt.base.UsersByIDs(ctx, ids)
			if err != nil {
				return err
			}
			comments, commentAuthors = cmts, authors
			return nil
		})
		if err := g.Wait(); err != nil {
			slog.WarnContext(r.Context(), "Couldn't load post page", slog.Any("err", err), slog.Int("post_id", post.ID))
			rt.statusPage(w, r, 500, "Couldn't load post")
			return
		}

		rendered, err := rt.base.RenderedPostText(post)
		if err != nil {
			rendered = template.HTML(template.HTMLEscapeString(post.Text))
		}

		entries := make([]*commentEntry, 0, len(comments))
		for _, c := range comments {
			cRendered, err := rt.base.RenderedCommentText(c)
			if err != nil {
				cRendered = template.HTML(template.HTMLEscapeString(c.Text))
			}
			entries = append(entries, &commentEntry{
				Comment:  c,
				Author:   commentAuthors[c.AuthorID],
				Rendered: cRendered,

				Editable: rt.base.IsCommentEditor(util.User(r), c),
			})
		}

		rt.runTempl(w, r, templ, &PostParams{
			Ctx: GenContext(r),

			Post:     post,
			Author:   author,
			Category: category,
			Location: location,

			Rendered: rendered,

			Comments: entries,

			PostEditor: rt.base.IsPostEditor(util.User(r), post),
		})
	}
}

// Post forms

type postForm struct {
	Title string `schema:"title"`
	Text  string `schema:"text"`

	PubDate   string `schema:"pub_date"`
	Published bool   `schema:"published"`

	CategoryID int    `schema:"category_id"`
	LocationID int    `schema:"location_id"`
	ImageURL   string `schema:"image_url"`
}

var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

func decodePostForm(r *http.Request) (*postForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	var form postForm
	if err := formDecoder.Decode(&form, r.PostForm); err != nil {
		return nil, err
	}
	return &form, nil
}

func (form *postForm) pubDate() (time.Time, error) {
	if strings.TrimSpace(form.PubDate) == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(pubDateFormat, form.PubDate, time.Local)
}

func (rt *Web) postFormParams(r *http.Request, post *blognova.Post, errMsg string) *PostFormParams {
	categories, err := rt.base.Categories(r.Context(), blognova.CategoryFilter{})
	if err != nil {
		categories = []*blognova.Category{}
	}
	locations, err := rt.base.Locations(r.Context(), blognova.LocationFilter{})
	if err != nil {
		locations = []*blognova.Location{}
	}
	return &PostFormParams{
		Ctx: GenContext(r),

		Post: post,

		Categories: categories,
		Locations:  locations,

		Error: errMsg,
	}
}

func (rt *Web) createPost() http.HandlerFunc {
	templ := rt.parse(nil, "post/form.html")
	return func(w http.ResponseWriter, r *http.Request) {
		rt.runTempl(w, r, templ, rt.postFormParams(r, nil, ""))
	}
}

func (rt *Web) createPostSubmit() http.HandlerFunc {
	templ := rt.parse(nil, "post/form.html")
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := decodePostForm(r)
		if err != nil {
			rt.runTempl(w, r, templ, rt.postFormParams(r, nil, "Invalid form data"))
			return
		}
		pubDate, err := form.pubDate()
		if err != nil {
			rt.runTempl(w, r, templ, rt.postFormParams(r, nil, "Invalid publication date"))
			return
		}
		args := sudoapi.PostCreateArgs{
			Title: form.Title,
			Text:  form.Text,

			PubDate:   pubDate,
			Published: form.Published,
		}
		if form.CategoryID > 0 {
			args.CategoryID = &form.CategoryID
		}
		if form.LocationID > 0 {
			args.LocationID = &form.LocationID
		}
		if img := strings.TrimSpace(form.ImageURL); img != "" {
			args.ImageURL = &img
		}
		if _, err := rt.base.CreatePost(r.Context(), util.User(r), args); err != nil {
			rt.runTempl(w, r, templ, rt.postFormParams(r, nil, err.Error()))
			return
		}
		http.Redirect(w, r, "/profile/"+util.User(r).Name, http.StatusFound)
	}
}

func (rt *Web) editPost() http.HandlerFunc {
	templ := rt.parse(nil, "post/form.html")
	return func(w http.ResponseWriter, r *http.Request) {
		rt.runTempl(w, r, templ, rt.postFormParams(r, util.Post(r), ""))
	}
}

func (rt *Web) editPostSubmit() http.HandlerFunc {
	templ := rt.parse(nil, "post/form.html")
	return func(w http.ResponseWriter, r *http.Request) {
		post := util.Post(r)
		form, err := decodePostForm(r)
		if err != nil {
			rt.runTempl(w, r, templ, rt.postFormParams(r, post, "Invalid form data"))
			return
		}
		pubDate, err := form.pubDate()
		if err != nil {
			rt.runTempl(w, r, templ, rt.postFormParams(r, post, "Invalid publication date"))
			return
		}

		// the form carries the full post state, so every column is written
		upd := blognova.PostUpdate{
			Title: &form.Title,
			Text:  &form.Text,

			Published: &form.Published,

			SetCategory: true,
			SetLocation: true,
			SetImage:    true,
		}
		if !pubDate.IsZero() {
			upd.PubDate = &pubDate
		}
		if form.CategoryID > 0 {
			upd.CategoryID = &form.CategoryID
		}
		if form.LocationID > 0 {
			upd.LocationID = &form.LocationID
		}
		if img := strings.TrimSpace(form.ImageURL); img != "" {
			upd.ImageURL = &img
		}

		if err := rt.base.UpdatePost(r.Context(), post, util.User(r), upd); err != nil {
			if blognova.ErrorCode(err) == 404 {
				rt.statusPage(w, r, 404, "Post not found")
				return
			}
			rt.runTempl(w, r, templ, rt.postFormParams(r, post, err.Error()))
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/posts/%d", post.ID), http.StatusFound)
	}
}

func (rt *Web) deletePost() http.HandlerFunc {
	templ := rt.parse(nil, "post/delete.html")
	return func(w http.ResponseWriter, r *http.Request) {
		post := util.Post(r)
		rendered, err := rt.base.RenderedPostText(post)
		if err != nil {
			rendered = template.HTML(template.HTMLEscapeString(post.Text))
		}
		rt.runTempl(w, r, templ, &PostDeleteParams{
			Ctx: GenContext(r),

			Post:     post,
			Rendered: rendered,
		})
	}
}

func (rt *Web) deletePostSubmit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := rt.base.DeletePost(r.Context(), util.Post(r), util.User(r)); err != nil {
			rt.statusPage(w, r, blognova.ErrorCode(err), err.Error())
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// Feeds

func (rt *Web) categoryFeed() http.HandlerFunc {
	templ := rt.parse(nil, "category.html", "util/post_summary.html", "util/paginator.html")
	return func(w http.ResponseWriter, r *http.Request) {
		category := util.Category(r)
		feed, err := rt.base.CategoryFeed(r.Context(), category, parsePage(r))
		if err != nil {
			rt.statusPage(w, r, blognova.ErrorCode(err), "Couldn't load posts")
			return
		}
		rt.runTempl(w, r, templ, &CategoryParams{
			Ctx: GenContext(r),

			Category: category,

			Entries:  rt.feedEntries(r, feed),
			Page:     feed.Page,
			NumPages: feed.NumPages,
		})
	}
}

func (rt *Web) profile() http.HandlerFunc {
	templ := rt.parse(nil, "profile.html", "util/post_summary.html", "util/paginator.html")
	return func(w http.ResponseWriter, r *http.Request) {
		profile := util.ContentUser(r)
		feed, err := rt.base.ProfileFeed(r.Context(), profile, util.User(r), parsePage(r))
		if err != nil {
			rt.statusPage(w, r, blognova.ErrorCode(err), "Couldn't load posts")
			return
		}
		rt.runTempl(w, r, templ, &ProfileParams{
			Ctx: GenContext(r),

			ContentUser: profile,
			Owner:       rt.base.IsProfileOwner(util.User(r), profile),

			Entries:  rt.feedEntries(r, feed),
			Page:     feed.Page,
			NumPages: feed.NumPages,
		})
	}
}

// Profile editing

func (rt *Web) editProfile() http.HandlerFunc {
	templ := rt.parse(nil, "profile_edit.html")
	return func(w http.ResponseWriter, r *http.Request) {
		rt.runTempl(w, r, templ, &ProfileEditParams{Ctx: GenContext(r)})
	}
}

func (rt *Web) editProfileSubmit() http.HandlerFunc {
	templ := rt.parse(nil, "profile_edit.html")
	return func(w http.ResponseWriter, r *http.Request) {
		user := util.User(r)
		name := strings.TrimSpace(r.FormValue("username"))
		email := strings.TrimSpace(r.FormValue("email"))
		firstName := r.FormValue("first_name")
		lastName := r.FormValue("last_name")
		bio := r.FormValue("bio")
		upd := blognova.UserUpdate{
			FirstName: &firstName,
			LastName:  &lastName,
			Bio:       &bio,
		}
		if name != "" {
			upd.Name = &name
		}
		if email != "" {
			upd.Email = &email
		}
		if err := rt.base.UpdateProfile(r.Context(), user, user, upd); err != nil {
			rt.runTempl(w, r, templ, &ProfileEditParams{Ctx: GenContext(r), Error: err.Error()})
			return
		}
		target := user.Name
		if upd.Name != nil {
			target = *upd.Name
		}
		http.Redirect(w, r, "/profile/"+target, http.StatusFound)
	}
}

// Comments

func (rt *Web) addComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post := util.Post(r)
		if _, err := rt.base.CreateComment(r.Context(), util.User(r), post, r.FormValue("text")); err != nil {
			rt.statusPage(w, r, blognova.ErrorCode(err), err.Error())
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/posts/%d", post.ID), http.StatusFound)
	}
}

func (rt *Web) editComment() http.HandlerFunc {
	templ := rt.parse(nil, "comment_edit.html")
	return func(w http.ResponseWriter, r *http.Request) {
		rt.runTempl(w, r, templ, &CommentEditParams{
			Ctx: GenContext(r),

			Post:    util.Post(r),
			Comment: util.Comment(r),
		})
	}
}

func (rt *Web) editCommentSubmit() http.HandlerFunc {
	templ := rt.parse(nil, "comment_edit.html")
	return func(w http.ResponseWriter, r *http.Request) {
		post := util.Post(r)
		if err := rt.base.UpdateComment(r.Context(), util.Comment(r), util.User(r), r.FormValue("text")); err != nil {
			rt.runTempl(w, r, templ, &CommentEditParams{
				Ctx: GenContext(r),

				Post:    post,
				Comment: util.Comment(r),

				Error: err.Error(),
			})
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/posts/%d", post.ID), http.StatusFound)
	}
}

func (rt *Web) deleteComment() http.HandlerFunc {
	templ := rt.parse(nil, "comment_delete.html")
	return func(w http.ResponseWriter, r *http.Request) {
		rt.runTempl(w, r, templ, &CommentDeleteParams{
			Ctx: GenContext(r),

			Post:    util.Post(r),
			Comment: util.Comment(r),
		})
	}
}

func (rt *Web) deleteCommentSubmit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post := util.Post(r)
		if err := rt.base.DeleteComment(r.Context(), util.Comment(r), util.User(r)); err != nil {
			rt.statusPage(w, r, blognova.ErrorCode(err), err.Error())
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/posts/%d", post.ID), http.StatusFound)
	}
}
