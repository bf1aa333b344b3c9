package http

import (
	"net/http"

	"github.com/goliatone/go-folio/internal/responses"
)

func (api *API) handlePostList(w http.ResponseWriter, r *http.Request) {
	api.listPosts(w, r, api.pageSize)
}

func (api *API) handleAdminPostList(w http.ResponseWriter, r *http.Request) {
	api.listPosts(w, r, api.adminPageSize)
}

func (api *API) listPosts(w http.ResponseWriter, r *http.Request, pageSize int) {
	opts, err := api.listOptions(r, pageSize)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	result, err := api.posts.Page(r.Context(), opts)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writePageHeaders(w, result)
	writeJSON(w, http.StatusOK, responses.Posts(result.Items))
}

func (api *API) handlePostGet(w http.ResponseWriter, r *http.Request) {
	post, err := api.posts.Get(r.Context(), r.PathValue("slug"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	if notModified(w, r, etag(post.Source.Checksum)) {
		return
	}
	writeJSON(w, http.StatusOK, responses.Post(post))
}

func (api *API) handlePostFeatured(w http.ResponseWriter, r *http.Request) {
	posts, err := api.posts.Featured(r.Context(), api.featuredPosts)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, responses.Posts(posts))
}

func (api *API) handlePostCategories(w http.ResponseWriter, r *http.Request) {
	terms, err := api.posts.Terms(r.Context())
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, responses.Terms(terms))
}
