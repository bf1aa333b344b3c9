package http

import (
	"net/http"

	"github.com/goliatone/go-folio/internal/responses"
)

func (api *API) handleProjectList(w http.ResponseWriter, r *http.Request) {
	opts, err := api.listOptions(r, api.pageSize)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	result, err := api.projects.Page(r.Context(), opts)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writePageHeaders(w, result)
	writeJSON(w, http.StatusOK, responses.Projects(result.Items))
}

func (api *API) handleProjectGet(w http.ResponseWriter, r *http.Request) {
	project, err := api.projects.Get(r.Context(), r.PathValue("slug"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	if notModified(w, r, etag(project.Source.Checksum)) {
		return
	}
	writeJSON(w, http.StatusOK, responses.Project(project))
}

func (api *API) handleProjectFeatured(w http.ResponseWriter, r *http.Request) {
	projects, err := api.projects.Featured(r.Context(), api.featuredProjects)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, responses.Projects(projects))
}
