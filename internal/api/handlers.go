package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stitchgraph/pkg/buildinfo"
	errs "github.com/matzehuels/stitchgraph/pkg/errors"
	"github.com/matzehuels/stitchgraph/pkg/io"
	"github.com/matzehuels/stitchgraph/pkg/pipeline"
)

// simplifyResponse is the data of a successful simplify call.
type simplifyResponse struct {
	GraphHash string            `json:"graph_hash"`
	Vertices  int               `json:"vertices"`
	Conflicts int               `json:"conflicts"`
	Stitches  int               `json:"stitches"`
	Groups    int               `json:"groups"`
	Merges    int               `json:"merges"`
	Cached    bool              `json:"cached"`
	Partition json.RawMessage   `json:"partition"`
	Artifacts map[string][]byte `json:"artifacts,omitempty"` // base64 in JSON
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, envelope{Data: healthResponse{Status: "ok", Build: buildinfo.Get()}})
}

// handleSimplify simplifies the graph in the request body.
func (s *Server) handleSimplify(w http.ResponseWriter, r *http.Request) {
	g, err := io.ReadGraph(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := optionsFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Graph = g
	s.run(w, r, opts)
}

// handleGraph simplifies a graph from the graphs directory. Names without
// an extension get ".json".
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	if s.graphsDir == "" {
		writeError(w, r, errNotFound(r.URL.Path))
		return
	}
	name := chi.URLParam(r, "name")
	if err := errs.ValidatePath(name); err != nil {
		writeError(w, r, err)
		return
	}
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	opts, err := optionsFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Path = filepath.Join(s.graphsDir, name)
	s.run(w, r, opts)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := simplifyResponse{
		GraphHash: result.GraphHash,
		Vertices:  result.Stats.Vertices,
		Conflicts: result.Stats.Conflicts,
		Stitches:  result.Stats.Stitches,
		Groups:    result.Stats.Groups,
		Merges:    result.Simplify.Merges,
		Cached:    result.CacheInfo.PartitionHit,
		Partition: result.Artifacts[pipeline.FormatJSON],
	}
	for format, data := range result.Artifacts {
		if format == pipeline.FormatJSON {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string][]byte)
		}
		resp.Artifacts[format] = data
	}
	writeJSON(w, r, http.StatusOK, envelope{Data: resp})
}

// optionsFromQuery reads format, detailed and refresh. The JSON partition
// is always rendered since it is part of every response.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Formats: []string{pipeline.FormatJSON}}

	if f := q.Get("format"); f != "" {
		formats, err := pipeline.ParseFormats(f)
		if err != nil {
			return opts, err
		}
		for _, format := range formats {
			if format != pipeline.FormatJSON {
				opts.Formats = append(opts.Formats, format)
			}
		}
	}

	var err error
	if opts.Detailed, err = boolParam(q.Get("detailed")); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh")); err != nil {
		return opts, err
	}
	return opts, nil
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errs.New(errs.ErrCodeInvalidInput, "invalid boolean %q", v)
	}
	return b, nil
}
