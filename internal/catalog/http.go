package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"ProductAPI/pkg/kit"
)

const productNotFoundMsg = "Product not found"

type Server struct {
	Store   Store
	Creator *Creator
	Log     *zap.Logger
}

type listResp struct {
	Products []Product `json:"products"`
}

type showResp struct {
	Product Product `json:"product"`
}

func (s *Server) Index(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, listResp{Products: s.Store.All()})
}

func (s *Server) Show(w http.ResponseWriter, r *http.Request) {
	p, ok := s.find(r)
	if !ok {
		kit.WriteError(w, http.StatusNotFound, productNotFoundMsg)
		return
	}
	kit.WriteJSON(w, http.StatusOK, showResp{Product: p})
}

func (s *Server) Create(w http.ResponseWriter, r *http.Request) {
	var params map[string]any
	if err := kit.DecodeJSON(w, r, &params); err != nil {
		kit.WriteError(w, http.StatusBadRequest, kit.InvalidJSONMsg)
		return
	}

	if err := s.Creator.Create(params); err != nil {
		switch {
		case errors.Is(err, ErrNameRequired):
			kit.WriteError(w, http.StatusBadRequest, "Product name is required")
		case errors.Is(err, ErrNameTaken):
			kit.WriteError(w, http.StatusUnprocessableEntity, "Product name already exists")
		default:
			if s.Log != nil {
				s.Log.Error("create product failed", zap.Error(err))
			}
			kit.WriteError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	kit.WriteMessage(w, http.StatusAccepted, "Product creation in progress")
}

func (s *Server) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := s.find(r)
	if !ok {
		kit.WriteError(w, http.StatusNotFound, productNotFoundMsg)
		return
	}
	s.Store.Delete(p.ID)
	kit.WriteMessage(w, http.StatusOK, "Product deleted successfully")
}

func (s *Server) find(r *http.Request) (Product, bool) {
	id, err := strconv.ParseInt(kit.PathParam(r, "id"), 10, 64)
	if err != nil {
		return Product{}, false
	}
	return s.Store.Find(id)
}
