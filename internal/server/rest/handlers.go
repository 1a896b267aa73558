package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophboard/internal/server/models"
	"github.com/dmitrijs2005/gophboard/internal/server/services"
	"github.com/dmitrijs2005/gophboard/internal/wire"
)

type validator interface {
	Validate() error
}

// bind decodes and validates the request body.
func bind(r *http.Request, req validator) error {
	if err := decode(r, req); err != nil {
		return err
	}
	return req.Validate()
}

func toWire(it *models.Item) wire.Item {
	return wire.Item{ID: it.ID, Title: it.Title, Content: it.Content, Category: it.Category}
}

func toWireList(list []*models.Item) []wire.Item {
	out := make([]wire.Item, 0, len(list))
	for _, it := range list {
		out = append(out, toWire(it))
	}
	return out
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, r, wire.Empty{})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req wire.LoginRequest
	if err := bind(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	token, err := s.auth.Login(r.Context(), req.Address, req.Message, req.SignedMessage)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, r, wire.TokenResponse{Token: token})
}

func (s *HTTPServer) refresh(w http.ResponseWriter, r *http.Request) {
	token, err := s.auth.Refresh(r.Context(), addressFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, r, wire.TokenResponse{Token: token})
}

func (s *HTTPServer) allItems(w http.ResponseWriter, r *http.Request) {
	board, err := s.board.All(r.Context(), addressFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, r, wire.AllItemsResponse{Items: toWireList(board.Items), Orders: board.Orders})
}

func (s *HTTPServer) createItem(w http.ResponseWriter, r *http.Request) {
	var req wire.CreateRequest
	if err := bind(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.board.Create(r.Context(), addressFromContext(r.Context()), req.Category, req.Title)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, r, wire.IDResponse{ID: id})
}

func (s *HTTPServer) updateItem(w http.ResponseWriter, r *http.Request) {
	var req wire.UpdateRequest
	if err := bind(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.board.Move(r.Context(), addressFromContext(r.Context()), services.ItemUpdate{
		ID:       req.ID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Position: req.Position,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, r, wire.IDResponse{ID: id})
}

func (s *HTTPServer) deleteItem(w http.ResponseWriter, r *http.Request) {
	var req wire.DeleteRequest
	if err := bind(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.board.SoftDelete(r.Context(), addressFromContext(r.Context()), req.ID, req.Category); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, r, wire.Empty{})
}

func (s *HTTPServer) deleteItemPermanently(w http.ResponseWriter, r *http.Request) {
	var req wire.DeleteRequest
	if err := bind(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.board.PermanentDelete(r.Context(), addressFromContext(r.Context()), req.ID, req.Category); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, r, wire.Empty{})
}

func (s *HTTPServer) deletedItems(w http.ResponseWriter, r *http.Request) {
	var req wire.DeletedRequest
	if err := bind(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	list, err := s.board.ListDeleted(r.Context(), addressFromContext(r.Context()), req.Offset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, r, wire.DeletedResponse{Items: toWireList(list)})
}

func (s *HTTPServer) restoreItem(w http.ResponseWriter, r *http.Request) {
	var req wire.RestoreRequest
	if err := bind(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	item, err := s.board.Restore(r.Context(), addressFromContext(r.Context()), req.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, r, wire.RestoreResponse{Item: toWire(item)})
}
