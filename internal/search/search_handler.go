package search

import (
	"github.com/Nir-Bhay/LinkedIn-clone/internal/svc"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

type SearchHandler struct {
	svc *svc.ServiceContext
}

func NewSearchHandler(svc *svc.ServiceContext) *SearchHandler {
	return &SearchHandler{svc: svc}
}
