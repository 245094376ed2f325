package site

import (
	"errors"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/worklist"
)

type worksRequest struct {
	Sort string `query:"sort" json:"sort"`
}

type workRequest struct {
	Slug string `path:"slug"`
}

func (s *Site) homePage(_ handler.Context, _ struct{}) handler.Response {
	return handler.Templ(s.homeView())
}

func (s *Site) homeView() handler.TemplComponent {
	return s.layout(pageMeta{Path: "/"}, homeBody(s.content))
}

func (s *Site) worksPage(ctx handler.Context, req worksRequest) handler.Response {
	key, err := worklist.ParseSortKey(req.Sort)
	if err != nil {
		s.log.WarnContext(ctx, "unknown sort key", logger.SortKey(req.Sort))
		return handler.Error(errors.Join(handler.ErrBadRequest, err))
	}
	return handler.Templ(s.worksView(key))
}

func (s *Site) worksView(key worklist.SortKey) handler.TemplComponent {
	items := worklist.Resort(s.content.Works, key)
	return s.layout(pageMeta{
		Path:        "/works",
		Title:       "Works",
		Description: "Novels, stories and essays by " + s.content.Author + ".",
	}, worksBody(items, key))
}

func (s *Site) workPage(_ handler.Context, req workRequest) handler.Response {
	it, ok := s.content.Work(req.Slug)
	if !ok {
		return handler.Error(handler.ErrNotFound)
	}
	return handler.Templ(s.workView(it))
}

func (s *Site) workView(it worklist.Item) handler.TemplComponent {
	desc := it.Title + " by " + s.content.Author + "."
	if it.Kind != "" {
		desc = it.Title + " (" + it.Kind + ") by " + s.content.Author + "."
	}
	return s.layout(pageMeta{
		Path:        "/works/" + it.Slug,
		Title:       it.Title,
		Description: desc,
	}, workBody(it))
}
