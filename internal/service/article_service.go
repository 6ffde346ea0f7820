//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"

	"castmind/backend/internal/model"
	"castmind/backend/internal/repository"
)

const maxArticlePage = 200

type ArticleService interface {
	List(ctx context.Context, filter model.ArticleFilter) ([]model.Article, error)
	Get(ctx context.Context, id int64) (model.Article, error)
	MarkRead(ctx context.Context, id int64, read bool) error
	Stats(ctx context.Context) (model.ArticleStats, error)
}

type articleService struct {
	articles repository.ArticleRepository
	feeds    repository.FeedRepository
}

func NewArticleService(articles repository.ArticleRepository, feeds repository.FeedRepository) ArticleService {
	return &articleService{articles: articles, feeds: feeds}
}

func (s *articleService) List(ctx context.Context, filter model.ArticleFilter) ([]model.Article, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, ErrInvalid
	}
	if filter.Limit > maxArticlePage {
		filter.Limit = maxArticlePage
	}
	if filter.FeedID != nil {
		if _, err := s.feeds.GetByID(ctx, *filter.FeedID); err != nil {
			return nil, notFound(err)
		}
	}
	return s.articles.List(ctx, filter)
}

func (s *articleService) Get(ctx context.Context, id int64) (model.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return model.Article{}, notFound(err)
	}
	return article, nil
}

func (s *articleService) MarkRead(ctx context.Context, id int64, read bool) error {
	return notFound(s.articles.MarkRead(ctx, id, read))
}

func (s *articleService) Stats(ctx context.Context) (model.ArticleStats, error) {
	return s.articles.Stats(ctx)
}
