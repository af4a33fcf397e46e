package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"msdsapi/internal/cache"
	"msdsapi/internal/logger"
	"msdsapi/internal/model"
	"msdsapi/internal/repository"
)

// QueryEngine answers the read side of the catalog. It keeps no state of its own
// apart from the optional options cache.
type QueryEngine struct {
	docs  repository.DocumentRepository
	atts  repository.AttachmentRepository
	cache cache.OptionsCache
	log   *logger.Logger
}

// NewQueryEngine builds a QueryEngine. A nil cache disables caching.
func NewQueryEngine(docs repository.DocumentRepository, atts repository.AttachmentRepository, c cache.OptionsCache, log *logger.Logger) *QueryEngine {
	if c == nil {
		c = cache.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &QueryEngine{docs: docs, atts: atts, cache: c, log: log.With("component", "query")}
}

// List returns one page of bare documents ordered by id. page and perPage must be normalized.
func (q *QueryEngine) List(ctx context.Context, page, perPage int) (*Page[model.Document], error) {
	var (
		items []model.Document
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = q.docs.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		items, err = q.docs.List(gctx, pageQuery(page, perPage))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return &Page[model.Document]{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

// ListDetailed is List with each document's attachments folded in from a single join query.
func (q *QueryEngine) ListDetailed(ctx context.Context, page, perPage int) (*Page[model.DocumentWithAttachments], error) {
	var (
		rows  []model.DocumentAttachmentRow
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = q.docs.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		rows, err = q.docs.ListWithAttachments(gctx, pageQuery(page, perPage))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list documents with attachments: %w", err)
	}
	return &Page[model.DocumentWithAttachments]{Items: groupRows(rows), Page: page, PerPage: perPage, Total: total}, nil
}

// groupRows folds the flat join into one item per document. Rows arrive ordered by
// document id then attachment id, so both orders are preserved as-is.
func groupRows(rows []model.DocumentAttachmentRow) []model.DocumentWithAttachments {
	out := make([]model.DocumentWithAttachments, 0)
	index := make(map[string]int)
	for _, r := range rows {
		i, ok := index[r.Document.ID]
		if !ok {
			i = len(out)
			index[r.Document.ID] = i
			out = append(out, model.DocumentWithAttachments{
				Document:    r.Document,
				Attachments: make([]model.AttachmentRef, 0),
			})
		}
		if r.Attachment == nil {
			continue
		}
		ref := *r.Attachment
		ref.FilePath = model.ResolvablePath(ref.FilePath)
		out[i].Attachments = append(out[i].Attachments, ref)
	}
	return out
}

// Detail returns a document with its attachments, most recently linked first.
func (q *QueryEngine) Detail(ctx context.Context, id string) (*model.DocumentDetail, error) {
	doc, err := q.docs.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "document "+id)
	}
	linked, err := q.atts.ListByDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list attachments of %s: %w", id, err)
	}
	for i := range linked {
		linked[i].FilePath = linked[i].ResolvableFilePath()
	}
	return &model.DocumentDetail{Document: *doc, Attachments: linked}, nil
}

// Search matches keyword as a case-insensitive substring of id, title or usage.
// A blank keyword matches every document.
func (q *QueryEngine) Search(ctx context.Context, keyword string, page, perPage int) (*Page[model.Document], error) {
	res, err := q.docs.Search(ctx, strings.TrimSpace(keyword), pageQuery(page, perPage))
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	return &Page[model.Document]{Items: res.Items, Page: page, PerPage: perPage, Total: res.Total}, nil
}

// Options collects the distinct filter values. The four reads run concurrently.
func (q *QueryEngine) Options(ctx context.Context) (*model.Options, error) {
	gen, genErr := q.cache.Generation(ctx)
	if genErr != nil {
		q.log.Warn("options cache generation read failed", "error", genErr)
	} else if cached, ok, err := q.cache.Get(ctx, gen); err != nil {
		q.log.Warn("options cache read failed", "error", err)
	} else if ok {
		return cached, nil
	}

	var opts model.Options
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		opts.Usages, err = q.docs.DistinctUsages(gctx)
		return err
	})
	g.Go(func() (err error) {
		opts.Locations, err = q.atts.DistinctLinkedTitles(gctx, model.AttachmentLocation)
		return err
	})
	g.Go(func() (err error) {
		opts.Warnings, err = q.atts.DistinctLinkedTitles(gctx, model.AttachmentWarningSymbol)
		return err
	})
	g.Go(func() (err error) {
		opts.Protective, err = q.atts.DistinctLinkedTitles(gctx, model.AttachmentProtectiveEquipment)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load options: %w", err)
	}

	// Without a generation the snapshot could outlive a concurrent write, so it is not cached.
	if genErr == nil {
		if err := q.cache.Set(ctx, gen, &opts); err != nil {
			q.log.Warn("options cache write failed", "error", err)
		}
	}
	return &opts, nil
}

// InvalidateOptions drops the cached options after a catalog write.
func (q *QueryEngine) InvalidateOptions(ctx context.Context) {
	if err := q.cache.Invalidate(ctx); err != nil {
		q.log.Warn("options cache invalidation failed", "error", err)
	}
}
