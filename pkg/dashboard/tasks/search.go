package tasks

import (
	"context"

	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
	taskerrors "github.com/maximthomas/taskboard/pkg/dashboard/errors"
	"github.com/maximthomas/taskboard/pkg/dashboard/state"
	"github.com/pkg/errors"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type searcher interface {
	Search(ctx context.Context, apiKey, cx, query string, num int64) ([]callbacks.Item, error)
}

type customSearch struct {
	endpoint string
}

func (cs customSearch) Search(ctx context.Context, apiKey, cx, query string, num int64) ([]callbacks.Item, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if cs.endpoint != "" {
		opts = append(opts, option.WithEndpoint(cs.endpoint))
	}
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "error creating custom search service")
	}
	res, err := svc.Cse.List().Q(query).Cx(cx).Num(num).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	items := make([]callbacks.Item, 0, len(res.Items))
	for _, r := range res.Items {
		items = append(items, callbacks.Item{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
		})
	}
	return items, nil
}

type searchProperties struct {
	Num      int64
	Endpoint string
}

// Search runs a Google Custom Search query
type Search struct {
	BaseTask
	props    searchProperties
	searcher searcher
}

func (s *Search) Execute(ctx context.Context, sub *state.Submission) (Result, error) {
	items, err := s.searcher.Search(ctx, sub.Value("apiKey"), sub.Value("cx"), sub.Value("query"), s.props.Num)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return Result{}, taskerrors.NewExternalCallError("An API error occurred", err).WithDetail(apiErr.Body)
		}
		return Result{}, taskerrors.NewExternalCallError("An unexpected error occurred", err)
	}
	if len(items) == 0 {
		return Result{Message: "No results found."}, nil
	}
	return Result{Message: "Top Search Results:", Items: items}, nil
}

func init() {
	RegisterTask("google-search", newSearch)
}

func newSearch(base BaseTask) (Task, error) {
	props := searchProperties{Num: 10}
	if err := base.decodeProperties(&props); err != nil {
		return nil, err
	}
	if props.Num < 1 || props.Num > 10 {
		return nil, errors.Errorf("search num must be between 1 and 10, got %v", props.Num)
	}
	base.callbacks = []callbacks.Callback{
		passwordCallback("apiKey", "Enter your Google API Key"),
		passwordCallback("cx", "Enter your CSE ID"),
		textCallback("query", "Enter your search query"),
	}
	base.invalidMessage = "Please fill in all fields before searching."
	return &Search{
		BaseTask: base,
		props:    props,
		searcher: customSearch{endpoint: props.Endpoint},
	}, nil
}
