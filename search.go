package nomurahome

// SearchService runs hybrid searches over the available catalog.
type SearchService struct {
	svc searchUseCase
	obs *observer
}

// Query starts a fluent search for the given text.
//
//	hits, err := client.Search().Query("oak table").TopK(5).Do(ctx)
func (s *SearchService) Query(text string) *SearchQuery {
	return &SearchQuery{svc: s.svc, obs: s.obs, query: text}
}
