package ads

// Journal is an ordered, deduplicated collection of articles keyed by
// bibcode. Iteration follows the order the remote API emitted documents
// (first occurrence wins for duplicates); membership tests are set
// semantics. Articles are materialized lazily: membership can be known
// before an Article has been created or its payload loaded.
type Journal struct {
	client   *Client
	order    []string
	articles map[string]*Article
}

// NewJournal creates a Journal from a bibcode list, with no payloads.
// Duplicate bibcodes are dropped, keeping first-occurrence order.
func NewJournal(c *Client, bibcodes []string) *Journal {
	j := &Journal{client: c, articles: make(map[string]*Article)}
	for _, b := range bibcodes {
		j.add(b, nil)
	}
	return j
}

// NewJournalFromDocs creates a fully populated Journal from search payloads,
// preserving payload order. Used both for live results and for cache
// rehydration.
func NewJournalFromDocs(c *Client, docs []Doc) *Journal {
	return newJournalFromDocs(c, docs)
}

func newJournalFromDocs(c *Client, docs []Doc) *Journal {
	j := &Journal{client: c, articles: make(map[string]*Article)}
	for _, d := range docs {
		doc := d
		j.add(d.Bibcode, &doc)
	}
	return j
}

func (j *Journal) add(bibcode string, doc *Doc) {
	if _, ok := j.articles[bibcode]; ok {
		return
	}
	j.order = append(j.order, bibcode)
	if doc != nil {
		j.articles[bibcode] = NewArticleFromDoc(j.client, *doc)
	} else {
		j.articles[bibcode] = nil
	}
}

// merge appends another journal's articles, keeping first-occurrence order.
func (j *Journal) merge(other *Journal) {
	for _, b := range other.order {
		if _, ok := j.articles[b]; ok {
			continue
		}
		j.order = append(j.order, b)
		j.articles[b] = other.articles[b]
	}
}

// Len returns the number of distinct bibcodes.
func (j *Journal) Len() int {
	return len(j.order)
}

// Contains reports membership by bibcode.
func (j *Journal) Contains(bibcode string) bool {
	_, ok := j.articles[bibcode]
	return ok
}

// Bibcodes returns the deduplicated bibcodes in iteration order.
func (j *Journal) Bibcodes() []string {
	out := make([]string, len(j.order))
	copy(out, j.order)
	return out
}

// Get returns the Article for a member bibcode, creating an unloaded
// placeholder on first access. Returns nil for non-members.
func (j *Journal) Get(bibcode string) *Article {
	a, ok := j.articles[bibcode]
	if !ok {
		return nil
	}
	if a == nil {
		a = NewArticle(j.client, bibcode)
		j.articles[bibcode] = a
	}
	return a
}

// Articles returns all member articles in iteration order, materializing
// placeholders as needed.
func (j *Journal) Articles() []*Article {
	out := make([]*Article, 0, len(j.order))
	for _, b := range j.order {
		out = append(out, j.Get(b))
	}
	return out
}

// Docs returns the loaded payloads in iteration order. Placeholders that
// have never been loaded are skipped; journals built from search results
// are always fully loaded.
func (j *Journal) Docs() []Doc {
	out := make([]Doc, 0, len(j.order))
	for _, b := range j.order {
		if a := j.articles[b]; a != nil && a.doc != nil {
			out = append(out, *a.doc)
		}
	}
	return out
}
