package job

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
)

// DefaultFormRedirectPrefix is the internal path that redirects to a hosted form
const DefaultFormRedirectPrefix = "/api/forms/"

// variant is the recognized shape of a source document
type variant int

const (
	variantGeneric variant = iota
	variantIndex           // lightweight index entry with has* flags
	variantRecord          // full per-job file with links/metadata objects
)

// NormalizerOption configures Normalizer
type NormalizerOption func(*Normalizer)

// WithFormsBaseURL sets the blob-storage base used to synthesize form URLs
func WithFormsBaseURL(base string) NormalizerOption {
	return func(n *Normalizer) {
		n.formsBaseURL = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

// WithFormRedirectPrefix overrides the internal redirect path for locally flagged forms
func WithFormRedirectPrefix(prefix string) NormalizerOption {
	return func(n *Normalizer) {
		if prefix != "" {
			n.formRedirectPrefix = prefix
		}
	}
}

// Normalizer converts heterogeneous source documents into domain.JobRecord values.
// It is safe for concurrent use.
type Normalizer struct {
	formsBaseURL       string
	formRedirectPrefix string
	policy             *bluemonday.Policy
}

// NewNormalizer builds a Normalizer from options
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		formRedirectPrefix: DefaultFormRedirectPrefix,
		policy:             bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// FormURL returns the hosted form URL for id, or "" when no base is configured
func (n *Normalizer) FormURL(id string) string {
	if n.formsBaseURL == "" || id == "" {
		return ""
	}
	return n.formsBaseURL + "/" + id + "_form.pdf"
}

// Normalize maps raw into a JobRecord. The boolean is false when the
// document must be skipped: it is not an object, or id, title or
// organization is missing.
func (n *Normalizer) Normalize(raw any) (domain.JobRecord, bool) {
	doc, ok := asDocument(raw)
	if !ok {
		return domain.JobRecord{}, false
	}

	kind := classify(doc)

	id, ok := firstPresent(doc, idChain(kind)...)
	if !ok {
		return domain.JobRecord{}, false
	}
	title := n.text(doc, titleChain(kind)...)
	org := n.text(doc, organizationChain(kind)...)
	if title == "" || org == "" {
		return domain.JobRecord{}, false
	}

	rec := domain.JobRecord{
		ID:            id,
		Title:         title,
		Organization:  org,
		Location:      n.text(doc, field("location")),
		TotalPosts:    countAt(doc, "totalPosts"),
		Qualification: n.text(doc, field("qualification")),
		Salary:        n.text(doc, field("salary")),
		Department:    n.text(doc, field("department")),
	}
	rec.LastDate, _ = firstPresent(doc, field("lastDate"))
	rec.ApplicationStartDate, _ = firstPresent(doc, field("applicationStartDate"), field("startDate"))
	rec.PublishedAt, _ = firstPresent(doc, publishedChain(kind)...)
	rec.ProcessedAt, _ = firstPresent(doc, field("metadata", "processedAt"), field("processedAt"))
	rec.Links = n.links(doc, kind, id)

	return rec, true
}

func (n *Normalizer) links(doc document, kind variant, id string) domain.Links {
	var l domain.Links

	switch kind {
	case variantIndex:
		l.HasApplicationForm = boolAt(doc, "hasApplicationForm")
		l.HasOfficialWebsite = boolAt(doc, "hasOfficialLink")
		l.HasNotification = boolAt(doc, "hasNotification")
		if l.HasApplicationForm {
			l.ApplicationForm = n.FormURL(id)
		}
		l.SourceURL, _ = firstPresent(doc, field("sourceUrl"), field("url"))
		return l

	case variantRecord:
		l.ApplicationForm, _ = firstPresent(doc, n.formChain(doc, id)...)
		l.OfficialWebsite, _ = firstPresent(doc, field("links", "official"), field("links", "officialWebsite"))
		l.Notification, _ = firstPresent(doc, field("links", "notification"))
		l.SourceURL, _ = firstPresent(doc, field("links", "sourceUrl"), field("url"))

	default:
		l.ApplicationForm, _ = firstPresent(doc, append(n.formChain(doc, id), field("applicationForm"))...)
		l.OfficialWebsite, _ = firstPresent(doc,
			field("links", "official"), field("officialWebsite"), field("official"))
		l.Notification, _ = firstPresent(doc, field("links", "notification"), field("notification"))
		l.SourceURL, _ = firstPresent(doc, field("links", "sourceUrl"), field("sourceUrl"), field("url"))
	}

	l.HasApplicationForm = l.ApplicationForm != "" || boolAt(doc, "hasApplicationForm")
	l.HasOfficialWebsite = l.OfficialWebsite != "" || boolAt(doc, "hasOfficialLink")
	l.HasNotification = l.Notification != "" || boolAt(doc, "hasNotification")
	return l
}

// formChain is the application-form fallback chain for documents carrying a links object
func (n *Normalizer) formChain(doc document, id string) []accessor {
	evidence := boolAt(doc, "hasApplicationForm") || boolAt(doc, "links", "applicationFormLocal")
	if _, ok := field("links", "applicationForm")(doc); ok {
		evidence = true
	}

	chain := []accessor{field("links", "applicationFormR2")}
	if evidence {
		chain = append(chain, constant(n.FormURL(id)))
	}
	if boolAt(doc, "links", "applicationFormLocal") {
		chain = append(chain, constant(n.formRedirectPrefix+id))
	}
	return append(chain, field("links", "applicationForm"))
}

// text resolves a chain and strips markup from the result
func (n *Normalizer) text(doc document, chain ...accessor) string {
	v, ok := firstPresent(doc, chain...)
	if !ok {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(n.policy.Sanitize(v)))
}

func classify(doc document) variant {
	if _, ok := doc["links"].(map[string]any); ok {
		return variantRecord
	}
	if _, ok := doc["metadata"].(map[string]any); ok {
		return variantRecord
	}
	for _, flag := range []string{"hasApplicationForm", "hasOfficialLink", "hasNotification"} {
		if _, ok := doc[flag]; ok {
			return variantIndex
		}
	}
	return variantGeneric
}

func idChain(kind variant) []accessor {
	if kind == variantGeneric {
		return []accessor{field("id"), field("jobId"), field("_id")}
	}
	return []accessor{field("id")}
}

func titleChain(kind variant) []accessor {
	if kind == variantGeneric {
		return []accessor{field("title"), field("postName"), field("name")}
	}
	return []accessor{field("title")}
}

func organizationChain(kind variant) []accessor {
	if kind == variantGeneric {
		return []accessor{field("organization"), field("organisation"), field("org")}
	}
	return []accessor{field("organization")}
}

func publishedChain(kind variant) []accessor {
	chain := []accessor{field("postedDate"), field("metadata", "scrapedAt")}
	if kind == variantGeneric {
		chain = append(chain, field("publishedAt"))
	}
	return chain
}

func asDocument(raw any) (document, bool) {
	switch t := raw.(type) {
	case map[string]any:
		return t, true
	case json.RawMessage:
		return decodeDocument(t)
	case []byte:
		return decodeDocument(t)
	default:
		return nil, false
	}
}

func decodeDocument(b []byte) (document, bool) {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil || doc == nil {
		return nil, false
	}
	return doc, true
}
