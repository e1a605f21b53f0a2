package view

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"skyward-backend/internal/assert"
	"skyward-backend/lib/gradebook"
	"skyward-backend/lib/htmlutil"
	"skyward-backend/lib/scrapers/skyward/core"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	gradebookPage = "sfgradebook001.w"
	loaderPage    = "httploader.p"
	filesAdded    = "jquery.1.8.2.js,qsfmain001.css,sfgradebook.css,qsfmain001.min.js,sfgradebook.js,sfprint001.js"
	dwdMarker     = "sff.sv('dwd', '"
	dwdLength     = 5
)

var Semesters = []int{1, 2}

var sessionExpiredPhrases = []string{
	"Your session has timed out",
	"session has expired",
}

// Retriever fetches the gradebook of a logged in session.
type Retriever struct {
	client   *core.Client
	renderer Renderer
}

// NewRetriever creates a Retriever, renderer may be nil in which case
// NoopRenderer is used.
func NewRetriever(client *core.Client, renderer Renderer) *Retriever {
	assert.NotNil(client, "client")
	if renderer == nil {
		renderer = NoopRenderer{}
	}
	return &Retriever{
		client:   client,
		renderer: renderer,
	}
}

type gradebookDocument struct {
	requestId string
	dwd       string
	doc       *goquery.Document
}

// extractDwd reads the dwd token out of the inline script that sets it.
func extractDwd(text string) (string, bool) {
	idx := strings.Index(text, dwdMarker)
	if idx < 0 {
		return "", false
	}
	value := text[idx+len(dwdMarker):]
	if len(value) > dwdLength {
		value = value[:dwdLength]
	}
	return value, true
}

func sessionExpired(text string) bool {
	for _, phrase := range sessionExpiredPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func (r *Retriever) fetchGradebook(ctx context.Context, session core.SessionParams) (gradebookDocument, error) {
	ctx, span := tracer.Start(ctx, "fetchGradebook")
	defer span.End()

	url := r.client.Url(gradebookPage)
	res, err := r.client.Do(ctx, core.Request{
		Url: url,
		Form: core.Form{
			"encses":    session.EncSes,
			"sessionid": session.SessionId,
		},
	})
	if err != nil {
		return gradebookDocument{}, err
	}
	if sessionExpired(res.Text) {
		return gradebookDocument{}, core.ErrSessionExpired
	}

	text := htmlutil.AbsoluteLinks(res.Text, r.client.BaseUrl)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return gradebookDocument{}, err
	}

	rendered, err := r.renderer.Render(ctx, Page{Url: url, Text: text, Doc: doc})
	if err != nil {
		return gradebookDocument{}, fmt.Errorf("render gradebook: %w", err)
	}

	requestId := rendered["reloadValue"]
	if requestId == "" {
		value, ok := doc.Find("#reloadValue").First().Attr("value")
		if !ok {
			return gradebookDocument{}, core.Malformed(stage_gradebook_page, "no #reloadValue")
		}
		requestId = value
	}

	dwd := rendered["dwd"]
	if dwd == "" {
		value, ok := extractDwd(text)
		if !ok {
			slog.WarnContext(ctx, "could not find dwd on gradebook page")
		}
		dwd = value
	}

	return gradebookDocument{
		requestId: requestId,
		dwd:       dwd,
		doc:       doc,
	}, nil
}

func constantOptions(page gradebookDocument, session core.SessionParams, semester int) core.Form {
	return core.Form{
		"requestId":             page.requestId,
		"encses":                session.EncSes,
		"sessionid":             session.SessionId,
		"wfaacl":                session.Wfaacl(),
		"ishttp":                "true",
		"track":                 "0",
		"isEoc":                 "no",
		"fromHttp":              "yes",
		"dwd":                   page.dwd,
		"dialogLevel":           "1",
		"action":                "viewGradeInfoDialog",
		"subjectId":             "",
		"javascript.filesAdded": filesAdded,
		"bucket":                fmt.Sprintf("SEM %d", semester),
	}
}

var triggerFields = []struct {
	attr  string
	param string
}{
	{attr: "data-cni", param: "corNumId"},
	{attr: "data-gid", param: "gbId"},
	{attr: "data-sid", param: "stuId"},
	{attr: "data-sec", param: "section"},
	{attr: "data-eid", param: "entityId"},
}

func triggerOptions(trigger *goquery.Selection) (core.Form, error) {
	form := core.Form{"gridCount": "1"}
	for _, field := range triggerFields {
		value, ok := trigger.Attr(field.attr)
		if !ok {
			return nil, core.Malformed(stage_grade_trigger, "missing %s", field.attr)
		}
		form[field.param] = value
	}
	return form, nil
}

func (r *Retriever) classGrades(ctx context.Context, options core.Form, semester int) (gradebook.ClassGradeSet, error) {
	url := r.client.Url(loaderPage)
	res, err := r.client.Do(ctx, core.Request{
		Url:   url,
		Form:  options,
		Query: map[string]string{"file": gradebookPage},
		Headers: map[string]string{
			"X-Requested-With": "XMLHttpRequest",
			"Referer":          url,
			"Content-Type":     "application/x-www-form-urlencoded; charset=UTF-8",
			"Accept-Language":  "en-US,en;q=0.5",
		},
	})
	if err != nil {
		return gradebook.ClassGradeSet{}, err
	}

	fragment, err := core.ExtractCDATA(res.Text)
	if err != nil {
		return gradebook.ClassGradeSet{}, err
	}
	return ParseGradeFragment(ctx, fragment, semester)
}

func (r *Retriever) semester(ctx context.Context, page gradebookDocument, session core.SessionParams, semester int) ([]gradebook.ClassGradeSet, error) {
	ctx, span := tracer.Start(ctx, "semester", trace.WithAttributes(
		attribute.Int("semester", semester),
	))
	defer span.End()

	lit := fmt.Sprintf("SM%d", semester)
	triggers := page.doc.Find("[id=showGradeInfo]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		value, _ := s.Attr("data-lit")
		return value == lit
	})
	span.SetAttributes(attribute.Int("triggers", triggers.Length()))

	options := constantOptions(page, session, semester)
	var classes []gradebook.ClassGradeSet
	for i := range triggers.Nodes {
		specific, err := triggerOptions(triggers.Eq(i))
		if err != nil {
			return nil, err
		}
		class, err := r.classGrades(ctx, options.With(specific), semester)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, nil
}

// Retrieve fetches the grades of both semesters. A class that appears in
// both semesters is returned once with the assignments of the first
// semester followed by those of the second.
func (r *Retriever) Retrieve(ctx context.Context, session core.SessionParams) ([]gradebook.ClassGradeSet, error) {
	ctx, span := tracer.Start(ctx, "Retrieve")
	defer span.End()

	classes, err := r.retrieve(ctx, session)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to retrieve grades")
		return nil, err
	}
	return classes, nil
}

func (r *Retriever) retrieve(ctx context.Context, session core.SessionParams) ([]gradebook.ClassGradeSet, error) {
	page, err := r.fetchGradebook(ctx, session)
	if err != nil {
		return nil, err
	}

	var classes []gradebook.ClassGradeSet
	index := map[string]int{}
	for _, semester := range Semesters {
		results, err := r.semester(ctx, page, session, semester)
		if err != nil {
			return nil, err
		}
		for _, class := range results {
			idx, seen := index[class.Title]
			if !seen {
				index[class.Title] = len(classes)
				classes = append(classes, class)
				continue
			}
			merged, err := classes[idx].Union(class)
			if err != nil {
				return nil, err
			}
			classes[idx] = merged
		}
	}

	if len(classes) == 0 {
		return nil, core.ErrNoDataReturned
	}
	return classes, nil
}

// RenderClassesAsText renders each class as its assignments, one string per
// assignment, keyed by class title.
func RenderClassesAsText(classes []gradebook.ClassGradeSet) map[string][]string {
	out := make(map[string][]string, len(classes))
	for _, class := range classes {
		out[class.Title] = append(out[class.Title], class.Lines()...)
	}
	return out
}
