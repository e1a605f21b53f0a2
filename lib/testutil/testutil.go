package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"sync"
	"testing"

	"skyward-backend/lib/telemetry"
)

// Setup initializes telemetry for a test of the named package, the returned
// function must be deferred.
func Setup(t testing.TB, name string) func() {
	return telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", name))
}

type Reply struct {
	Status int
	Body   string
}

type PortalRequest struct {
	Page   string
	Query  url.Values
	Form   url.Values
	Header http.Header
}

// Portal is a scripted stand in for the portal. Each page answers with its
// queued replies in order, the last reply repeats once the queue runs out.
type Portal struct {
	server *httptest.Server

	lock     sync.Mutex
	routes   map[string][]Reply
	requests []PortalRequest
}

func NewPortal(t testing.TB) *Portal {
	p := &Portal{routes: map[string][]Reply{}}
	p.server = httptest.NewServer(http.HandlerFunc(p.serve))
	t.Cleanup(p.server.Close)
	return p
}

// BaseUrl looks like the service url of a real district.
func (p *Portal) BaseUrl() string {
	return p.server.URL + "/scripts/wsisa.dll/WService=wsedutest"
}

func (p *Portal) Reply(page string, replies ...Reply) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.routes[page] = append(p.routes[page], replies...)
}

// ReplyText queues 200 responses with the given bodies.
func (p *Portal) ReplyText(page string, bodies ...string) {
	replies := make([]Reply, len(bodies))
	for i, body := range bodies {
		replies[i] = Reply{Status: http.StatusOK, Body: body}
	}
	p.Reply(page, replies...)
}

// Requests returns every request made to a page, in order.
func (p *Portal) Requests(page string) []PortalRequest {
	p.lock.Lock()
	defer p.lock.Unlock()

	var out []PortalRequest
	for _, r := range p.requests {
		if r.Page == page {
			out = append(out, r)
		}
	}
	return out
}

func (p *Portal) serve(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page := path.Base(r.URL.Path)

	p.lock.Lock()
	p.requests = append(p.requests, PortalRequest{
		Page:   page,
		Query:  r.URL.Query(),
		Form:   r.PostForm,
		Header: r.Header.Clone(),
	})
	queue := p.routes[page]
	var reply Reply
	found := len(queue) > 0
	if found {
		reply = queue[0]
		if len(queue) > 1 {
			p.routes[page] = queue[1:]
		}
	}
	p.lock.Unlock()

	if !found {
		http.NotFound(w, r)
		return
	}
	if reply.Status == 0 {
		reply.Status = http.StatusOK
	}
	w.Header().Set("content-type", "text/html; charset=utf-8")
	w.WriteHeader(reply.Status)
	w.Write([]byte(reply.Body))
}
