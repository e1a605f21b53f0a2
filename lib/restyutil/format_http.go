package restyutil

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

func formatHeaders(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out strings.Builder
	for _, k := range keys {
		for _, v := range headers[k] {
			out.WriteString(fmt.Sprintf("%s: %s\n", k, v))
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func formatRequestBody(req *http.Request) string {
	if req == nil || req.GetBody == nil {
		return "<NO BODY AVAILABLE>"
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("failed to get request body: %s", err.Error())
	}
	readBody, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("failed to read request body: %s", err.Error())
	}
	return string(readBody)
}

// 1: request method
// 2: request url
// 3: request headers in ("Key: Value" format)
// 4: request body
const requestInfoTemplate = `---- REQUEST ----

%s %s

%s

%s`

// 1: response status
// 2: response headers in ("Key: Value" format)
// 3: response body
const responseInfoTemplate = `

---- RESPONSE ----

%s

%s

%s`

func formatHttpRequest(req *resty.Request) string {
	headers := req.Header
	if req.RawRequest != nil {
		headers = req.RawRequest.Header
	}
	return fmt.Sprintf(
		requestInfoTemplate,
		req.Method, req.URL,
		formatHeaders(headers),
		formatRequestBody(req.RawRequest),
	)
}

func formatHttpMessage(res *resty.Response) string {
	return formatHttpRequest(res.Request) + fmt.Sprintf(
		responseInfoTemplate,
		strconv.Itoa(res.StatusCode()),
		formatHeaders(res.Header()),
		res.String(),
	)
}
