package restyutil

import (
	"fmt"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type InstrumentOutput interface {
	Write(id string, contents string)
}

type instrumentCtx struct {
	output    InstrumentOutput
	idcounter *uint64
}

// InstrumentClient dumps every request (and its response, if one was
// received) made by client to output. `output` can be nil, if it is, then
// the function is a no-op.
func InstrumentClient(client *resty.Client, output InstrumentOutput) {
	if output == nil {
		return
	}

	var idcounter uint64
	i := instrumentCtx{output: output, idcounter: &idcounter}
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

func (i instrumentCtx) nextId(suffix string) string {
	return fmt.Sprintf("%04d-%s.txt", atomic.AddUint64(i.idcounter, 1), suffix)
}

func (i instrumentCtx) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	i.output.Write(i.nextId("response"), formatHttpMessage(res))
	return nil
}

func (i instrumentCtx) onError(req *resty.Request, err error) {
	i.output.Write(
		i.nextId("error"),
		formatHttpRequest(req)+fmt.Sprintf("\n\n---- ERROR ----\n\n%s", err.Error()),
	)
}
