package feeapi

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"fee-wizard/core/types"
	"fee-wizard/internal/errors"
)

func newTestClient(t *testing.T, handler fasthttp.RequestHandler) *Client {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	go func() {
		_ = fasthttp.Serve(ln, handler)
	}()
	t.Cleanup(func() { _ = ln.Close() })

	return New(Config{BaseURL: "http://fees.test/api/v1/", Timeout: 2 * time.Second},
		WithDialer(func(addr string) (net.Conn, error) { return ln.Dial() }))
}

var query = types.FeeQuery{
	MatterCode1:  "IAXL",
	MatterCode2:  "IDAS",
	LocationCode: types.LocationNotApplicable,
	CaseStage:    "IA100",
}

func TestListAvailable(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		gotPath = string(ctx.Path())
		gotQuery = string(ctx.QueryArgs().Peek("matterCode1")) + "," + string(ctx.QueryArgs().Peek("locationCode"))
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"fees":[
			{"levelCode":"IMAS","description":"Asylum legal help","levelCodeType":"automatic"},
			{"levelCode":"IMCA","description":"Interpreter","levelCodeType":"optionalBool"}
		]}`)
	})

	fees, err := client.ListAvailable(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/fees/list-available", gotPath)
	assert.Equal(t, "IAXL,NA", gotQuery)
	require.Len(t, fees, 2)
	assert.Equal(t, types.LevelCodeOptionalBool, fees[1].LevelCodeType)
}

func TestCalculateSendsLevelCodes(t *testing.T) {
	var levelCodes []types.LevelCodeEntry
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		raw := ctx.QueryArgs().Peek("levelCodes")
		if err := json.Unmarshal(raw, &levelCodes); err != nil {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			return
		}
		ctx.SetBodyString(`{"amount":100,"total":120,"vat":20,"fees":[{"feeType":"IMAS","amount":100},{"feeType":"total","amount":100}]}`)
	})

	units := 2
	req := &types.FeeRequest{
		FeeQuery:   query,
		LevelCodes: []types.LevelCodeEntry{{LevelCode: "IMCA"}, {LevelCode: "IMCB", Units: &units}},
	}
	resp, err := client.Calculate(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(decimal.NewFromInt(120)))
	assert.True(t, resp.Vat.Equal(decimal.NewFromInt(20)))
	require.Len(t, resp.Fees, 2)
	assert.Equal(t, "total", resp.Fees[1].Code())

	require.Len(t, levelCodes, 2)
	assert.Equal(t, "IMCA", levelCodes[0].LevelCode)
	require.NotNil(t, levelCodes[1].Units)
	assert.Equal(t, 2, *levelCodes[1].Units)
}

func TestCalculateOmitsEmptyLevelCodes(t *testing.T) {
	var hasLevelCodes bool
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		hasLevelCodes = ctx.QueryArgs().Has("levelCodes")
		ctx.SetBodyString(`{"amount":"10.00","total":"12.00","vat":"2.00","fees":[]}`)
	})

	resp, err := client.Calculate(context.Background(), &types.FeeRequest{FeeQuery: query})
	require.NoError(t, err)
	assert.False(t, hasLevelCodes)
	assert.Equal(t, "12.00", resp.Total.StringFixed(2))
}

func TestNonSuccessStatusIsBackendError(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusBadGateway)
		ctx.SetBodyString("upstream down")
	})

	_, err := client.ListAvailable(context.Background(), query)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeBackend))
}

func TestMalformedBodyIsBackendError(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString("{not json")
	})

	_, err := client.Calculate(context.Background(), &types.FeeRequest{FeeQuery: query})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeBackend))
}

func TestCancelledContext(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{"fees":[]}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.ListAvailable(ctx, query)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeBackend))
}
